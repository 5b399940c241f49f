package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "defaults",
			cfg:  Config{UI: UIConfig{Theme: "dark"}, Log: LogConfig{Level: "info"}},
		},
		{
			name:    "unknown theme",
			cfg:     Config{UI: UIConfig{Theme: "solarized"}},
			wantErr: "ui.theme",
		},
		{
			name: "theme file skips name check",
			cfg:  Config{UI: UIConfig{Theme: "solarized", ThemeFile: "custom.yaml"}},
		},
		{
			name:    "negative width",
			cfg:     Config{UI: UIConfig{Theme: "dark", Width: -1}},
			wantErr: "ui.width",
		},
		{
			name:    "width below minimum",
			cfg:     Config{UI: UIConfig{Theme: "dark", Width: 5}},
			wantErr: "ui.width",
		},
		{
			name: "width at minimum",
			cfg:  Config{UI: UIConfig{Theme: "dark", Width: 12}},
		},
		{
			name:    "bad log level",
			cfg:     Config{UI: UIConfig{Theme: "dark"}, Log: LogConfig{Level: "verbose"}},
			wantErr: "log.level",
		},
		{
			name: "empty log level",
			cfg:  Config{UI: UIConfig{Theme: "dark"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
