package theme

// Built-in themes. Dark is the default and suits most dark terminal
// backgrounds; Light flips to darker accents for light backgrounds.
// Minimal stays monochrome, HighContrast maximizes legibility, and Neon
// is for people who miss the 80s.
var (
	Dark = Theme{
		Name:        "dark",
		Border:      BorderRounded,
		Active:      "#5aa3f0",
		Valid:       "#4ade80",
		Invalid:     "#f87171",
		Placeholder: "#999999",
		LineNumber:  "#666666",
	}

	Light = Theme{
		Name:        "light",
		Border:      BorderRounded,
		Active:      "#2563eb",
		Valid:       "#16a34a",
		Invalid:     "#dc2626",
		Placeholder: "#666666",
		LineNumber:  "#888888",
	}

	Minimal = Theme{
		Name:        "minimal",
		Border:      BorderNormal,
		Active:      "#6b7280",
		Valid:       "#6b7280",
		Invalid:     "#9ca3af",
		Placeholder: "#777777",
		LineNumber:  "#555555",
	}

	HighContrast = Theme{
		Name:        "high-contrast",
		Border:      BorderThick,
		Active:      "#00ffff",
		Valid:       "#00ff00",
		Invalid:     "#ff0000",
		Placeholder: "#cccccc",
		LineNumber:  "#ffffff",
	}

	Neon = Theme{
		Name:        "neon",
		Border:      BorderDouble,
		Active:      "#00ffff",
		Valid:       "#39ff14",
		Invalid:     "#ff073a",
		Placeholder: "#ff00ff",
		LineNumber:  "#00ffff",
	}
)

var builtins = map[string]Theme{
	Dark.Name:         Dark,
	Light.Name:        Light,
	Minimal.Name:      Minimal,
	HighContrast.Name: HighContrast,
	Neon.Name:         Neon,
}

// Default returns the theme used when none is specified.
func Default() Theme {
	return Dark
}
