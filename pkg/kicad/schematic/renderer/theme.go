package renderer

import "image/color"

// Theme selects a built-in color scheme for schematic rendering
type Theme int

const (
	// ThemeLight is a white-background scheme close to KiCad defaults
	ThemeLight Theme = iota
	// ThemeDark is a dark-background scheme with brighter strokes
	ThemeDark
)

// SchematicColors defines the colors used for each schematic element
type SchematicColors struct {
	Background color.NRGBA
	Grid       color.NRGBA

	Wire      color.NRGBA
	Bus       color.NRGBA
	Junction  color.NRGBA
	NoConnect color.NRGBA

	LocalLabel  color.NRGBA
	GlobalLabel color.NRGBA
	HierLabel   color.NRGBA

	SymbolBody    color.NRGBA
	SymbolFill    color.NRGBA
	SymbolPin     color.NRGBA
	SymbolPinText color.NRGBA
	SymbolText    color.NRGBA

	Sheet     color.NRGBA
	SheetFill color.NRGBA
	SheetPin  color.NRGBA
	SheetText color.NRGBA

	Text color.NRGBA

	Selection color.NRGBA
	Highlight color.NRGBA
}

// GetSchematicColors returns the color scheme for the given theme
func GetSchematicColors(theme Theme) *SchematicColors {
	if theme == ThemeDark {
		return darkColors()
	}
	return lightColors()
}

func lightColors() *SchematicColors {
	return &SchematicColors{
		Background: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Grid:       color.NRGBA{R: 220, G: 220, B: 220, A: 255},

		Wire:      color.NRGBA{G: 132, A: 255},
		Bus:       color.NRGBA{B: 132, A: 255},
		Junction:  color.NRGBA{G: 132, A: 255},
		NoConnect: color.NRGBA{B: 132, A: 255},

		LocalLabel:  color.NRGBA{A: 255},
		GlobalLabel: color.NRGBA{R: 132, A: 255},
		HierLabel:   color.NRGBA{R: 132, G: 66, A: 255},

		SymbolBody:    color.NRGBA{R: 132, A: 255},
		SymbolFill:    color.NRGBA{R: 255, G: 255, B: 194, A: 128},
		SymbolPin:     color.NRGBA{R: 132, A: 255},
		SymbolPinText: color.NRGBA{G: 100, B: 100, A: 255},
		SymbolText:    color.NRGBA{A: 255},

		Sheet:     color.NRGBA{R: 132, B: 132, A: 255},
		SheetFill: color.NRGBA{R: 255, G: 255, B: 255, A: 64},
		SheetPin:  color.NRGBA{R: 132, B: 132, A: 255},
		SheetText: color.NRGBA{A: 255},

		Text: color.NRGBA{A: 255},

		Selection: color.NRGBA{R: 255, A: 128},
		Highlight: color.NRGBA{R: 255, G: 255, A: 128},
	}
}

func darkColors() *SchematicColors {
	return &SchematicColors{
		Background: color.NRGBA{R: 30, G: 30, B: 30, A: 255},
		Grid:       color.NRGBA{R: 60, G: 60, B: 60, A: 255},

		Wire:      color.NRGBA{G: 255, A: 255},
		Bus:       color.NRGBA{G: 150, B: 255, A: 255},
		Junction:  color.NRGBA{G: 255, A: 255},
		NoConnect: color.NRGBA{G: 150, B: 255, A: 255},

		LocalLabel:  color.NRGBA{R: 255, G: 255, A: 255},
		GlobalLabel: color.NRGBA{R: 255, G: 100, B: 100, A: 255},
		HierLabel:   color.NRGBA{R: 255, G: 150, A: 255},

		SymbolBody:    color.NRGBA{R: 255, G: 100, B: 100, A: 255},
		SymbolFill:    color.NRGBA{R: 60, G: 60, A: 128},
		SymbolPin:     color.NRGBA{R: 255, G: 100, B: 100, A: 255},
		SymbolPinText: color.NRGBA{R: 100, G: 255, B: 255, A: 255},
		SymbolText:    color.NRGBA{R: 255, G: 255, B: 255, A: 255},

		Sheet:     color.NRGBA{R: 255, G: 100, B: 255, A: 255},
		SheetFill: color.NRGBA{R: 50, G: 40, B: 50, A: 64},
		SheetPin:  color.NRGBA{R: 255, G: 100, B: 255, A: 255},
		SheetText: color.NRGBA{R: 255, G: 255, B: 255, A: 255},

		Text: color.NRGBA{R: 220, G: 220, B: 220, A: 255},

		Selection: color.NRGBA{R: 255, G: 100, B: 100, A: 128},
		Highlight: color.NRGBA{R: 255, G: 255, B: 100, A: 128},
	}
}

// String returns the theme name
func (t Theme) String() string {
	switch t {
	case ThemeLight:
		return "Light"
	case ThemeDark:
		return "Dark"
	default:
		return "Unknown"
	}
}
