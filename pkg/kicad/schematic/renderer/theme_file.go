package renderer

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// themeFile is the on-disk YAML layout of a custom color scheme. Every
// entry is optional; unset entries keep the base theme's color.
type themeFile struct {
	Base   string            `yaml:"base"`
	Colors map[string]string `yaml:"colors"`
}

// LoadThemeFile reads a YAML color scheme and applies it on top of a
// built-in theme. The file names a base ("light" or "dark") and a
// colors map of element names to hex values like "#008400" or
// "#ffffc2cc" with alpha.
func LoadThemeFile(path string) (*SchematicColors, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var tf themeFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}

	base := ThemeLight
	switch strings.ToLower(tf.Base) {
	case "", "light":
	case "dark":
		base = ThemeDark
	default:
		return nil, fmt.Errorf("unknown base theme %q (want light or dark)", tf.Base)
	}

	colors := GetSchematicColors(base)
	for name, value := range tf.Colors {
		c, err := parseHexColor(value)
		if err != nil {
			return nil, fmt.Errorf("color %q: %w", name, err)
		}
		if err := colors.set(name, c); err != nil {
			return nil, err
		}
	}

	return colors, nil
}

// set assigns a color by its YAML element name
func (sc *SchematicColors) set(name string, c color.NRGBA) error {
	switch name {
	case "background":
		sc.Background = c
	case "grid":
		sc.Grid = c
	case "wire":
		sc.Wire = c
	case "bus":
		sc.Bus = c
	case "junction":
		sc.Junction = c
	case "no_connect":
		sc.NoConnect = c
	case "local_label":
		sc.LocalLabel = c
	case "global_label":
		sc.GlobalLabel = c
	case "hier_label":
		sc.HierLabel = c
	case "symbol_body":
		sc.SymbolBody = c
	case "symbol_fill":
		sc.SymbolFill = c
	case "symbol_pin":
		sc.SymbolPin = c
	case "symbol_pin_text":
		sc.SymbolPinText = c
	case "symbol_text":
		sc.SymbolText = c
	case "sheet":
		sc.Sheet = c
	case "sheet_fill":
		sc.SheetFill = c
	case "sheet_pin":
		sc.SheetPin = c
	case "sheet_text":
		sc.SheetText = c
	case "text":
		sc.Text = c
	case "selection":
		sc.Selection = c
	case "highlight":
		sc.Highlight = c
	default:
		return fmt.Errorf("unknown color name %q", name)
	}
	return nil
}

// parseHexColor parses "#rrggbb" or "#rrggbbaa"
func parseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}

	if len(hex) == 6 {
		return color.NRGBA{
			R: uint8(v >> 16),
			G: uint8(v >> 8),
			B: uint8(v),
			A: 255,
		}, nil
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
