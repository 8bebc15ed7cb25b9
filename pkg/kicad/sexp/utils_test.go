package sexp

import (
	"testing"

	"github.com/willhack/kicanvas/pkg/kicad/sexp/kicadsexp"
)

// Helper to parse a single s-expression from a string
func parseSexp(t *testing.T, input string) kicadsexp.Sexp {
	t.Helper()
	sexps, err := kicadsexp.ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse s-expression %q: %v", input, err)
	}
	if len(sexps) == 0 {
		t.Fatalf("No s-expressions parsed from %q", input)
	}
	return sexps[0]
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		index   int
		want    string
		wantErr bool
	}{
		{
			name:  "get key",
			input: "(paper A4)",
			index: 0,
			want:  "paper",
		},
		{
			name:  "get value",
			input: "(paper A4)",
			index: 1,
			want:  "A4",
		},
		{
			name:    "index out of bounds",
			input:   "(paper A4)",
			index:   5,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parseSexp(t, tt.input)
			got, err := GetString(s, tt.index)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("GetString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetQuotedString(t *testing.T) {
	s := parseSexp(t, `(title "Example Board")`)
	got, err := GetQuotedString(s, 1)
	if err != nil {
		t.Fatalf("GetQuotedString() error: %v", err)
	}
	if got != "Example Board" {
		t.Errorf("GetQuotedString() = %q, want %q", got, "Example Board")
	}
}

func TestGetFloatAndInt(t *testing.T) {
	s := parseSexp(t, "(at 100.5 50 90)")

	f, err := GetFloat(s, 1)
	if err != nil || f != 100.5 {
		t.Errorf("GetFloat() = %v, %v", f, err)
	}

	i, err := GetInt(s, 3)
	if err != nil || i != 90 {
		t.Errorf("GetInt() = %v, %v", i, err)
	}

	if _, err := GetFloat(s, 0); err == nil {
		t.Error("GetFloat on non-numeric symbol should fail")
	}
}

func TestFindNode(t *testing.T) {
	s := parseSexp(t, `(symbol (lib_id "Device:R") (at 100 50 0) (unit 1))`)

	atNode, found := FindNode(s, "at")
	if !found {
		t.Fatal("FindNode(at) not found")
	}

	pos, err := GetPosition(atNode)
	if err != nil {
		t.Fatalf("GetPosition() error: %v", err)
	}
	if pos.X != 100 || pos.Y != 50 || pos.Angle != 0 {
		t.Errorf("GetPosition() = %+v", pos)
	}

	if _, found := FindNode(s, "missing"); found {
		t.Error("FindNode(missing) should not be found")
	}
}

func TestFindAllNodes(t *testing.T) {
	s := parseSexp(t, `(pts (xy 0 0) (xy 10 0) (xy 10 10))`)

	nodes := FindAllNodes(s, "xy")
	if len(nodes) != 3 {
		t.Fatalf("FindAllNodes(xy) = %d nodes, want 3", len(nodes))
	}

	last, err := GetPositionXY(nodes[2])
	if err != nil {
		t.Fatalf("GetPositionXY() error: %v", err)
	}
	if last.X != 10 || last.Y != 10 {
		t.Errorf("last point = %+v", last)
	}
}

func TestGetPositionAngle(t *testing.T) {
	tests := []struct {
		input     string
		wantAngle Angle
	}{
		{"(at 10 5)", 0},
		{"(at 10 5 90)", 90},
		{"(at 10 5 270)", 270},
	}

	for _, tt := range tests {
		pos, err := GetPosition(parseSexp(t, tt.input))
		if err != nil {
			t.Fatalf("GetPosition(%q) error: %v", tt.input, err)
		}
		if pos.Angle != tt.wantAngle {
			t.Errorf("GetPosition(%q).Angle = %v, want %v", tt.input, pos.Angle, tt.wantAngle)
		}
	}
}

func TestGetEffects(t *testing.T) {
	s := parseSexp(t, `(effects (font (size 1.27 1.27)) (justify left bottom) hide)`)

	effects, err := GetEffects(s)
	if err != nil {
		t.Fatalf("GetEffects() error: %v", err)
	}

	if effects.Font.Size.Height != 1.27 {
		t.Errorf("Font height = %v, want 1.27", effects.Font.Size.Height)
	}
	if effects.Justify.Horizontal != HJustifyLeft {
		t.Errorf("Horizontal = %v, want left", effects.Justify.Horizontal)
	}
	if effects.Justify.Vertical != VJustifyBottom {
		t.Errorf("Vertical = %v, want bottom", effects.Justify.Vertical)
	}
	if !effects.Hide {
		t.Error("Hide should be true")
	}
}

func TestGetEffectsDefaultJustify(t *testing.T) {
	s := parseSexp(t, `(effects (font (size 1.27 1.27)))`)

	effects, err := GetEffects(s)
	if err != nil {
		t.Fatalf("GetEffects() error: %v", err)
	}

	if effects.Justify.Horizontal != HJustifyCenter || effects.Justify.Vertical != VJustifyCenter {
		t.Errorf("missing justify should default to center/center, got %+v", effects.Justify)
	}
}

func TestGetProperty(t *testing.T) {
	s := parseSexp(t, `(property "Reference" "R1" (at 100 45 0) (effects (font (size 1.27 1.27))))`)

	prop, err := GetProperty(s)
	if err != nil {
		t.Fatalf("GetProperty() error: %v", err)
	}

	if prop.Key != "Reference" || prop.Value != "R1" {
		t.Errorf("Key/Value = %q/%q", prop.Key, prop.Value)
	}
	if prop.Position.X != 100 || prop.Position.Y != 45 {
		t.Errorf("Position = %+v", prop.Position)
	}
}

func TestGetStroke(t *testing.T) {
	s := parseSexp(t, `(stroke (width 0.25) (type dash))`)

	stroke, err := GetStroke(s)
	if err != nil {
		t.Fatalf("GetStroke() error: %v", err)
	}
	if stroke.Width != 0.25 || stroke.Type != "dash" {
		t.Errorf("Stroke = %+v", stroke)
	}
}

func TestGetColor(t *testing.T) {
	s := parseSexp(t, `(color 255 0 132 255)`)

	color, err := GetColor(s)
	if err != nil {
		t.Fatalf("GetColor() error: %v", err)
	}
	if color.R != 1.0 || color.G != 0 || color.A != 1.0 {
		t.Errorf("Color = %+v", color)
	}
}

func TestHasSymbol(t *testing.T) {
	s := parseSexp(t, `(pin_numbers hide)`)

	if !HasSymbol(s, "hide") {
		t.Error("HasSymbol(hide) should be true")
	}
	if HasSymbol(s, "show") {
		t.Error("HasSymbol(show) should be false")
	}
}
