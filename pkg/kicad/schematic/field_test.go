package schematic

import (
	"math"
	"testing"

	"github.com/willhack/kicanvas/pkg/kicad/sexp"
)

const testEps = 1e-9

func posClose(t *testing.T, name string, got, want Position) {
	t.Helper()
	if math.Abs(got.X-want.X) > testEps || math.Abs(got.Y-want.Y) > testEps {
		t.Errorf("%s = (%v, %v), want (%v, %v)", name, got.X, got.Y, want.X, want.Y)
	}
}

func TestShownText(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"~", ""},
		{"", ""},
		{"REF1", "REF1"},
		{"~{ABC}", "~{ABC}"},
		{"a~b", "a~b"},
	}

	for _, tt := range tests {
		f := &Field{Text: tt.text}
		if got := f.ShownText(); got != tt.want {
			t.Errorf("ShownText(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestUnparentedField(t *testing.T) {
	f := &Field{
		Text:   "REF1",
		At:     PositionAngle{Position: Position{X: 10, Y: 5}},
		HAlign: sexp.HJustifyLeft,
		VAlign: sexp.VJustifyCenter,
	}

	if got := f.ShownText(); got != "REF1" {
		t.Errorf("ShownText() = %q, want REF1", got)
	}
	if got := f.DrawRotation(); got != 0 {
		t.Errorf("DrawRotation() = %v, want 0", got)
	}
	posClose(t, "Position()", f.Position(), Position{X: 10, Y: 5})
	if got := f.EffectiveHorizJustify(); got != sexp.HJustifyLeft {
		t.Errorf("EffectiveHorizJustify() = %q, want left", got)
	}
}

func TestDrawRotation(t *testing.T) {
	tests := []struct {
		name   string
		parent *Symbol
		angle  Angle
		want   Angle
	}{
		{"no parent passes through", nil, 45, 45},
		{"parent at 0 passes through", &Symbol{Angle: 0}, 90, 90},
		{"parent at 180 passes through", &Symbol{Angle: 180}, 0, 0},
		{"parent at 90 turns 0 into 90", &Symbol{Angle: 90}, 0, 90},
		{"parent at 90 turns 180 into 90", &Symbol{Angle: 90}, 180, 90},
		{"parent at 90 turns 90 into 0", &Symbol{Angle: 90}, 90, 0},
		{"parent at 90 turns 270 into 0", &Symbol{Angle: 90}, 270, 0},
		{"parent at 270 turns 0 into 90", &Symbol{Angle: 270}, 0, 90},
		{"parent at 270 turns 90 into 0", &Symbol{Angle: 270}, 90, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Field{At: PositionAngle{Angle: tt.angle}, parent: tt.parent}
			if got := f.DrawRotation(); got != tt.want {
				t.Errorf("DrawRotation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPositionWithIdentityParent(t *testing.T) {
	// Angle 0 with mirror x composes to the identity matrix, so the
	// anchor must come back exactly
	parent := &Symbol{Mirror: "x"}
	f := &Field{
		At:     PositionAngle{Position: Position{X: 10, Y: 5}},
		parent: parent,
	}
	posClose(t, "Position()", f.Position(), Position{X: 10, Y: 5})
}

func TestPositionWithParent(t *testing.T) {
	tests := []struct {
		name   string
		parent *Symbol
		at     Position
		want   Position
	}{
		{
			"angle 0 flips Y about parent",
			&Symbol{Position: Position{X: 100, Y: 50}},
			Position{X: 110, Y: 55},
			Position{X: 110, Y: 45},
		},
		{
			"angle 90 swaps offsets",
			&Symbol{Position: Position{X: 100, Y: 50}, Angle: 90},
			Position{X: 110, Y: 50},
			Position{X: 100, Y: 40},
		},
		{
			"mirror y negates X offset",
			&Symbol{Position: Position{X: 100, Y: 50}, Mirror: "y"},
			Position{X: 110, Y: 50},
			Position{X: 90, Y: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &Field{At: PositionAngle{Position: tt.at}, parent: tt.parent}
			posClose(t, "Position()", f.Position(), tt.want)
		})
	}
}

func TestTextBoxAnchoring(t *testing.T) {
	// "AB" at default height: 1.27 tall, 2 * 0.6 * 1.27 = 1.524 wide
	const w, h = 1.524, 1.27

	tests := []struct {
		hAlign    HJustify
		vAlign    VJustify
		wantStart Position
	}{
		{sexp.HJustifyLeft, sexp.VJustifyTop, Position{X: 10, Y: 5}},
		{sexp.HJustifyRight, sexp.VJustifyBottom, Position{X: 10 - w, Y: 5 - h}},
		{sexp.HJustifyCenter, sexp.VJustifyCenter, Position{X: 10 - w/2, Y: 5 - h/2}},
	}

	for _, tt := range tests {
		f := &Field{
			Text:   "AB",
			At:     PositionAngle{Position: Position{X: 10, Y: 5}},
			HAlign: tt.hAlign,
			VAlign: tt.vAlign,
		}
		start, end := f.TextBox()
		posClose(t, "start", start, tt.wantStart)
		posClose(t, "end", end, Position{X: tt.wantStart.X + w, Y: tt.wantStart.Y + h})
	}
}

func TestBoundingBoxUnparented(t *testing.T) {
	f := &Field{
		Text:   "AB",
		At:     PositionAngle{Position: Position{X: 10, Y: 5}},
		HAlign: sexp.HJustifyLeft,
		VAlign: sexp.VJustifyTop,
	}

	box := f.BoundingBox()
	posClose(t, "Min", box.Min, Position{X: 10, Y: 5})
	posClose(t, "Max", box.Max, Position{X: 11.524, Y: 6.27})
}

func TestBoundingBoxRotatedField(t *testing.T) {
	// With no parent the base box is rotated about the anchor by the
	// authored angle, with no mirroring
	f := &Field{
		Text:   "AB",
		At:     PositionAngle{Position: Position{X: 10, Y: 5}, Angle: 90},
		HAlign: sexp.HJustifyLeft,
		VAlign: sexp.VJustifyCenter,
	}

	box := f.BoundingBox()
	posClose(t, "Min", box.Min, Position{X: 9.365, Y: 5})
	posClose(t, "Max", box.Max, Position{X: 10.635, Y: 6.524})
}

func TestBoundingBoxStartCornerOffset(t *testing.T) {
	// With a parent away from the schematic origin, only the start
	// corner is offset back to world space. The end corner stays in
	// transform-output coordinates, so the box stretches between the
	// two frames. Downstream code depends on this exact shape.
	parent := &Symbol{Position: Position{X: 100, Y: 50}, Mirror: "x"}
	f := &Field{
		Text:   "AB",
		At:     PositionAngle{Position: Position{X: 100, Y: 50}},
		HAlign: sexp.HJustifyLeft,
		VAlign: sexp.VJustifyTop,
		parent: parent,
	}

	box := f.BoundingBox()
	posClose(t, "Min", box.Min, Position{X: 1.524, Y: -1.27})
	posClose(t, "Max", box.Max, Position{X: 100, Y: 50})
}

func TestHorizJustifyFlip(t *testing.T) {
	at := PositionAngle{Position: Position{X: 10, Y: 0}}

	t.Run("unmirrored parent keeps left", func(t *testing.T) {
		f := &Field{
			Text: "ABCD", At: at,
			HAlign: sexp.HJustifyLeft, VAlign: sexp.VJustifyCenter,
			parent: &Symbol{},
		}
		if f.IsHorizJustifyFlipped() {
			t.Error("IsHorizJustifyFlipped() = true, want false")
		}
		if got := f.EffectiveHorizJustify(); got != sexp.HJustifyLeft {
			t.Errorf("EffectiveHorizJustify() = %q, want left", got)
		}
	})

	t.Run("mirrored parent flips left to right", func(t *testing.T) {
		f := &Field{
			Text: "ABCD", At: at,
			HAlign: sexp.HJustifyLeft, VAlign: sexp.VJustifyCenter,
			parent: &Symbol{Mirror: "y"},
		}
		if !f.IsHorizJustifyFlipped() {
			t.Error("IsHorizJustifyFlipped() = false, want true")
		}
		if got := f.EffectiveHorizJustify(); got != sexp.HJustifyRight {
			t.Errorf("EffectiveHorizJustify() = %q, want right", got)
		}
	})

	t.Run("mirrored parent flips right to left", func(t *testing.T) {
		f := &Field{
			Text: "ABCD", At: at,
			HAlign: sexp.HJustifyRight, VAlign: sexp.VJustifyCenter,
			parent: &Symbol{Mirror: "y"},
		}
		if !f.IsHorizJustifyFlipped() {
			t.Error("IsHorizJustifyFlipped() = false, want true")
		}
		if got := f.EffectiveHorizJustify(); got != sexp.HJustifyLeft {
			t.Errorf("EffectiveHorizJustify() = %q, want left", got)
		}
	})

	t.Run("center never flips", func(t *testing.T) {
		f := &Field{
			Text: "ABCD", At: at,
			HAlign: sexp.HJustifyCenter, VAlign: sexp.VJustifyCenter,
			parent: &Symbol{Mirror: "y"},
		}
		if f.IsHorizJustifyFlipped() {
			t.Error("IsHorizJustifyFlipped() = true, want false")
		}
		if got := f.EffectiveHorizJustify(); got != sexp.HJustifyCenter {
			t.Errorf("EffectiveHorizJustify() = %q, want center", got)
		}
	})
}

func TestHorizJustifyDoubleFlip(t *testing.T) {
	// Angle 180 with mirror y flips both axes twice, composing back to
	// the identity, so the authored alignment must survive
	f := &Field{
		Text: "AB",
		At:   PositionAngle{Position: Position{X: 10, Y: 0}},
		HAlign: sexp.HJustifyLeft, VAlign: sexp.VJustifyCenter,
		parent: &Symbol{Angle: 180, Mirror: "y"},
	}
	if got := f.EffectiveHorizJustify(); got != sexp.HJustifyLeft {
		t.Errorf("EffectiveHorizJustify() = %q, want left", got)
	}
}

func TestVertJustifyFlip(t *testing.T) {
	at := PositionAngle{Position: Position{X: 10, Y: 0}}

	t.Run("plain parent keeps bottom", func(t *testing.T) {
		f := &Field{
			Text: "AB", At: at,
			HAlign: sexp.HJustifyLeft, VAlign: sexp.VJustifyBottom,
			parent: &Symbol{},
		}
		if f.IsVertJustifyFlipped() {
			t.Error("IsVertJustifyFlipped() = true, want false")
		}
		if got := f.EffectiveVertJustify(); got != sexp.VJustifyBottom {
			t.Errorf("EffectiveVertJustify() = %q, want bottom", got)
		}
	})

	t.Run("x-mirrored parent flips bottom to top", func(t *testing.T) {
		f := &Field{
			Text: "AB", At: at,
			HAlign: sexp.HJustifyLeft, VAlign: sexp.VJustifyBottom,
			parent: &Symbol{Mirror: "x"},
		}
		if !f.IsVertJustifyFlipped() {
			t.Error("IsVertJustifyFlipped() = false, want true")
		}
		if got := f.EffectiveVertJustify(); got != sexp.VJustifyTop {
			t.Errorf("EffectiveVertJustify() = %q, want top", got)
		}
	})

	t.Run("center never flips", func(t *testing.T) {
		f := &Field{
			Text: "AB", At: at,
			HAlign: sexp.HJustifyLeft, VAlign: sexp.VJustifyCenter,
			parent: &Symbol{Mirror: "x"},
		}
		if f.IsVertJustifyFlipped() {
			t.Error("IsVertJustifyFlipped() = true, want false")
		}
	})
}

func TestVertJustifyTopVerticalBranch(t *testing.T) {
	// Quarter-turned parent away from the origin. The top branch in the
	// vertical orientation compares the box center's X against the
	// anchor's world Y; this scenario pins that comparison's outcome.
	parent := &Symbol{Position: Position{X: 0, Y: 20}, Angle: 90}
	f := &Field{
		Text:   "AB",
		At:     PositionAngle{Position: Position{X: 5, Y: 20}},
		HAlign: sexp.HJustifyCenter,
		VAlign: sexp.VJustifyTop,
		parent: parent,
	}

	if got := f.DrawRotation(); got != 90 {
		t.Fatalf("DrawRotation() = %v, want 90", got)
	}
	posClose(t, "Position()", f.Position(), Position{X: 0, Y: 15})
	if !f.IsVertJustifyFlipped() {
		t.Error("IsVertJustifyFlipped() = false, want true")
	}
	if got := f.EffectiveVertJustify(); got != sexp.VJustifyBottom {
		t.Errorf("EffectiveVertJustify() = %q, want bottom", got)
	}
}

func TestSymbolFields(t *testing.T) {
	sym := &Symbol{
		Position: Position{X: 100, Y: 50},
		Angle:    90,
		Properties: []Property{
			{
				Key:   "Reference",
				Value: "R1",
				Position: PositionAngle{
					Position: Position{X: 102, Y: 50},
				},
				Effects: Effects{
					Justify: Justify{Horizontal: sexp.HJustifyLeft, Vertical: sexp.VJustifyCenter},
				},
			},
			{Key: "Value", Value: "~"},
		},
	}

	fields := sym.Fields()
	if len(fields) != 2 {
		t.Fatalf("Fields() returned %d fields, want 2", len(fields))
	}

	ref := fields[0]
	if ref.Key != "Reference" || ref.ShownText() != "R1" {
		t.Errorf("field 0 = %q/%q, want Reference/R1", ref.Key, ref.ShownText())
	}
	if got := ref.DrawRotation(); got != 90 {
		t.Errorf("DrawRotation() = %v, want 90", got)
	}
	// Offset (2,0) through the quarter-turn matrix becomes (0,-2)
	posClose(t, "Position()", ref.Position(), Position{X: 100, Y: 48})

	if got := fields[1].ShownText(); got != "" {
		t.Errorf("empty value field ShownText() = %q, want \"\"", got)
	}
}

func TestTextAsField(t *testing.T) {
	txt := &Text{
		Text:     "note",
		Position: Position{X: 1, Y: 2},
		Angle:    90,
		Effects: Effects{
			Justify: Justify{Horizontal: sexp.HJustifyCenter, Vertical: sexp.VJustifyCenter},
		},
	}

	f := txt.Field()
	if got := f.DrawRotation(); got != 90 {
		t.Errorf("DrawRotation() = %v, want 90", got)
	}
	posClose(t, "Position()", f.Position(), Position{X: 1, Y: 2})
}
