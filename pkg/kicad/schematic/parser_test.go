package schematic

import (
	"strings"
	"testing"
)

const minimalSchematic = `(kicad_sch (version 20230121) (generator "eeschema")
  (uuid "e63e39d7-6ac0-4ffd-8aa3-1841a4541b55")
  (paper "A4")
  (title_block
    (title "Test Schematic")
    (date "2024-01-01")
    (rev "A")
    (company "Acme")
    (comment 1 "first comment")
  )
  (lib_symbols
    (symbol "Device:R"
      (pin_numbers hide)
      (pin_names (offset 0))
      (in_bom yes)
      (on_board yes)
      (property "Reference" "R" (at 2.032 0 90)
        (effects (font (size 1.27 1.27)))
      )
      (symbol "R_0_1"
        (rectangle (start -1.016 -2.54) (end 1.016 2.54)
          (stroke (width 0.254) (type default))
          (fill (type none))
        )
      )
      (symbol "R_1_1"
        (pin passive line (at 0 3.81 270) (length 1.27)
          (name "~" (effects (font (size 1.27 1.27))))
          (number "1" (effects (font (size 1.27 1.27))))
        )
        (pin passive line (at 0 -3.81 90) (length 1.27)
          (name "~" (effects (font (size 1.27 1.27))))
          (number "2" (effects (font (size 1.27 1.27))))
        )
      )
    )
  )
  (junction (at 120.65 73.66) (diameter 0) (color 0 0 0 0)
    (uuid "c5f9e1d0-0001-4a7e-9353-6f0e4f7c2f01")
  )
  (no_connect (at 127 81.28)
    (uuid "c5f9e1d0-0002-4a7e-9353-6f0e4f7c2f02")
  )
  (wire (pts (xy 120.65 73.66) (xy 133.35 73.66))
    (stroke (width 0) (type default))
    (uuid "c5f9e1d0-0003-4a7e-9353-6f0e4f7c2f03")
  )
  (label "NET1" (at 125.73 73.66 0)
    (effects (font (size 1.27 1.27)) (justify left bottom))
    (uuid "c5f9e1d0-0004-4a7e-9353-6f0e4f7c2f04")
  )
  (global_label "VCC" (shape input) (at 133.35 73.66 0)
    (effects (font (size 1.27 1.27)) (justify left))
    (uuid "c5f9e1d0-0005-4a7e-9353-6f0e4f7c2f05")
  )
  (text "release note" (at 100 100 0)
    (effects (font (size 1.27 1.27)))
    (uuid "c5f9e1d0-0006-4a7e-9353-6f0e4f7c2f06")
  )
  (symbol (lib_id "Device:R") (at 120.65 80.01 90) (mirror y) (unit 1)
    (in_bom yes) (on_board yes)
    (uuid "c5f9e1d0-0007-4a7e-9353-6f0e4f7c2f07")
    (property "Reference" "R1" (at 122.682 80.01 90)
      (effects (font (size 1.27 1.27)) (justify left))
    )
    (property "Value" "10k" (at 118.618 80.01 90)
      (effects (font (size 1.27 1.27)) (justify right))
    )
    (property "Footprint" "~" (at 118.872 80.01 90)
      (effects (font (size 1.27 1.27)) hide)
    )
    (pin "1" (uuid "c5f9e1d0-0008-4a7e-9353-6f0e4f7c2f08"))
    (pin "2" (uuid "c5f9e1d0-0009-4a7e-9353-6f0e4f7c2f09"))
  )
)`

func parseTestSchematic(t *testing.T) *Schematic {
	t.Helper()
	sch, err := Parse(strings.NewReader(minimalSchematic))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return sch
}

func TestParseHeader(t *testing.T) {
	sch := parseTestSchematic(t)

	if sch.Version != 20230121 {
		t.Errorf("Version = %d, want 20230121", sch.Version)
	}
	if sch.Generator != "eeschema" {
		t.Errorf("Generator = %q, want eeschema", sch.Generator)
	}
	if sch.Paper != "A4" {
		t.Errorf("Paper = %q, want A4", sch.Paper)
	}
	if sch.UUID != "e63e39d7-6ac0-4ffd-8aa3-1841a4541b55" {
		t.Errorf("UUID = %q", sch.UUID)
	}
}

func TestParseTitleBlock(t *testing.T) {
	sch := parseTestSchematic(t)

	tb := sch.TitleBlock
	if tb.Title != "Test Schematic" {
		t.Errorf("Title = %q", tb.Title)
	}
	if tb.Date != "2024-01-01" {
		t.Errorf("Date = %q", tb.Date)
	}
	if tb.Revision != "A" {
		t.Errorf("Revision = %q", tb.Revision)
	}
	if tb.Company != "Acme" {
		t.Errorf("Company = %q", tb.Company)
	}
	if tb.Comment1 != "first comment" {
		t.Errorf("Comment1 = %q", tb.Comment1)
	}
}

func TestParseLibSymbols(t *testing.T) {
	sch := parseTestSchematic(t)

	if len(sch.LibSymbols) != 1 {
		t.Fatalf("got %d lib symbols, want 1", len(sch.LibSymbols))
	}
	lib := sch.LibSymbols[0]
	if lib.Name != "Device:R" {
		t.Errorf("Name = %q, want Device:R", lib.Name)
	}
	if lib.PinNumbers {
		t.Error("PinNumbers = true, want false (hidden)")
	}
	if !lib.InBom || !lib.OnBoard {
		t.Errorf("InBom/OnBoard = %v/%v, want true/true", lib.InBom, lib.OnBoard)
	}
	if len(lib.Units) != 2 {
		t.Fatalf("got %d units, want 2", len(lib.Units))
	}
	if len(lib.Graphics) != 1 {
		t.Fatalf("got %d graphics, want 1", len(lib.Graphics))
	}
	rect := lib.Graphics[0]
	if rect.Type != "rectangle" {
		t.Errorf("graphic type = %q, want rectangle", rect.Type)
	}
	if rect.Start.X != -1.016 || rect.End.Y != 2.54 {
		t.Errorf("rectangle corners = %v/%v", rect.Start, rect.End)
	}
	if len(lib.Pins) != 2 {
		t.Fatalf("got %d pins, want 2", len(lib.Pins))
	}
	pin := lib.Pins[0]
	if pin.Type != "passive" || pin.Style != "line" {
		t.Errorf("pin = %q/%q, want passive/line", pin.Type, pin.Style)
	}
	if pin.Angle != 270 {
		t.Errorf("pin angle = %v, want 270", pin.Angle)
	}
	if pin.Number.Number != "1" {
		t.Errorf("pin number = %q, want 1", pin.Number.Number)
	}
}

func TestParseSymbolInstance(t *testing.T) {
	sch := parseTestSchematic(t)

	if len(sch.Symbols) != 1 {
		t.Fatalf("got %d symbols, want 1", len(sch.Symbols))
	}
	sym := sch.Symbols[0]
	if sym.LibID != "Device:R" {
		t.Errorf("LibID = %q", sym.LibID)
	}
	if sym.Position.X != 120.65 || sym.Position.Y != 80.01 {
		t.Errorf("Position = %v", sym.Position)
	}
	if sym.Angle != 90 {
		t.Errorf("Angle = %v, want 90", sym.Angle)
	}
	if sym.Mirror != "y" {
		t.Errorf("Mirror = %q, want y", sym.Mirror)
	}
	if sym.Reference() != "R1" {
		t.Errorf("Reference() = %q, want R1", sym.Reference())
	}
	if len(sym.Properties) != 3 {
		t.Fatalf("got %d properties, want 3", len(sym.Properties))
	}
	if len(sym.Pins) != 2 {
		t.Errorf("got %d pin refs, want 2", len(sym.Pins))
	}

	val := sym.Properties[1]
	if val.Key != "Value" || val.Value != "10k" {
		t.Errorf("property 1 = %q/%q", val.Key, val.Value)
	}
	if val.Effects.Justify.Horizontal != "right" {
		t.Errorf("Value justify = %q, want right", val.Effects.Justify.Horizontal)
	}

	fp := sym.Properties[2]
	if !fp.Effects.Hide {
		t.Error("Footprint property should be hidden")
	}
}

func TestParsedSymbolFieldPlacement(t *testing.T) {
	// End to end: parsed rotated and mirrored symbol feeds the field
	// placement getters
	sch := parseTestSchematic(t)
	sym := sch.GetSymbol("R1")
	if sym == nil {
		t.Fatal("GetSymbol(R1) returned nil")
	}

	fields := sym.Fields()
	ref := fields[0]
	if got := ref.DrawRotation(); got != 0 {
		t.Errorf("DrawRotation() = %v, want 0 (authored 90 under quarter-turned parent)", got)
	}
	if got := fields[2].ShownText(); got != "" {
		t.Errorf("Footprint ShownText() = %q, want \"\"", got)
	}
}

func TestParseConnectivity(t *testing.T) {
	sch := parseTestSchematic(t)

	if len(sch.Wires) != 1 || len(sch.Wires[0].Points) != 2 {
		t.Fatalf("wires = %+v, want one wire with two points", sch.Wires)
	}
	if sch.Wires[0].Points[1].X != 133.35 {
		t.Errorf("wire end X = %v, want 133.35", sch.Wires[0].Points[1].X)
	}
	if len(sch.Junctions) != 1 {
		t.Errorf("got %d junctions, want 1", len(sch.Junctions))
	}
	if len(sch.NoConnects) != 1 {
		t.Errorf("got %d no-connects, want 1", len(sch.NoConnects))
	}
}

func TestParseLabelsAndText(t *testing.T) {
	sch := parseTestSchematic(t)

	if len(sch.Labels) != 1 {
		t.Fatalf("got %d labels, want 1", len(sch.Labels))
	}
	label := sch.Labels[0]
	if label.Text != "NET1" {
		t.Errorf("label text = %q", label.Text)
	}
	if label.Effects.Justify.Horizontal != "left" || label.Effects.Justify.Vertical != "bottom" {
		t.Errorf("label justify = %+v", label.Effects.Justify)
	}

	if len(sch.GlobalLabels) != 1 {
		t.Fatalf("got %d global labels, want 1", len(sch.GlobalLabels))
	}
	if sch.GlobalLabels[0].Shape != "input" {
		t.Errorf("global label shape = %q, want input", sch.GlobalLabels[0].Shape)
	}

	if len(sch.Texts) != 1 || sch.Texts[0].Text != "release note" {
		t.Errorf("texts = %+v", sch.Texts)
	}

	names := sch.GetLabels()
	if len(names) != 2 {
		t.Errorf("GetLabels() = %v, want 2 names", names)
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"wrong root", `(kicad_pcb (version 20230121))`},
		{"missing version", `(kicad_sch (generator "eeschema"))`},
		{"old version", `(kicad_sch (version 20200101))`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.input)); err == nil {
				t.Error("Parse succeeded, want error")
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	sch, err := ParseFile("../../../testdata/test.kicad_sch")
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(sch.Symbols) == 0 {
		t.Error("expected at least one symbol")
	}
	if sch.GetSymbol("R1") == nil {
		t.Error("GetSymbol(R1) returned nil")
	}
	bbox := sch.GetBoundingBox()
	if bbox.IsEmpty() {
		t.Error("schematic bounding box is empty")
	}
}
