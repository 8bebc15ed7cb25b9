package schematic

import (
	"fmt"
	"io"
	"os"

	"github.com/willhack/kicanvas/pkg/kicad/sexp"
	"github.com/willhack/kicanvas/pkg/kicad/sexp/kicadsexp"
)

// Minimum supported KiCad version for schematics (6.0 = 20211014)
const MinSupportedVersion = 20211014

// ParseFile reads and parses a KiCad schematic file
func ParseFile(filename string) (*Schematic, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads and parses a KiCad schematic from an io.Reader
func Parse(r io.Reader) (*Schematic, error) {
	sexps, err := kicadsexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}

	if len(sexps) == 0 {
		return nil, fmt.Errorf("empty file or no valid s-expressions found")
	}

	// The root must be a (kicad_sch ...) expression
	root := sexps[0]
	rootName, err := sexp.GetNodeName(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get root node name: %w", err)
	}
	if rootName != "kicad_sch" {
		return nil, fmt.Errorf("not a KiCad schematic file: expected 'kicad_sch', got '%s'", rootName)
	}

	sch := &Schematic{}

	if err := parseHeader(root, sch); err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	if uuidNode, found := sexp.FindNode(root, "uuid"); found {
		sch.UUID, _ = sexp.GetUUID(uuidNode)
	}
	if paperNode, found := sexp.FindNode(root, "paper"); found {
		sch.Paper, _ = sexp.GetQuotedString(paperNode, 1)
	}
	if tbNode, found := sexp.FindNode(root, "title_block"); found {
		sch.TitleBlock = parseTitleBlock(tbNode)
	}
	if libNode, found := sexp.FindNode(root, "lib_symbols"); found {
		for _, symNode := range sexp.FindAllNodes(libNode, "symbol") {
			sch.LibSymbols = append(sch.LibSymbols, parseLibSymbol(symNode))
		}
	}

	for _, symNode := range sexp.FindAllNodes(root, "symbol") {
		sch.Symbols = append(sch.Symbols, parseSymbol(symNode))
	}

	sch.Wires = parseWires(root)
	sch.Buses = parseBuses(root)
	sch.BusEntries = parseBusEntries(root)
	sch.Junctions = parseJunctions(root)
	sch.NoConnects = parseNoConnects(root)
	sch.Labels = parseLabels(root)
	sch.GlobalLabels = parseGlobalLabels(root)
	sch.HierLabels = parseHierLabels(root)
	sch.Sheets = parseSheets(root)

	if instNode, found := sexp.FindNode(root, "sheet_instances"); found {
		sch.SheetInstances = parseSheetInstances(instNode)
	}

	sch.Polylines = parsePolylines(root)
	sch.Texts = parseTexts(root)
	sch.Images = parseImages(root)

	return sch, nil
}

// parseHeader extracts and validates version and generator information
func parseHeader(root kicadsexp.Sexp, sch *Schematic) error {
	versionNode, found := sexp.FindNode(root, "version")
	if !found {
		return fmt.Errorf("missing required 'version' field")
	}

	ver, err := sexp.GetInt(versionNode, 1)
	if err != nil {
		return fmt.Errorf("failed to parse version: %w", err)
	}
	if ver < MinSupportedVersion {
		return fmt.Errorf("unsupported KiCad version: %d (minimum required: %d / KiCad 6.0)", ver, MinSupportedVersion)
	}
	sch.Version = ver

	if genNode, found := sexp.FindNode(root, "generator"); found {
		sch.Generator, _ = sexp.GetQuotedString(genNode, 1)
	}
	if genVerNode, found := sexp.FindNode(root, "generator_version"); found {
		sch.GeneratorVer, _ = sexp.GetQuotedString(genVerNode, 1)
	}

	return nil
}

func parseTitleBlock(node kicadsexp.Sexp) TitleBlock {
	tb := TitleBlock{}

	if n, found := sexp.FindNode(node, "title"); found {
		tb.Title, _ = sexp.GetQuotedString(n, 1)
	}
	if n, found := sexp.FindNode(node, "date"); found {
		tb.Date, _ = sexp.GetQuotedString(n, 1)
	}
	if n, found := sexp.FindNode(node, "rev"); found {
		tb.Revision, _ = sexp.GetQuotedString(n, 1)
	}
	if n, found := sexp.FindNode(node, "company"); found {
		tb.Company, _ = sexp.GetQuotedString(n, 1)
	}
	for _, cn := range sexp.FindAllNodes(node, "comment") {
		num, _ := sexp.GetInt(cn, 1)
		text, _ := sexp.GetQuotedString(cn, 2)
		switch num {
		case 1:
			tb.Comment1 = text
		case 2:
			tb.Comment2 = text
		case 3:
			tb.Comment3 = text
		case 4:
			tb.Comment4 = text
		}
	}

	return tb
}

// parsePoints reads the xy points of a (pts ...) child node, if present
func parsePoints(node kicadsexp.Sexp) []Position {
	ptsNode, found := sexp.FindNode(node, "pts")
	if !found {
		return nil
	}
	xyNodes := sexp.FindAllNodes(ptsNode, "xy")
	points := make([]Position, 0, len(xyNodes))
	for _, xy := range xyNodes {
		pos, err := sexp.GetPositionXY(xy)
		if err != nil {
			continue
		}
		points = append(points, pos)
	}
	return points
}

func parseProperties(node kicadsexp.Sexp) []Property {
	var props []Property
	for _, pn := range sexp.FindAllNodes(node, "property") {
		prop, err := sexp.GetProperty(pn)
		if err == nil {
			props = append(props, prop)
		}
	}
	return props
}

// parseLibSymbol parses a single library symbol definition
func parseLibSymbol(node kicadsexp.Sexp) LibSymbol {
	sym := LibSymbol{
		InBom:   true,
		OnBoard: true,
	}

	sym.Name, _ = sexp.GetQuotedString(node, 1)
	sym.Properties = parseProperties(node)

	if pn, found := sexp.FindNode(node, "pin_numbers"); found {
		sym.PinNumbers = !sexp.HasSymbol(pn, "hide")
	}
	if pn, found := sexp.FindNode(node, "pin_names"); found {
		sym.PinNames = !sexp.HasSymbol(pn, "hide")
	}
	if ib, found := sexp.FindNode(node, "in_bom"); found {
		val, _ := sexp.GetString(ib, 1)
		sym.InBom = val == "yes"
	}
	if ob, found := sexp.FindNode(node, "on_board"); found {
		val, _ := sexp.GetString(ob, 1)
		sym.OnBoard = val == "yes"
	}

	// Nested symbol units hold the actual graphics and pins. Flatten
	// them onto the parent as well for easier access.
	for _, unitNode := range sexp.FindAllNodes(node, "symbol") {
		unit := parseSymbolUnit(unitNode)
		sym.Units = append(sym.Units, unit)
		sym.Graphics = append(sym.Graphics, unit.Graphics...)
		sym.Pins = append(sym.Pins, unit.Pins...)
	}

	return sym
}

func parseSymbolUnit(node kicadsexp.Sexp) SymbolUnit {
	unit := SymbolUnit{}
	unit.Name, _ = sexp.GetQuotedString(node, 1)

	for _, rn := range sexp.FindAllNodes(node, "rectangle") {
		unit.Graphics = append(unit.Graphics, parseShape("rectangle", rn))
	}
	for _, cn := range sexp.FindAllNodes(node, "circle") {
		unit.Graphics = append(unit.Graphics, parseShape("circle", cn))
	}
	for _, an := range sexp.FindAllNodes(node, "arc") {
		unit.Graphics = append(unit.Graphics, parseShape("arc", an))
	}
	for _, pn := range sexp.FindAllNodes(node, "polyline") {
		unit.Graphics = append(unit.Graphics, parseShape("polyline", pn))
	}
	for _, pn := range sexp.FindAllNodes(node, "pin") {
		unit.Pins = append(unit.Pins, parsePin(pn))
	}

	return unit
}

// parseShape parses a symbol graphic element. The element types share
// their stroke/fill layout and differ only in geometry nodes.
func parseShape(kind string, node kicadsexp.Sexp) SymGraphic {
	graphic := SymGraphic{Type: kind}

	if n, found := sexp.FindNode(node, "start"); found {
		graphic.Start, _ = sexp.GetPositionXY(n)
	}
	if n, found := sexp.FindNode(node, "end"); found {
		graphic.End, _ = sexp.GetPositionXY(n)
	}
	if n, found := sexp.FindNode(node, "center"); found {
		graphic.Center, _ = sexp.GetPositionXY(n)
	}
	if n, found := sexp.FindNode(node, "mid"); found {
		// Arc midpoint, stored as Center until proper arc math exists
		graphic.Center, _ = sexp.GetPositionXY(n)
	}
	if n, found := sexp.FindNode(node, "radius"); found {
		graphic.Radius, _ = sexp.GetFloat(n, 1)
	}
	graphic.Points = parsePoints(node)
	if n, found := sexp.FindNode(node, "stroke"); found {
		graphic.Stroke, _ = sexp.GetStroke(n)
	}
	if n, found := sexp.FindNode(node, "fill"); found {
		graphic.Fill, _ = sexp.GetFill(n)
	}

	return graphic
}

func parsePin(node kicadsexp.Sexp) Pin {
	pin := Pin{}

	pin.Type, _ = sexp.GetString(node, 1)
	pin.Style, _ = sexp.GetString(node, 2)

	if atNode, found := sexp.FindNode(node, "at"); found {
		pos, _ := sexp.GetPosition(atNode)
		pin.Position = pos.Position
		pin.Angle = pos.Angle
	}
	if lenNode, found := sexp.FindNode(node, "length"); found {
		pin.Length, _ = sexp.GetFloat(lenNode, 1)
	}
	if nameNode, found := sexp.FindNode(node, "name"); found {
		pin.Name.Name, _ = sexp.GetQuotedString(nameNode, 1)
		if en, found := sexp.FindNode(nameNode, "effects"); found {
			pin.Name.Effects, _ = sexp.GetEffects(en)
		}
	}
	if numNode, found := sexp.FindNode(node, "number"); found {
		pin.Number.Number, _ = sexp.GetQuotedString(numNode, 1)
		if en, found := sexp.FindNode(numNode, "effects"); found {
			pin.Number.Effects, _ = sexp.GetEffects(en)
		}
	}
	for _, an := range sexp.FindAllNodes(node, "alternate") {
		alt := AltPin{}
		alt.Name, _ = sexp.GetQuotedString(an, 1)
		alt.Type, _ = sexp.GetString(an, 2)
		alt.Style, _ = sexp.GetString(an, 3)
		pin.Alternate = append(pin.Alternate, alt)
	}
	pin.Hide = sexp.HasSymbol(node, "hide")

	return pin
}

// parseSymbol parses a symbol instance placed on the schematic
func parseSymbol(node kicadsexp.Sexp) Symbol {
	sym := Symbol{
		InBom:   true,
		OnBoard: true,
		Unit:    1,
	}

	if libNode, found := sexp.FindNode(node, "lib_id"); found {
		sym.LibID, _ = sexp.GetQuotedString(libNode, 1)
	}
	if atNode, found := sexp.FindNode(node, "at"); found {
		pos, _ := sexp.GetPosition(atNode)
		sym.Position = pos.Position
		sym.Angle = pos.Angle
	}
	if mirrorNode, found := sexp.FindNode(node, "mirror"); found {
		sym.Mirror, _ = sexp.GetString(mirrorNode, 1)
	}
	if unitNode, found := sexp.FindNode(node, "unit"); found {
		sym.Unit, _ = sexp.GetInt(unitNode, 1)
	}
	if uuidNode, found := sexp.FindNode(node, "uuid"); found {
		sym.UUID, _ = sexp.GetUUID(uuidNode)
	}

	sym.Properties = parseProperties(node)

	for _, pn := range sexp.FindAllNodes(node, "pin") {
		ref := PinRef{}
		ref.Number, _ = sexp.GetQuotedString(pn, 1)
		if uuidNode, found := sexp.FindNode(pn, "uuid"); found {
			ref.UUID, _ = sexp.GetUUID(uuidNode)
		}
		sym.Pins = append(sym.Pins, ref)
	}

	return sym
}

func parseWires(root kicadsexp.Sexp) []Wire {
	wireNodes := sexp.FindAllNodes(root, "wire")
	wires := make([]Wire, 0, len(wireNodes))

	for _, wn := range wireNodes {
		wire := Wire{Points: parsePoints(wn)}
		if n, found := sexp.FindNode(wn, "stroke"); found {
			wire.Stroke, _ = sexp.GetStroke(n)
		}
		if n, found := sexp.FindNode(wn, "uuid"); found {
			wire.UUID, _ = sexp.GetUUID(n)
		}
		wires = append(wires, wire)
	}

	return wires
}

func parseBuses(root kicadsexp.Sexp) []Bus {
	busNodes := sexp.FindAllNodes(root, "bus")
	buses := make([]Bus, 0, len(busNodes))

	for _, bn := range busNodes {
		bus := Bus{Points: parsePoints(bn)}
		if n, found := sexp.FindNode(bn, "stroke"); found {
			bus.Stroke, _ = sexp.GetStroke(n)
		}
		if n, found := sexp.FindNode(bn, "uuid"); found {
			bus.UUID, _ = sexp.GetUUID(n)
		}
		buses = append(buses, bus)
	}

	return buses
}

func parseBusEntries(root kicadsexp.Sexp) []BusEntry {
	entryNodes := sexp.FindAllNodes(root, "bus_entry")
	entries := make([]BusEntry, 0, len(entryNodes))

	for _, en := range entryNodes {
		entry := BusEntry{}
		if n, found := sexp.FindNode(en, "at"); found {
			entry.Position, _ = sexp.GetPositionXY(n)
		}
		if n, found := sexp.FindNode(en, "size"); found {
			entry.Size, _ = sexp.GetSize(n)
		}
		if n, found := sexp.FindNode(en, "stroke"); found {
			entry.Stroke, _ = sexp.GetStroke(n)
		}
		if n, found := sexp.FindNode(en, "uuid"); found {
			entry.UUID, _ = sexp.GetUUID(n)
		}
		entries = append(entries, entry)
	}

	return entries
}

func parseJunctions(root kicadsexp.Sexp) []Junction {
	juncNodes := sexp.FindAllNodes(root, "junction")
	junctions := make([]Junction, 0, len(juncNodes))

	for _, jn := range juncNodes {
		junc := Junction{}
		if n, found := sexp.FindNode(jn, "at"); found {
			junc.Position, _ = sexp.GetPositionXY(n)
		}
		if n, found := sexp.FindNode(jn, "diameter"); found {
			junc.Diameter, _ = sexp.GetFloat(n, 1)
		}
		if n, found := sexp.FindNode(jn, "color"); found {
			junc.Color, _ = sexp.GetColor(n)
		}
		if n, found := sexp.FindNode(jn, "uuid"); found {
			junc.UUID, _ = sexp.GetUUID(n)
		}
		junctions = append(junctions, junc)
	}

	return junctions
}

func parseNoConnects(root kicadsexp.Sexp) []NoConnect {
	ncNodes := sexp.FindAllNodes(root, "no_connect")
	ncs := make([]NoConnect, 0, len(ncNodes))

	for _, ncn := range ncNodes {
		nc := NoConnect{}
		if n, found := sexp.FindNode(ncn, "at"); found {
			nc.Position, _ = sexp.GetPositionXY(n)
		}
		if n, found := sexp.FindNode(ncn, "uuid"); found {
			nc.UUID, _ = sexp.GetUUID(n)
		}
		ncs = append(ncs, nc)
	}

	return ncs
}

// parseTextAt reads the common text/at/effects/uuid layout shared by
// every label flavor and graphical text
func parseTextAt(node kicadsexp.Sexp) (text string, pos PositionAngle, effects Effects, uuid UUID) {
	text, _ = sexp.GetQuotedString(node, 1)
	if n, found := sexp.FindNode(node, "at"); found {
		pos, _ = sexp.GetPosition(n)
	}
	if n, found := sexp.FindNode(node, "effects"); found {
		effects, _ = sexp.GetEffects(n)
	}
	if n, found := sexp.FindNode(node, "uuid"); found {
		uuid, _ = sexp.GetUUID(n)
	}
	return text, pos, effects, uuid
}

func parseLabels(root kicadsexp.Sexp) []Label {
	labelNodes := sexp.FindAllNodes(root, "label")
	labels := make([]Label, 0, len(labelNodes))

	for _, ln := range labelNodes {
		text, pos, effects, uuid := parseTextAt(ln)
		labels = append(labels, Label{
			Text:     text,
			Position: pos.Position,
			Angle:    pos.Angle,
			Effects:  effects,
			UUID:     uuid,
		})
	}

	return labels
}

func parseGlobalLabels(root kicadsexp.Sexp) []GlobalLabel {
	labelNodes := sexp.FindAllNodes(root, "global_label")
	labels := make([]GlobalLabel, 0, len(labelNodes))

	for _, ln := range labelNodes {
		text, pos, effects, uuid := parseTextAt(ln)
		label := GlobalLabel{
			Text:       text,
			Position:   pos.Position,
			Angle:      pos.Angle,
			Effects:    effects,
			UUID:       uuid,
			Properties: parseProperties(ln),
		}
		if n, found := sexp.FindNode(ln, "shape"); found {
			label.Shape, _ = sexp.GetString(n, 1)
		}
		labels = append(labels, label)
	}

	return labels
}

func parseHierLabels(root kicadsexp.Sexp) []HierLabel {
	labelNodes := sexp.FindAllNodes(root, "hierarchical_label")
	labels := make([]HierLabel, 0, len(labelNodes))

	for _, ln := range labelNodes {
		text, pos, effects, uuid := parseTextAt(ln)
		label := HierLabel{
			Text:     text,
			Position: pos.Position,
			Angle:    pos.Angle,
			Effects:  effects,
			UUID:     uuid,
		}
		if n, found := sexp.FindNode(ln, "shape"); found {
			label.Shape, _ = sexp.GetString(n, 1)
		}
		labels = append(labels, label)
	}

	return labels
}

func parseSheets(root kicadsexp.Sexp) []Sheet {
	sheetNodes := sexp.FindAllNodes(root, "sheet")
	sheets := make([]Sheet, 0, len(sheetNodes))

	for _, sn := range sheetNodes {
		sheet := Sheet{}
		if n, found := sexp.FindNode(sn, "at"); found {
			sheet.Position, _ = sexp.GetPositionXY(n)
		}
		if n, found := sexp.FindNode(sn, "size"); found {
			sheet.Size, _ = sexp.GetSize(n)
		}
		if n, found := sexp.FindNode(sn, "stroke"); found {
			sheet.Stroke, _ = sexp.GetStroke(n)
		}
		if n, found := sexp.FindNode(sn, "fill"); found {
			sheet.Fill, _ = sexp.GetFill(n)
		}
		if n, found := sexp.FindNode(sn, "uuid"); found {
			sheet.UUID, _ = sexp.GetUUID(n)
		}

		// Sheetname and Sheetfile are carried as properties in the file
		// format but have dedicated fields in the model
		for _, prop := range parseProperties(sn) {
			switch prop.Key {
			case "Sheetname":
				sheet.Name = SheetName{Name: prop.Value, Effects: prop.Effects}
			case "Sheetfile":
				sheet.FileName = SheetFileName{Name: prop.Value, Effects: prop.Effects}
			default:
				sheet.Properties = append(sheet.Properties, prop)
			}
		}

		for _, pn := range sexp.FindAllNodes(sn, "pin") {
			pin := SheetPin{}
			pin.Name, _ = sexp.GetQuotedString(pn, 1)
			pin.Shape, _ = sexp.GetString(pn, 2)
			if n, found := sexp.FindNode(pn, "at"); found {
				pin.Position, _ = sexp.GetPositionXY(n)
			}
			if n, found := sexp.FindNode(pn, "effects"); found {
				pin.Effects, _ = sexp.GetEffects(n)
			}
			if n, found := sexp.FindNode(pn, "uuid"); found {
				pin.UUID, _ = sexp.GetUUID(n)
			}
			sheet.Pins = append(sheet.Pins, pin)
		}

		sheets = append(sheets, sheet)
	}

	return sheets
}

func parseSheetInstances(node kicadsexp.Sexp) []SheetInstance {
	pathNodes := sexp.FindAllNodes(node, "path")
	instances := make([]SheetInstance, 0, len(pathNodes))

	for _, pn := range pathNodes {
		inst := SheetInstance{}
		inst.Path, _ = sexp.GetQuotedString(pn, 1)
		if pageNode, found := sexp.FindNode(pn, "page"); found {
			inst.Page, _ = sexp.GetQuotedString(pageNode, 1)
		}
		instances = append(instances, inst)
	}

	return instances
}

func parsePolylines(root kicadsexp.Sexp) []Polyline {
	polyNodes := sexp.FindAllNodes(root, "polyline")
	polys := make([]Polyline, 0, len(polyNodes))

	for _, pn := range polyNodes {
		poly := Polyline{Points: parsePoints(pn)}
		if n, found := sexp.FindNode(pn, "stroke"); found {
			poly.Stroke, _ = sexp.GetStroke(n)
		}
		if n, found := sexp.FindNode(pn, "uuid"); found {
			poly.UUID, _ = sexp.GetUUID(n)
		}
		polys = append(polys, poly)
	}

	return polys
}

func parseTexts(root kicadsexp.Sexp) []Text {
	textNodes := sexp.FindAllNodes(root, "text")
	texts := make([]Text, 0, len(textNodes))

	for _, tn := range textNodes {
		text, pos, effects, uuid := parseTextAt(tn)
		texts = append(texts, Text{
			Text:     text,
			Position: pos.Position,
			Angle:    pos.Angle,
			Effects:  effects,
			UUID:     uuid,
		})
	}

	return texts
}

func parseImages(root kicadsexp.Sexp) []Image {
	imageNodes := sexp.FindAllNodes(root, "image")
	images := make([]Image, 0, len(imageNodes))

	for _, in := range imageNodes {
		img := Image{Scale: 1}
		if n, found := sexp.FindNode(in, "at"); found {
			img.Position, _ = sexp.GetPositionXY(n)
		}
		if n, found := sexp.FindNode(in, "scale"); found {
			img.Scale, _ = sexp.GetFloat(n, 1)
		}
		if n, found := sexp.FindNode(in, "uuid"); found {
			img.UUID, _ = sexp.GetUUID(n)
		}
		if n, found := sexp.FindNode(in, "data"); found {
			img.Data, _ = sexp.GetQuotedString(n, 1)
		}
		images = append(images, img)
	}

	return images
}
