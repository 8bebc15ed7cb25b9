// Package renderer draws parsed schematics using gio paint operations.
package renderer

import (
	"gioui.org/layout"

	"github.com/willhack/kicanvas/pkg/kicad/renderer"
	"github.com/willhack/kicanvas/pkg/kicad/schematic"
)

// RenderSchematic renders the entire schematic, back to front
func RenderSchematic(gtx layout.Context, camera *renderer.Camera, sch *schematic.Schematic, colors *SchematicColors) {
	RenderSchematicWithOptions(gtx, camera, sch, colors, DefaultRenderOptions())
}

// RenderSchematicWithOptions renders the schematic with per-element
// visibility control. Order matters: sheets and free graphics first,
// then connectivity, then symbols, with labels on top.
func RenderSchematicWithOptions(gtx layout.Context, camera *renderer.Camera, sch *schematic.Schematic, colors *SchematicColors, opts RenderOptions) {
	if sch == nil {
		return
	}

	if opts.ShowSheets {
		RenderSheets(gtx, camera, sch.Sheets, colors)
	}
	if opts.ShowPolylines {
		RenderPolylines(gtx, camera, sch.Polylines, colors)
	}
	if opts.ShowText {
		RenderTexts(gtx, camera, sch.Texts, colors)
	}

	if opts.ShowBuses {
		RenderBuses(gtx, camera, sch.Buses, colors)
		RenderBusEntries(gtx, camera, sch.BusEntries, colors)
	}
	if opts.ShowWires {
		RenderWires(gtx, camera, sch.Wires, colors)
	}
	if opts.ShowJunctions {
		RenderJunctions(gtx, camera, sch.Junctions, colors)
	}
	if opts.ShowNoConnects {
		RenderNoConnects(gtx, camera, sch.NoConnects, colors)
	}

	if opts.ShowSymbols {
		RenderSymbols(gtx, camera, sch, colors)
	}

	if opts.ShowLabels {
		RenderLabels(gtx, camera, sch.Labels, colors)
		RenderGlobalLabels(gtx, camera, sch.GlobalLabels, colors)
		RenderHierLabels(gtx, camera, sch.HierLabels, colors)
	}
}

// RenderOptions controls which element classes are drawn
type RenderOptions struct {
	ShowWires      bool
	ShowBuses      bool
	ShowJunctions  bool
	ShowNoConnects bool
	ShowLabels     bool
	ShowSymbols    bool
	ShowText       bool
	ShowSheets     bool
	ShowPolylines  bool
}

// DefaultRenderOptions enables everything
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		ShowWires:      true,
		ShowBuses:      true,
		ShowJunctions:  true,
		ShowNoConnects: true,
		ShowLabels:     true,
		ShowSymbols:    true,
		ShowText:       true,
		ShowSheets:     true,
		ShowPolylines:  true,
	}
}
