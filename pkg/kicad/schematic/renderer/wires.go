package renderer

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/willhack/kicanvas/pkg/kicad/renderer"
	"github.com/willhack/kicanvas/pkg/kicad/schematic"
)

// Stroke widths in screen pixels
const (
	wireWidth     = 2.0
	busWidth      = 4.0
	busEntryWidth = 2.0
	markerWidth   = 2.0
)

// strokePolyline strokes a connected sequence of world-space points
func strokePolyline(gtx layout.Context, camera *renderer.Camera, points []schematic.Position, col color.NRGBA, width float32) {
	if len(points) < 2 {
		return
	}

	var path clip.Path
	path.Begin(gtx.Ops)

	x0, y0 := camera.WorldToScreen(points[0])
	path.MoveTo(f32.Pt(float32(x0), float32(y0)))
	for _, p := range points[1:] {
		x, y := camera.WorldToScreen(p)
		path.LineTo(f32.Pt(float32(x), float32(y)))
	}

	paint.FillShape(gtx.Ops, col, clip.Stroke{
		Path:  path.End(),
		Width: width,
	}.Op())
}

// RenderWires renders all wires in the schematic
func RenderWires(gtx layout.Context, camera *renderer.Camera, wires []schematic.Wire, colors *SchematicColors) {
	for _, wire := range wires {
		strokePolyline(gtx, camera, wire.Points, colors.Wire, wireWidth)
	}
}

// RenderBuses renders all buses in the schematic
func RenderBuses(gtx layout.Context, camera *renderer.Camera, buses []schematic.Bus, colors *SchematicColors) {
	for _, bus := range buses {
		strokePolyline(gtx, camera, bus.Points, colors.Bus, busWidth)
	}
}

// RenderBusEntries renders the diagonal bus entry markers
func RenderBusEntries(gtx layout.Context, camera *renderer.Camera, entries []schematic.BusEntry, colors *SchematicColors) {
	for _, entry := range entries {
		end := schematic.Position{
			X: entry.Position.X + entry.Size.Width,
			Y: entry.Position.Y + entry.Size.Height,
		}
		strokePolyline(gtx, camera, []schematic.Position{entry.Position, end}, colors.Bus, busEntryWidth)
	}
}

// RenderJunctions renders filled circles at wire junctions
func RenderJunctions(gtx layout.Context, camera *renderer.Camera, junctions []schematic.Junction, colors *SchematicColors) {
	const radius = 4.0

	for _, junction := range junctions {
		x, y := camera.WorldToScreen(junction.Position)
		paint.FillShape(gtx.Ops, colors.Junction,
			clip.Ellipse{
				Min: image.Pt(int(x-radius), int(y-radius)),
				Max: image.Pt(int(x+radius), int(y+radius)),
			}.Op(gtx.Ops))
	}
}

// RenderNoConnects renders the X markers on unconnected pins
func RenderNoConnects(gtx layout.Context, camera *renderer.Camera, noConnects []schematic.NoConnect, colors *SchematicColors) {
	const half = 5.0

	for _, nc := range noConnects {
		x, y := camera.WorldToScreen(nc.Position)

		var path clip.Path
		path.Begin(gtx.Ops)
		path.MoveTo(f32.Pt(float32(x-half), float32(y-half)))
		path.LineTo(f32.Pt(float32(x+half), float32(y+half)))
		path.MoveTo(f32.Pt(float32(x+half), float32(y-half)))
		path.LineTo(f32.Pt(float32(x-half), float32(y+half)))

		paint.FillShape(gtx.Ops, colors.NoConnect, clip.Stroke{
			Path:  path.End(),
			Width: markerWidth,
		}.Op())
	}
}

// RenderPolylines renders free graphical polylines
func RenderPolylines(gtx layout.Context, camera *renderer.Camera, polylines []schematic.Polyline, colors *SchematicColors) {
	for _, poly := range polylines {
		width := float32(1.0)
		if poly.Stroke.Width > 0 {
			width = float32(poly.Stroke.Width * camera.Zoom)
			if width < 1.0 {
				width = 1.0
			}
		}
		strokePolyline(gtx, camera, poly.Points, colors.Wire, width)
	}
}
