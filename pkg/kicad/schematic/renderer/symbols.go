package renderer

import (
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/willhack/kicanvas/pkg/kicad/renderer"
	"github.com/willhack/kicanvas/pkg/kicad/schematic"
)

// RenderSymbols renders all symbol instances in the schematic
func RenderSymbols(gtx layout.Context, camera *renderer.Camera, sch *schematic.Schematic, colors *SchematicColors) {
	if sch == nil {
		return
	}

	for i := range sch.Symbols {
		renderSymbol(gtx, camera, &sch.Symbols[i], sch, colors)
	}
}

// renderSymbol renders one symbol instance: body graphics and pins in
// the symbol's local frame, then text fields in world coordinates
func renderSymbol(gtx layout.Context, camera *renderer.Camera, symbol *schematic.Symbol, sch *schematic.Schematic, colors *SchematicColors) {
	var libSym *schematic.LibSymbol
	for i := range sch.LibSymbols {
		if sch.LibSymbols[i].Name == symbol.LibID {
			libSym = &sch.LibSymbols[i]
			break
		}
	}
	if libSym == nil {
		return
	}

	x, y := camera.WorldToScreen(symbol.Position)
	stack := op.Affine(symbolAffine(symbol).Offset(f32.Pt(float32(x), float32(y)))).Push(gtx.Ops)

	renderSymbolGraphics(gtx, camera, libSym.Graphics, colors)
	renderSymbolPins(gtx, camera, libSym.Pins, colors)

	stack.Pop()

	// Fields place themselves in world coordinates, outside the local
	// symbol frame
	RenderFields(gtx, camera, symbol, colors)
}

// symbolAffine builds the screen-space transform for a symbol's local
// graphics. It mirrors the placement matrix used for field geometry:
// library graphics are authored Y-up, so Y is flipped first, then the
// rotation and mirror attributes apply.
func symbolAffine(symbol *schematic.Symbol) f32.Affine2D {
	t := symbol.PlacementTransform()
	return f32.NewAffine2D(
		float32(t.A), float32(t.B), 0,
		float32(t.D), float32(t.E), 0,
	)
}

func renderSymbolGraphics(gtx layout.Context, camera *renderer.Camera, graphics []schematic.SymGraphic, colors *SchematicColors) {
	for _, graphic := range graphics {
		switch graphic.Type {
		case "rectangle":
			renderRectangle(gtx, camera, graphic, colors)
		case "circle":
			renderCircle(gtx, camera, graphic, colors)
		case "arc":
			renderArc(gtx, camera, graphic, colors)
		case "polyline":
			renderGraphicPolyline(gtx, camera, graphic, colors)
		}
	}
}

// fill types "background", "outline" and "color" get a filled interior;
// "color" suppresses the outline
func wantsFill(fill schematic.Fill) bool {
	return fill.Type == "background" || fill.Type == "outline" || fill.Type == "color"
}

func wantsOutline(fill schematic.Fill) bool {
	return fill.Type != "color"
}

// outlineWidth scales a stroke width to screen pixels with a minimum
// for visibility
func outlineWidth(stroke schematic.Stroke, zoom float64) float32 {
	w := 0.25 // KiCad default, mm
	if stroke.Width > 0 {
		w = stroke.Width
	}
	w *= zoom
	if w < 3.0 {
		w = 3.0
	}
	return float32(w)
}

func renderRectangle(gtx layout.Context, camera *renderer.Camera, graphic schematic.SymGraphic, colors *SchematicColors) {
	// Symbol graphics are drawn in local symbol space, pre-scaled by
	// the camera zoom; only stroke widths need explicit scaling
	x1 := float32(graphic.Start.X * camera.Zoom)
	y1 := float32(graphic.Start.Y * camera.Zoom)
	x2 := float32(graphic.End.X * camera.Zoom)
	y2 := float32(graphic.End.Y * camera.Zoom)

	rect := func() clip.Path {
		var p clip.Path
		p.Begin(gtx.Ops)
		p.MoveTo(f32.Pt(x1, y1))
		p.LineTo(f32.Pt(x2, y1))
		p.LineTo(f32.Pt(x2, y2))
		p.LineTo(f32.Pt(x1, y2))
		p.Close()
		return p
	}

	if wantsFill(graphic.Fill) {
		p := rect()
		paint.FillShape(gtx.Ops, colors.SymbolFill, clip.Outline{Path: p.End()}.Op())
	}
	if wantsOutline(graphic.Fill) {
		p := rect()
		paint.FillShape(gtx.Ops, colors.SymbolBody, clip.Stroke{
			Path:  p.End(),
			Width: outlineWidth(graphic.Stroke, camera.Zoom),
		}.Op())
	}
}

func renderCircle(gtx layout.Context, camera *renderer.Camera, graphic schematic.SymGraphic, colors *SchematicColors) {
	cx := float32(graphic.Center.X * camera.Zoom)
	cy := float32(graphic.Center.Y * camera.Zoom)
	radius := float32(graphic.Radius * camera.Zoom)

	circle := func() clip.Path {
		var p clip.Path
		p.Begin(gtx.Ops)
		const segments = 32
		for i := 0; i <= segments; i++ {
			angle := float64(i) * 2.0 * math.Pi / segments
			x := cx + radius*float32(math.Cos(angle))
			y := cy + radius*float32(math.Sin(angle))
			if i == 0 {
				p.MoveTo(f32.Pt(x, y))
			} else {
				p.LineTo(f32.Pt(x, y))
			}
		}
		p.Close()
		return p
	}

	if wantsFill(graphic.Fill) {
		p := circle()
		paint.FillShape(gtx.Ops, colors.SymbolFill, clip.Outline{Path: p.End()}.Op())
	}
	if wantsOutline(graphic.Fill) {
		p := circle()
		paint.FillShape(gtx.Ops, colors.SymbolBody, clip.Stroke{
			Path:  p.End(),
			Width: outlineWidth(graphic.Stroke, camera.Zoom),
		}.Op())
	}
}

func renderArc(gtx layout.Context, camera *renderer.Camera, graphic schematic.SymGraphic, colors *SchematicColors) {
	cx := float32(graphic.Center.X * camera.Zoom)
	cy := float32(graphic.Center.Y * camera.Zoom)

	dx := graphic.Start.X - graphic.Center.X
	dy := graphic.Start.Y - graphic.Center.Y
	radius := float32(math.Sqrt(dx*dx+dy*dy) * camera.Zoom)

	startAngle := graphic.Angles[0] * math.Pi / 180.0
	endAngle := graphic.Angles[1] * math.Pi / 180.0

	var path clip.Path
	path.Begin(gtx.Ops)

	const segments = 32
	for i := 0; i <= segments; i++ {
		t := float64(i) / segments
		angle := startAngle + t*(endAngle-startAngle)
		x := cx + radius*float32(math.Cos(angle))
		y := cy + radius*float32(math.Sin(angle))
		if i == 0 {
			path.MoveTo(f32.Pt(x, y))
		} else {
			path.LineTo(f32.Pt(x, y))
		}
	}

	paint.FillShape(gtx.Ops, colors.SymbolBody, clip.Stroke{
		Path:  path.End(),
		Width: outlineWidth(graphic.Stroke, camera.Zoom),
	}.Op())
}

func renderGraphicPolyline(gtx layout.Context, camera *renderer.Camera, graphic schematic.SymGraphic, colors *SchematicColors) {
	if len(graphic.Points) < 2 {
		return
	}

	poly := func() clip.Path {
		var p clip.Path
		p.Begin(gtx.Ops)
		p.MoveTo(f32.Pt(
			float32(graphic.Points[0].X*camera.Zoom),
			float32(graphic.Points[0].Y*camera.Zoom)))
		for _, pt := range graphic.Points[1:] {
			p.LineTo(f32.Pt(float32(pt.X*camera.Zoom), float32(pt.Y*camera.Zoom)))
		}
		return p
	}

	if wantsFill(graphic.Fill) {
		p := poly()
		p.Close()
		paint.FillShape(gtx.Ops, colors.SymbolFill, clip.Outline{Path: p.End()}.Op())
	}
	if wantsOutline(graphic.Fill) {
		p := poly()
		paint.FillShape(gtx.Ops, colors.SymbolBody, clip.Stroke{
			Path:  p.End(),
			Width: outlineWidth(graphic.Stroke, camera.Zoom),
		}.Op())
	}
}

func renderSymbolPins(gtx layout.Context, camera *renderer.Camera, pins []schematic.Pin, colors *SchematicColors) {
	for _, pin := range pins {
		renderPin(gtx, camera, pin, colors)
	}
}

// renderPin renders a single pin in symbol-local space
func renderPin(gtx layout.Context, camera *renderer.Camera, pin schematic.Pin, colors *SchematicColors) {
	if pin.Hide {
		return
	}

	px := float32(pin.Position.X * camera.Zoom)
	py := float32(pin.Position.Y * camera.Zoom)

	length := float32(pin.Length * camera.Zoom)
	var ex, ey float32
	switch pin.Angle {
	case 0:
		ex, ey = px+length, py
	case 90:
		ex, ey = px, py-length
	case 180:
		ex, ey = px-length, py
	case 270:
		ex, ey = px, py+length
	default:
		sin, cos := math.Sincos(pin.Angle.Radians())
		ex = px + length*float32(cos)
		ey = py + length*float32(sin)
	}

	switch pin.Style {
	case "inverted":
		renderInvertedPin(gtx, px, py, ex, ey, colors)
	case "clock":
		renderClockPin(gtx, px, py, ex, ey, colors)
	case "inverted_clock":
		renderInvertedPin(gtx, px, py, ex, ey, colors)
		renderClockTriangle(gtx, px, py, ex, ey, bubbleRadius*2, colors)
	default:
		renderLinePin(gtx, px, py, ex, ey, colors)
	}
}

const bubbleRadius = 4.0

func renderLinePin(gtx layout.Context, px, py, ex, ey float32, colors *SchematicColors) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(px, py))
	path.LineTo(f32.Pt(ex, ey))

	paint.FillShape(gtx.Ops, colors.SymbolPin, clip.Stroke{
		Path:  path.End(),
		Width: 2.0,
	}.Op())
}

// pinDirection returns the unit vector from pin position to endpoint
func pinDirection(px, py, ex, ey float32) (float32, float32) {
	dx := ex - px
	dy := ey - py
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length > 0 {
		dx /= length
		dy /= length
	}
	return dx, dy
}

func renderInvertedPin(gtx layout.Context, px, py, ex, ey float32, colors *SchematicColors) {
	dx, dy := pinDirection(px, py, ex, ey)

	cx := px + dx*bubbleRadius
	cy := py + dy*bubbleRadius

	var circlePath clip.Path
	circlePath.Begin(gtx.Ops)
	const segments = 16
	for i := 0; i <= segments; i++ {
		angle := float64(i) * 2.0 * math.Pi / segments
		x := cx + bubbleRadius*float32(math.Cos(angle))
		y := cy + bubbleRadius*float32(math.Sin(angle))
		if i == 0 {
			circlePath.MoveTo(f32.Pt(x, y))
		} else {
			circlePath.LineTo(f32.Pt(x, y))
		}
	}
	circlePath.Close()

	paint.FillShape(gtx.Ops, colors.SymbolPin, clip.Stroke{
		Path:  circlePath.End(),
		Width: 2.0,
	}.Op())

	// Line starts past the bubble
	renderLinePin(gtx, px+dx*bubbleRadius*2, py+dy*bubbleRadius*2, ex, ey, colors)
}

func renderClockPin(gtx layout.Context, px, py, ex, ey float32, colors *SchematicColors) {
	renderLinePin(gtx, px, py, ex, ey, colors)
	renderClockTriangle(gtx, px, py, ex, ey, 0, colors)
}

// renderClockTriangle draws the clock wedge at the pin base, offset
// along the pin by the given distance
func renderClockTriangle(gtx layout.Context, px, py, ex, ey, offset float32, colors *SchematicColors) {
	const triangleSize = 6.0

	dx, dy := pinDirection(px, py, ex, ey)
	bx := px + dx*offset
	by := py + dy*offset

	perpX, perpY := -dy, dx

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(bx+dx*triangleSize, by+dy*triangleSize))
	path.LineTo(f32.Pt(bx+perpX*triangleSize*0.5, by+perpY*triangleSize*0.5))
	path.LineTo(f32.Pt(bx-perpX*triangleSize*0.5, by-perpY*triangleSize*0.5))
	path.Close()

	paint.FillShape(gtx.Ops, colors.SymbolPin, clip.Stroke{
		Path:  path.End(),
		Width: 2.0,
	}.Op())
}
