package renderer

import (
	"image/color"

	"gioui.org/f32"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/willhack/kicanvas/pkg/kicad/renderer"
	"github.com/willhack/kicanvas/pkg/kicad/schematic"
)

// Shared theme for text shaping
var defaultTheme = material.NewTheme()

func init() {
	defaultTheme.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
}

// mm to font points, approximate
const mmToPoints = 2.83

// RenderLabels renders all local labels in the schematic
func RenderLabels(gtx layout.Context, camera *renderer.Camera, labels []schematic.Label, colors *SchematicColors) {
	for _, label := range labels {
		stack := translateRotate(gtx, camera, label.Position, label.Angle)
		renderLabelText(gtx, label.Text, label.Effects, colors.LocalLabel)
		stack.Pop()
	}
}

// RenderGlobalLabels renders all global labels with their shape outline
func RenderGlobalLabels(gtx layout.Context, camera *renderer.Camera, labels []schematic.GlobalLabel, colors *SchematicColors) {
	for _, label := range labels {
		stack := translateRotate(gtx, camera, label.Position, label.Angle)
		drawLabelShape(gtx, label.Shape, label.Text, label.Effects, colors.GlobalLabel)
		renderLabelText(gtx, label.Text, label.Effects, colors.GlobalLabel)
		stack.Pop()
	}
}

// RenderHierLabels renders all hierarchical labels
func RenderHierLabels(gtx layout.Context, camera *renderer.Camera, labels []schematic.HierLabel, colors *SchematicColors) {
	for _, label := range labels {
		stack := translateRotate(gtx, camera, label.Position, label.Angle)
		drawLabelShape(gtx, label.Shape, label.Text, label.Effects, colors.HierLabel)
		renderLabelText(gtx, label.Text, label.Effects, colors.HierLabel)
		stack.Pop()
	}
}

// translateRotate moves the drawing origin to a world position and
// applies a rotation about it
func translateRotate(gtx layout.Context, camera *renderer.Camera, pos schematic.Position, angle schematic.Angle) op.TransformStack {
	x, y := camera.WorldToScreen(pos)
	affine := f32.Affine2D{}.Offset(f32.Pt(float32(x), float32(y)))
	if angle != 0 {
		affine = affine.Rotate(f32.Pt(float32(x), float32(y)), float32(angle.Radians()))
	}
	return op.Affine(affine).Push(gtx.Ops)
}

// renderLabelText draws the text content of a label at the current origin
func renderLabelText(gtx layout.Context, textStr string, effects schematic.Effects, labelColor color.NRGBA) {
	if textStr == "" {
		return
	}

	fontSize := 12.0
	if effects.Font.Size.Height > 0 {
		fontSize = effects.Font.Size.Height * mmToPoints
	}

	lbl := material.Label(defaultTheme, unit.Sp(fontSize), textStr)
	lbl.Color = labelColor
	lbl.Alignment = text.Start
	lbl.Layout(gtx)
}

// drawLabelShape draws the outline shape around a global or
// hierarchical label. The outline width tracks an average-advance text
// size estimate, not shaped glyph metrics.
func drawLabelShape(gtx layout.Context, shape string, label string, effects schematic.Effects, col color.NRGBA) {
	if shape == "" {
		return
	}

	textWidth := float32(len(label) * 8)
	textHeight := float32(16)
	if effects.Font.Size.Height > 0 {
		textHeight = float32(effects.Font.Size.Height * 3.5)
		textWidth = float32(len(label)) * textHeight * 0.6
	}

	const arrowSize = 8.0
	const padding = 4.0
	right := textWidth + padding

	var path clip.Path
	path.Begin(gtx.Ops)

	switch shape {
	case "input":
		path.MoveTo(f32.Pt(-arrowSize, textHeight/2))
		path.LineTo(f32.Pt(0, 0))
		path.LineTo(f32.Pt(right, 0))
		path.LineTo(f32.Pt(right, textHeight))
		path.LineTo(f32.Pt(0, textHeight))
		path.Close()
	case "output":
		path.MoveTo(f32.Pt(0, 0))
		path.LineTo(f32.Pt(right, 0))
		path.LineTo(f32.Pt(right+arrowSize, textHeight/2))
		path.LineTo(f32.Pt(right, textHeight))
		path.LineTo(f32.Pt(0, textHeight))
		path.Close()
	case "bidirectional":
		path.MoveTo(f32.Pt(-arrowSize, textHeight/2))
		path.LineTo(f32.Pt(0, 0))
		path.LineTo(f32.Pt(right, 0))
		path.LineTo(f32.Pt(right+arrowSize, textHeight/2))
		path.LineTo(f32.Pt(right, textHeight))
		path.LineTo(f32.Pt(0, textHeight))
		path.Close()
	default:
		// passive, 3state, unspecified and anything unknown get a
		// plain rectangle
		path.MoveTo(f32.Pt(0, 0))
		path.LineTo(f32.Pt(right, 0))
		path.LineTo(f32.Pt(right, textHeight))
		path.LineTo(f32.Pt(0, textHeight))
		path.Close()
	}

	paint.FillShape(gtx.Ops, col, clip.Stroke{
		Path:  path.End(),
		Width: 2.0,
	}.Op())
}
