package renderer

import (
	"image/color"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/willhack/kicanvas/pkg/kicad/renderer"
	"github.com/willhack/kicanvas/pkg/kicad/schematic"
	"github.com/willhack/kicanvas/pkg/kicad/sexp"
)

// RenderFields renders a symbol's visible text fields (Reference,
// Value and any custom properties) at their computed world placement.
func RenderFields(gtx layout.Context, camera *renderer.Camera, symbol *schematic.Symbol, colors *SchematicColors) {
	for _, field := range symbol.Fields() {
		renderField(gtx, camera, field, colors.SymbolText)
	}
}

// RenderTexts renders free schematic text through the same placement
// path as symbol fields
func RenderTexts(gtx layout.Context, camera *renderer.Camera, texts []schematic.Text, colors *SchematicColors) {
	for i := range texts {
		renderField(gtx, camera, texts[i].Field(), colors.Text)
	}
}

// renderField draws one field at its effective position, rotation and
// justification
func renderField(gtx layout.Context, camera *renderer.Camera, field *schematic.Field, col color.NRGBA) {
	if field.Hidden() {
		return
	}
	shown := field.ShownText()
	if shown == "" {
		return
	}

	x, y := camera.WorldToScreen(field.Position())

	// Estimated text extent in screen pixels, for anchoring
	start, end := field.TextBox()
	w := float32((end.X - start.X) * camera.Zoom)
	h := float32((end.Y - start.Y) * camera.Zoom)

	var dx, dy float32
	switch field.EffectiveHorizJustify() {
	case sexp.HJustifyLeft:
		dx = 0
	case sexp.HJustifyRight:
		dx = -w
	default:
		dx = -w / 2
	}
	switch field.EffectiveVertJustify() {
	case sexp.VJustifyTop:
		dy = 0
	case sexp.VJustifyBottom:
		dy = -h
	default:
		dy = -h / 2
	}

	// The justification offset is applied in the rotated text frame,
	// then the whole thing is moved to the anchor. Screen Y grows
	// downward, so counterclockwise text rotation is negative here.
	affine := f32.Affine2D{}.Offset(f32.Pt(dx, dy))
	if rot := field.DrawRotation(); rot != 0 {
		affine = affine.Rotate(f32.Pt(0, 0), -float32(rot.Radians()))
	}
	affine = affine.Offset(f32.Pt(float32(x), float32(y)))
	stack := op.Affine(affine).Push(gtx.Ops)
	defer stack.Pop()

	fontSize := field.Font.Size.Height
	if fontSize <= 0 {
		fontSize = 1.27
	}

	lbl := material.Label(defaultTheme, unit.Sp(fontSize*mmToPoints), shown)
	lbl.Color = col
	lbl.Alignment = text.Start
	lbl.Layout(gtx)
}
