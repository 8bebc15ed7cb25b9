package renderer

import (
	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/willhack/kicanvas/pkg/kicad/renderer"
	"github.com/willhack/kicanvas/pkg/kicad/schematic"
)

// RenderSheets renders hierarchical sheet outlines with their name and
// file name annotations
func RenderSheets(gtx layout.Context, camera *renderer.Camera, sheets []schematic.Sheet, colors *SchematicColors) {
	for _, sheet := range sheets {
		renderSheet(gtx, camera, sheet, colors)
	}
}

func renderSheet(gtx layout.Context, camera *renderer.Camera, sheet schematic.Sheet, colors *SchematicColors) {
	x1, y1 := camera.WorldToScreen(sheet.Position)
	x2, y2 := camera.WorldToScreen(schematic.Position{
		X: sheet.Position.X + sheet.Size.Width,
		Y: sheet.Position.Y + sheet.Size.Height,
	})

	outline := func() clip.Path {
		var p clip.Path
		p.Begin(gtx.Ops)
		p.MoveTo(f32.Pt(float32(x1), float32(y1)))
		p.LineTo(f32.Pt(float32(x2), float32(y1)))
		p.LineTo(f32.Pt(float32(x2), float32(y2)))
		p.LineTo(f32.Pt(float32(x1), float32(y2)))
		p.Close()
		return p
	}

	fill := outline()
	paint.FillShape(gtx.Ops, colors.SheetFill, clip.Outline{Path: fill.End()}.Op())

	border := outline()
	paint.FillShape(gtx.Ops, colors.Sheet, clip.Stroke{
		Path:  border.End(),
		Width: 2.0,
	}.Op())

	// Sheet name above the outline, file name below, matching KiCad
	if sheet.Name.Name != "" {
		namePos := schematic.Position{X: sheet.Position.X, Y: sheet.Position.Y - 0.5}
		stack := translateRotate(gtx, camera, namePos, 0)
		renderLabelText(gtx, sheet.Name.Name, sheet.Name.Effects, colors.SheetText)
		stack.Pop()
	}
	if sheet.FileName.Name != "" {
		filePos := schematic.Position{
			X: sheet.Position.X,
			Y: sheet.Position.Y + sheet.Size.Height + 0.5,
		}
		stack := translateRotate(gtx, camera, filePos, 0)
		renderLabelText(gtx, "File: "+sheet.FileName.Name, sheet.FileName.Effects, colors.SheetText)
		stack.Pop()
	}

	for _, pin := range sheet.Pins {
		stack := translateRotate(gtx, camera, pin.Position, 0)
		renderLabelText(gtx, pin.Name, pin.Effects, colors.SheetPin)
		stack.Pop()
	}
}
