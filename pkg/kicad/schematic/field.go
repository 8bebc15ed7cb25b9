package schematic

import (
	"unicode/utf8"

	"github.com/willhack/kicanvas/pkg/kicad/sexp"
)

// defaultTextHeight is the KiCad default text size in mm (50 mil)
const defaultTextHeight = 1.27

// charWidthRatio approximates average glyph advance as a fraction of the
// text height, matching the estimate used for label sizing.
const charWidthRatio = 0.6

// Field is a symbol text field (Reference, Value, Footprint or a custom
// property) placed on the schematic. Its geometry depends on the parent
// symbol's current position and orientation, so every getter recomputes
// from scratch rather than caching.
type Field struct {
	Key    string        // Property name, empty for free text
	Text   string        // Raw text content
	At     PositionAngle // Authored anchor position and rotation
	HAlign HJustify      // Authored horizontal alignment
	VAlign VJustify      // Authored vertical alignment
	Font   Font          // Font settings
	Hide   bool          // Hidden flag from effects

	parent *Symbol // Owning symbol, nil for unparented text
}

// NewField wraps a parsed property as a placed text field. The parent
// pointer is borrowed from the schematic's symbol list, not owned.
func NewField(prop Property, parent *Symbol) *Field {
	return &Field{
		Key:    prop.Key,
		Text:   prop.Value,
		At:     prop.Position,
		HAlign: prop.Effects.Justify.Horizontal,
		VAlign: prop.Effects.Justify.Vertical,
		Font:   prop.Effects.Font,
		Hide:   prop.Effects.Hide,
		parent: parent,
	}
}

// Hidden reports whether the field should not be drawn
func (f *Field) Hidden() bool {
	return f.Hide
}

// ShownText returns the text as displayed. A bare "~" is the KiCad
// convention for an empty field and renders as nothing.
func (f *Field) ShownText() string {
	if f.Text == "~" {
		return ""
	}
	return f.Text
}

// parentTransform returns the parent's placement matrix, or identity
// when the field is unparented
func (f *Field) parentTransform() Transform {
	if f.parent == nil {
		return Identity()
	}
	return f.parent.PlacementTransform()
}

// DrawRotation returns the rotation at which the glyphs are actually
// drawn. A parent rotated a quarter turn swaps the text orientation
// axes: fields authored at 0 or 180 degrees render at 90, everything
// else renders at 0. Parents in the 0/180 family leave the authored
// angle untouched.
func (f *Field) DrawRotation() Angle {
	deg := f.At.Angle
	if f.parentTransform().SwapsAxes() {
		n := deg.Normalize()
		if n == 0 || n == 180 {
			return 90
		}
		return 0
	}
	return deg
}

// Position returns the field's anchor in world coordinates. The anchor
// is re-expressed in the parent's local frame, mapped through the
// placement transform, then offset back to world space.
func (f *Field) Position() Position {
	if f.parent == nil {
		return f.At.Position
	}
	relative := f.At.Position.Sub(f.parent.Position)
	mapped := f.parent.PlacementTransform().Apply(relative)
	return mapped.Add(f.parent.Position)
}

// textHeight returns the font height, falling back to the KiCad default
func (f *Field) textHeight() float64 {
	if f.Font.Size.Height > 0 {
		return f.Font.Size.Height
	}
	return defaultTextHeight
}

// TextBox estimates the unrotated, untransformed extent of the text,
// anchored at the authored position per the authored alignment. Width is
// an average-advance estimate; exact glyph metrics are the renderer's
// concern, not placement's.
func (f *Field) TextBox() (start, end Position) {
	h := f.textHeight()
	w := charWidthRatio * h * float64(utf8.RuneCountInString(f.ShownText()))
	pos := f.At.Position

	switch f.HAlign {
	case sexp.HJustifyLeft:
		start.X = pos.X
	case sexp.HJustifyRight:
		start.X = pos.X - w
	default:
		start.X = pos.X - w/2
	}

	// Y grows downward, so "top" anchors the box below the position
	switch f.VAlign {
	case sexp.VJustifyTop:
		start.Y = pos.Y
	case sexp.VJustifyBottom:
		start.Y = pos.Y - h
	default:
		start.Y = pos.Y - h/2
	}

	end = Position{X: start.X + w, Y: start.Y + h}
	return start, end
}

// BoundingBox returns the world-space box enclosing the rendered text.
// The corners are rotated in the field's local frame, mirrored across
// the parent's flipped Y axis, then mapped through the placement
// transform. Only the start corner receives the final world offset;
// the end corner stays in transform-output space. Downstream consumers
// derive the far corner from width and height so the asymmetry is
// load-bearing and must not be "fixed" here.
func (f *Field) BoundingBox() BoundingBox {
	start, end := f.TextBox()

	var origin Position
	if f.parent != nil {
		origin = f.parent.Position
	}
	pos := f.At.Position.Sub(origin)

	start = start.Sub(origin)
	end = end.Sub(origin)

	start = f.At.Angle.RotatePoint(start, pos)
	end = f.At.Angle.RotatePoint(end, pos)

	if f.parent != nil {
		// The placement matrices are built in a Y-up frame, so child
		// coordinates are mirrored about the anchor before mapping
		start.Y = 2*pos.Y - start.Y
		end.Y = 2*pos.Y - end.Y
	}

	t := f.parentTransform()
	start = t.Apply(start)
	end = t.Apply(end)

	start = start.Add(origin)

	return sexp.BoxFromCorners(start, end)
}

// IsHorizJustifyFlipped reports whether the authored left/right
// alignment must be swapped because the parent transform mirrors the
// text's reading axis.
func (f *Field) IsHorizJustifyFlipped() bool {
	center := f.BoundingBox().Center()
	pos := f.Position()
	vertical := f.DrawRotation().IsVertical()

	switch f.HAlign {
	case sexp.HJustifyLeft:
		if vertical {
			return center.Y > pos.Y
		}
		return center.X < pos.X
	case sexp.HJustifyRight:
		if vertical {
			return center.Y < pos.Y
		}
		return center.X > pos.X
	}
	return false
}

// EffectiveHorizJustify returns the alignment to use when drawing
func (f *Field) EffectiveHorizJustify() HJustify {
	if f.IsHorizJustifyFlipped() {
		switch f.HAlign {
		case sexp.HJustifyLeft:
			return sexp.HJustifyRight
		case sexp.HJustifyRight:
			return sexp.HJustifyLeft
		}
	}
	if f.HAlign == "" {
		return sexp.HJustifyCenter
	}
	return f.HAlign
}

// IsVertJustifyFlipped reports whether top/bottom alignment must be
// swapped. The vertical-orientation "top" branch compares the box
// center's X against the anchor's Y, matching upstream KiCad rendering
// behavior even though the axes look mismatched.
func (f *Field) IsVertJustifyFlipped() bool {
	center := f.BoundingBox().Center()
	pos := f.Position()
	vertical := f.DrawRotation().IsVertical()

	switch f.VAlign {
	case sexp.VJustifyTop:
		if vertical {
			return center.X < pos.Y
		}
		return center.Y < pos.Y
	case sexp.VJustifyBottom:
		if vertical {
			return center.X > pos.X
		}
		return center.Y > pos.Y
	}
	return false
}

// EffectiveVertJustify returns the vertical alignment to use when drawing
func (f *Field) EffectiveVertJustify() VJustify {
	if f.IsVertJustifyFlipped() {
		switch f.VAlign {
		case sexp.VJustifyTop:
			return sexp.VJustifyBottom
		case sexp.VJustifyBottom:
			return sexp.VJustifyTop
		}
	}
	if f.VAlign == "" {
		return sexp.VJustifyCenter
	}
	return f.VAlign
}
