// Package sexp provides shared S-expression extraction helpers and the
// geometry and text types common to KiCad schematic documents. Coordinates
// are in millimeters with Y increasing downward, angles in degrees, matching
// the on-disk representation of .kicad_sch files.
package sexp

import "math"

// Position represents a 2D point or vector in schematic coordinates (mm)
type Position struct {
	X float64
	Y float64
}

// Add returns the component-wise sum of two positions
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the component-wise difference of two positions
func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y}
}

// Angle represents a rotation in degrees
type Angle float64

// Degrees returns the angle as a plain float64
func (a Angle) Degrees() float64 {
	return float64(a)
}

// Radians returns the angle in radians
func (a Angle) Radians() float64 {
	return float64(a) * math.Pi / 180.0
}

// Normalize wraps the angle into the canonical [0, 360) range. Comparisons
// against the cardinal values 0/90/180/270 go through this so they stay
// exact degree comparisons rather than cos/sin round-trips.
func (a Angle) Normalize() Angle {
	d := math.Mod(float64(a), 360.0)
	if d < 0 {
		d += 360.0
	}
	return Angle(d)
}

// IsVertical reports whether the angle belongs to the 90/270 family
func (a Angle) IsVertical() bool {
	n := a.Normalize()
	return n == 90 || n == 270
}

// RotatePoint rotates p about pivot by the angle
func (a Angle) RotatePoint(p, pivot Position) Position {
	sin, cos := math.Sincos(a.Radians())
	dx := p.X - pivot.X
	dy := p.Y - pivot.Y
	return Position{
		X: pivot.X + dx*cos - dy*sin,
		Y: pivot.Y + dx*sin + dy*cos,
	}
}

// PositionAngle combines position with rotation, the payload of an
// (at X Y [angle]) node
type PositionAngle struct {
	Position
	Angle Angle
}

// Size represents dimensions in mm
type Size struct {
	Width  float64
	Height float64
}

// Color represents RGBA color with components in 0.0-1.0
type Color struct {
	R, G, B, A float64
}

// Stroke defines line/outline appearance
type Stroke struct {
	Width float64 // Line width in mm
	Type  string  // Line type (solid, dash, dot, etc.)
	Color Color
}

// Fill defines area fill
type Fill struct {
	Type  string // Fill type (solid, none, background, etc.)
	Color Color
}

// BoundingBox represents a rectangular boundary
type BoundingBox struct {
	Min Position // Minimum (top-left) corner
	Max Position // Maximum (bottom-right) corner
}

// NewBoundingBox creates an empty bounding box
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Position{X: 1e9, Y: 1e9},
		Max: Position{X: -1e9, Y: -1e9},
	}
}

// BoxFromCorners builds a bounding box from two corners in any order
func BoxFromCorners(a, b Position) BoundingBox {
	bbox := NewBoundingBox()
	bbox.Expand(a)
	bbox.Expand(b)
	return bbox
}

// IsEmpty checks if the bounding box is empty
func (bb BoundingBox) IsEmpty() bool {
	return bb.Min.X > bb.Max.X || bb.Min.Y > bb.Max.Y
}

// Intersects checks if two bounding boxes intersect
func (bb BoundingBox) Intersects(other BoundingBox) bool {
	return bb.Min.X <= other.Max.X && bb.Max.X >= other.Min.X &&
		bb.Min.Y <= other.Max.Y && bb.Max.Y >= other.Min.Y
}

// Contains checks if a position is within the bounding box
func (bb BoundingBox) Contains(pos Position) bool {
	return pos.X >= bb.Min.X && pos.X <= bb.Max.X &&
		pos.Y >= bb.Min.Y && pos.Y <= bb.Max.Y
}

// Expand expands the bounding box to include a position
func (bb *BoundingBox) Expand(pos Position) {
	if pos.X < bb.Min.X {
		bb.Min.X = pos.X
	}
	if pos.Y < bb.Min.Y {
		bb.Min.Y = pos.Y
	}
	if pos.X > bb.Max.X {
		bb.Max.X = pos.X
	}
	if pos.Y > bb.Max.Y {
		bb.Max.Y = pos.Y
	}
}

// ExpandBox expands to include another bounding box
func (bb *BoundingBox) ExpandBox(other BoundingBox) {
	if !other.IsEmpty() {
		bb.Expand(other.Min)
		bb.Expand(other.Max)
	}
}

// Width returns the width of the bounding box
func (bb BoundingBox) Width() float64 {
	return bb.Max.X - bb.Min.X
}

// Height returns the height of the bounding box
func (bb BoundingBox) Height() float64 {
	return bb.Max.Y - bb.Min.Y
}

// Center returns the center point of the bounding box
func (bb BoundingBox) Center() Position {
	return Position{
		X: (bb.Min.X + bb.Max.X) / 2.0,
		Y: (bb.Min.Y + bb.Max.Y) / 2.0,
	}
}

// UUID represents a unique identifier (used in KiCad v6+ files)
type UUID string

// Effects represents text effects (font, justification, visibility)
type Effects struct {
	Font    Font
	Justify Justify
	Hide    bool
}

// Font represents font properties
type Font struct {
	Face      string  // Font face name (optional)
	Size      Size    // Glyph size in mm
	Thickness float64 // Line thickness for stroke fonts
	Bold      bool
	Italic    bool
}

// HJustify is horizontal text justification. The set is closed; parse-time
// validation keeps any other value out of the model.
type HJustify string

const (
	HJustifyLeft   HJustify = "left"
	HJustifyCenter HJustify = "center"
	HJustifyRight  HJustify = "right"
)

// VJustify is vertical text justification
type VJustify string

const (
	VJustifyTop    VJustify = "top"
	VJustifyCenter VJustify = "center"
	VJustifyBottom VJustify = "bottom"
)

// Justify represents text justification
type Justify struct {
	Horizontal HJustify
	Vertical   VJustify
	Mirror     bool
}

// Property represents a key-value property attached to a symbol or sheet
type Property struct {
	Key      string
	Value    string
	ID       int
	Position PositionAngle
	Effects  Effects
}
