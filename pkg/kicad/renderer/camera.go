// Package renderer provides shared viewport math for drawing KiCad
// schematics on screen.
package renderer

import (
	"math"

	"github.com/willhack/kicanvas/pkg/kicad/sexp"
)

// Zoom limits in pixels per mm
const (
	minZoom = 0.1
	maxZoom = 1000.0
)

// Camera maps schematic world coordinates (mm, Y growing downward) to
// screen pixels. It supports panning, zooming about a cursor position,
// and rotating or mirroring the whole view about a pivot.
type Camera struct {
	CenterX float64 // World X at the screen center (mm)
	CenterY float64 // World Y at the screen center (mm)
	Zoom    float64 // Pixels per mm

	ScreenWidth  int
	ScreenHeight int

	Mirrored bool       // Mirror the view across the X axis
	Rotation sexp.Angle // View rotation in degrees

	// Pivot for rotation and mirroring, in world coordinates
	PivotX float64
	PivotY float64
}

// NewCamera creates a camera with a reasonable default zoom
func NewCamera(screenWidth, screenHeight int) *Camera {
	return &Camera{
		Zoom:         10.0,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

// WorldToScreen converts world coordinates (mm) to screen pixels
func (c *Camera) WorldToScreen(pos sexp.Position) (float64, float64) {
	pos = c.applyViewTransform(pos)

	x := (pos.X - c.CenterX) * c.Zoom
	y := (pos.Y - c.CenterY) * c.Zoom

	x += float64(c.ScreenWidth) / 2.0
	y += float64(c.ScreenHeight) / 2.0

	return x, y
}

// ScreenToWorld converts screen pixels to world coordinates (mm)
func (c *Camera) ScreenToWorld(screenX, screenY float64) sexp.Position {
	x := screenX - float64(c.ScreenWidth)/2.0
	y := screenY - float64(c.ScreenHeight)/2.0

	x = x/c.Zoom + c.CenterX
	y = y/c.Zoom + c.CenterY

	return c.applyInverseViewTransform(sexp.Position{X: x, Y: y})
}

// Pan moves the camera by screen pixel offsets
func (c *Camera) Pan(deltaX, deltaY float64) {
	c.CenterX -= deltaX / c.Zoom
	c.CenterY -= deltaY / c.Zoom
}

// ZoomAt zooms in or out while keeping the world point under the given
// screen position stationary. factor > 1 zooms in.
func (c *Camera) ZoomAt(screenX, screenY, factor float64) {
	before := c.ScreenToWorld(screenX, screenY)

	c.Zoom *= factor
	if c.Zoom < minZoom {
		c.Zoom = minZoom
	}
	if c.Zoom > maxZoom {
		c.Zoom = maxZoom
	}

	after := c.ScreenToWorld(screenX, screenY)

	c.CenterX += before.X - after.X
	c.CenterY += before.Y - after.Y
}

// Fit centers the camera on the box and zooms so it fills most of the
// screen. Empty or degenerate boxes are ignored.
func (c *Camera) Fit(bbox sexp.BoundingBox) {
	width := bbox.Width()
	height := bbox.Height()
	if width <= 0 || height <= 0 {
		return
	}

	center := bbox.Center()
	c.CenterX = center.X
	c.CenterY = center.Y
	c.PivotX = center.X
	c.PivotY = center.Y

	zoomX := float64(c.ScreenWidth) * 0.9 / width
	zoomY := float64(c.ScreenHeight) * 0.9 / height
	c.Zoom = math.Min(zoomX, zoomY)
}

// UpdateScreenSize updates the camera when the window is resized
func (c *Camera) UpdateScreenSize(width, height int) {
	c.ScreenWidth = width
	c.ScreenHeight = height
}

// Mirror toggles the mirrored view state
func (c *Camera) Mirror() {
	c.Mirrored = !c.Mirrored
}

// Rotate adds the given degrees to the view rotation
func (c *Camera) Rotate(degrees sexp.Angle) {
	c.Rotation = (c.Rotation + degrees).Normalize()
}

func (c *Camera) pivot() sexp.Position {
	return sexp.Position{X: c.PivotX, Y: c.PivotY}
}

// applyViewTransform rotates then mirrors a world position about the pivot
func (c *Camera) applyViewTransform(pos sexp.Position) sexp.Position {
	if c.Rotation != 0 {
		pos = c.Rotation.RotatePoint(pos, c.pivot())
	}
	if c.Mirrored {
		pos.X = 2*c.PivotX - pos.X
	}
	return pos
}

// applyInverseViewTransform undoes the view transform: mirror first,
// then rotate back
func (c *Camera) applyInverseViewTransform(pos sexp.Position) sexp.Position {
	if c.Mirrored {
		pos.X = 2*c.PivotX - pos.X
	}
	if c.Rotation != 0 {
		pos = (-c.Rotation).RotatePoint(pos, c.pivot())
	}
	return pos
}

// VisibleBounds returns the world-space box covering the screen, for
// culling off-screen elements. All four corners are considered because
// view rotation can reorder them.
func (c *Camera) VisibleBounds() sexp.BoundingBox {
	corners := []sexp.Position{
		c.ScreenToWorld(0, 0),
		c.ScreenToWorld(float64(c.ScreenWidth), 0),
		c.ScreenToWorld(0, float64(c.ScreenHeight)),
		c.ScreenToWorld(float64(c.ScreenWidth), float64(c.ScreenHeight)),
	}

	bounds := sexp.NewBoundingBox()
	for _, p := range corners {
		bounds.Expand(p)
	}
	return bounds
}
