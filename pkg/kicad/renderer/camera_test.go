package renderer

import (
	"math"
	"testing"

	"github.com/willhack/kicanvas/pkg/kicad/sexp"
)

func TestWorldScreenRoundTrip(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.CenterX = 100
	cam.CenterY = 50
	cam.Rotation = 90
	cam.Mirrored = true
	cam.PivotX = 100
	cam.PivotY = 50

	want := sexp.Position{X: 123.4, Y: 56.7}
	sx, sy := cam.WorldToScreen(want)
	got := cam.ScreenToWorld(sx, sy)

	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Errorf("round trip: got (%v, %v), want (%v, %v)", got.X, got.Y, want.X, want.Y)
	}
}

func TestZoomAtKeepsCursorStationary(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.CenterX = 10
	cam.CenterY = 20

	before := cam.ScreenToWorld(200, 150)
	cam.ZoomAt(200, 150, 1.5)
	after := cam.ScreenToWorld(200, 150)

	if math.Abs(before.X-after.X) > 1e-9 || math.Abs(before.Y-after.Y) > 1e-9 {
		t.Errorf("point under cursor moved: before (%v, %v), after (%v, %v)",
			before.X, before.Y, after.X, after.Y)
	}
}

func TestZoomClamped(t *testing.T) {
	cam := NewCamera(800, 600)
	cam.ZoomAt(0, 0, 1e9)
	if cam.Zoom > maxZoom {
		t.Errorf("Zoom = %v, want clamped to %v", cam.Zoom, maxZoom)
	}
	cam.ZoomAt(0, 0, 1e-12)
	if cam.Zoom < minZoom {
		t.Errorf("Zoom = %v, want clamped to %v", cam.Zoom, minZoom)
	}
}

func TestFit(t *testing.T) {
	cam := NewCamera(1000, 500)
	bbox := sexp.BoundingBox{
		Min: sexp.Position{X: 0, Y: 0},
		Max: sexp.Position{X: 100, Y: 100},
	}
	cam.Fit(bbox)

	if cam.CenterX != 50 || cam.CenterY != 50 {
		t.Errorf("center = (%v, %v), want (50, 50)", cam.CenterX, cam.CenterY)
	}
	// The 500px dimension limits zoom: 500 * 0.9 / 100
	if math.Abs(cam.Zoom-4.5) > 1e-9 {
		t.Errorf("Zoom = %v, want 4.5", cam.Zoom)
	}

	// Degenerate boxes leave the camera alone
	saved := *cam
	cam.Fit(sexp.BoundingBox{})
	if *cam != saved {
		t.Error("Fit with degenerate box changed the camera")
	}
}
