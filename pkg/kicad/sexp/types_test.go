package sexp

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func positionsClose(a, b Position) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon
}

func TestPositionAddSub(t *testing.T) {
	a := Position{X: 10, Y: 5}
	b := Position{X: 3, Y: -2}

	sum := a.Add(b)
	if sum != (Position{X: 13, Y: 3}) {
		t.Errorf("Add: got %+v", sum)
	}

	diff := a.Sub(b)
	if diff != (Position{X: 7, Y: 7}) {
		t.Errorf("Sub: got %+v", diff)
	}

	// Sub undoes Add
	if a.Add(b).Sub(b) != a {
		t.Error("Add then Sub should return the original position")
	}
}

func TestAngleNormalize(t *testing.T) {
	tests := []struct {
		in   Angle
		want Angle
	}{
		{0, 0},
		{90, 90},
		{360, 0},
		{450, 90},
		{-90, 270},
		{-360, 0},
		{720, 0},
	}

	for _, tt := range tests {
		if got := tt.in.Normalize(); got != tt.want {
			t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAngleIsVertical(t *testing.T) {
	tests := []struct {
		in   Angle
		want bool
	}{
		{0, false},
		{90, true},
		{180, false},
		{270, true},
		{-90, true},
		{450, true},
	}

	for _, tt := range tests {
		if got := tt.in.IsVertical(); got != tt.want {
			t.Errorf("IsVertical(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRotatePointCardinals(t *testing.T) {
	pivot := Position{X: 10, Y: 10}
	p := Position{X: 20, Y: 10}

	tests := []struct {
		angle Angle
		want  Position
	}{
		{0, Position{X: 20, Y: 10}},
		{90, Position{X: 10, Y: 20}},
		{180, Position{X: 0, Y: 10}},
		{270, Position{X: 10, Y: 0}},
	}

	for _, tt := range tests {
		got := tt.angle.RotatePoint(p, pivot)
		if !positionsClose(got, tt.want) {
			t.Errorf("RotatePoint by %v: got %+v, want %+v", tt.angle, got, tt.want)
		}
	}
}

func TestRotatePointInvertible(t *testing.T) {
	// Rotating by a then -a about the same pivot must return the point
	angles := []Angle{0, 30, 45, 90, 123.4, 180, 270, 359}
	pivots := []Position{{0, 0}, {10, 5}, {-3, 7.5}}
	point := Position{X: 4.2, Y: -1.3}

	for _, a := range angles {
		for _, pivot := range pivots {
			rotated := a.RotatePoint(point, pivot)
			back := (-a).RotatePoint(rotated, pivot)
			if !positionsClose(back, point) {
				t.Errorf("rotation by %v about %+v not invertible: got %+v, want %+v",
					a, pivot, back, point)
			}
		}
	}
}

func TestBoundingBoxExpand(t *testing.T) {
	bbox := NewBoundingBox()
	if !bbox.IsEmpty() {
		t.Error("new bounding box should be empty")
	}

	bbox.Expand(Position{X: 10, Y: 20})
	bbox.Expand(Position{X: -5, Y: 30})

	if bbox.Min.X != -5 || bbox.Min.Y != 20 {
		t.Errorf("Min = %+v", bbox.Min)
	}
	if bbox.Max.X != 10 || bbox.Max.Y != 30 {
		t.Errorf("Max = %+v", bbox.Max)
	}
	if bbox.Width() != 15 || bbox.Height() != 10 {
		t.Errorf("Width/Height = %v/%v", bbox.Width(), bbox.Height())
	}
}

func TestBoxFromCorners(t *testing.T) {
	// Corners may arrive in any order
	bbox := BoxFromCorners(Position{X: 10, Y: 2}, Position{X: 4, Y: 8})
	if bbox.Min != (Position{X: 4, Y: 2}) || bbox.Max != (Position{X: 10, Y: 8}) {
		t.Errorf("BoxFromCorners: got Min=%+v Max=%+v", bbox.Min, bbox.Max)
	}

	center := bbox.Center()
	if center != (Position{X: 7, Y: 5}) {
		t.Errorf("Center = %+v", center)
	}
}
