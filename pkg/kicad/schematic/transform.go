package schematic

// Transform is a 2D affine map: a 2x2 linear part plus a translation.
// Applied to a point p it yields (A*p.X + B*p.Y + TX, D*p.X + E*p.Y + TY).
// Symbol placement only ever uses reflections and quarter-turn rotations,
// so every coefficient is -1, 0 or 1 in practice.
type Transform struct {
	A, B float64 // First row of the linear part
	D, E float64 // Second row of the linear part
	TX   float64 // X translation
	TY   float64 // Y translation
}

// Identity returns the neutral transform
func Identity() Transform {
	return Transform{A: 1, E: 1}
}

// Apply maps a point through the transform
func (t Transform) Apply(p Position) Position {
	return Position{
		X: t.A*p.X + t.B*p.Y + t.TX,
		Y: t.D*p.X + t.E*p.Y + t.TY,
	}
}

// Compose returns the transform equivalent to applying o first, then t
func (t Transform) Compose(o Transform) Transform {
	return Transform{
		A:  t.A*o.A + t.B*o.D,
		B:  t.A*o.B + t.B*o.E,
		D:  t.D*o.A + t.E*o.D,
		E:  t.D*o.B + t.E*o.E,
		TX: t.A*o.TX + t.B*o.TY + t.TX,
		TY: t.D*o.TX + t.E*o.TY + t.TY,
	}
}

// SwapsAxes reports whether the transform belongs to the 90/270 degree
// orientation family. KiCad encodes symbol orientation as one of four
// fixed matrices in which the B coefficient is nonzero exactly when the
// symbol is rotated a quarter turn either way.
func (t Transform) SwapsAxes() bool {
	return t.B == 1 || t.B == -1
}

// KiCad stores schematic coordinates with Y growing downward but builds
// symbol orientation matrices in a Y-up frame, so the cardinal rotations
// come out with the Y row negated relative to textbook rotation matrices.
var orientationMatrices = map[Angle]Transform{
	0:   {A: 1, B: 0, D: 0, E: -1},
	90:  {A: 0, B: -1, D: -1, E: 0},
	180: {A: -1, B: 0, D: 0, E: 1},
	270: {A: 0, B: 1, D: 1, E: 0},
}

// Reflections about the schematic axes, composed onto the orientation
// matrix when a symbol carries a mirror attribute.
var (
	mirrorX = Transform{A: 1, B: 0, D: 0, E: -1} // mirror across the X axis
	mirrorY = Transform{A: -1, B: 0, D: 0, E: 1} // mirror across the Y axis
)

// OrientationTransform returns the placement matrix for a cardinal
// rotation angle and a mirror attribute ("x", "y", "xy" or "").
func OrientationTransform(angle Angle, mirror string) Transform {
	t, ok := orientationMatrices[angle.Normalize()]
	if !ok {
		t = orientationMatrices[0]
	}
	switch mirror {
	case "x":
		t = mirrorX.Compose(t)
	case "y":
		t = mirrorY.Compose(t)
	case "xy":
		t = mirrorX.Compose(mirrorY).Compose(t)
	}
	return t
}

// PlacementTransform returns the transform that places this symbol's
// children (graphics and text fields) into world coordinates.
func (s *Symbol) PlacementTransform() Transform {
	return OrientationTransform(s.Angle, s.Mirror)
}
