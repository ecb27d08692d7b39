package common

import "math"

// Vec3 is a world-space vector. X is right, Y is up, Z is forward.
type Vec3 struct {
	X, Y, Z float64
}

var (
	Vec3Zero    = Vec3{}
	Vec3Up      = Vec3{0, 1, 0}
	Vec3Down    = Vec3{0, -1, 0}
	Vec3Right   = Vec3{1, 0, 0}
	Vec3Left    = Vec3{-1, 0, 0}
	Vec3Forward = Vec3{0, 0, 1}
	Vec3Back    = Vec3{0, 0, -1}
)

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Horizontal returns v with Y replaced by y.
func (v Vec3) Horizontal(y float64) Vec3 {
	return Vec3{v.X, y, v.Z}
}

// Near reports whether every component of v is within eps of o.
func (v Vec3) Near(o Vec3, eps float64) bool {
	return NearlyEqual(v.X, o.X, eps) && NearlyEqual(v.Y, o.Y, eps) && NearlyEqual(v.Z, o.Z, eps)
}

// Rotate rotates v about the unit axis by deg degrees (Rodrigues).
func (v Vec3) Rotate(axis Vec3, deg float64) Vec3 {
	rad := deg * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	k := axis.Normalize()
	return v.Scale(c).
		Add(k.Cross(v).Scale(s)).
		Add(k.Scale(k.Dot(v) * (1 - c)))
}

// RotateAround rotates the point v about a line through pivot along axis.
func (v Vec3) RotateAround(pivot, axis Vec3, deg float64) Vec3 {
	return v.Sub(pivot).Rotate(axis, deg).Add(pivot)
}

// Basis is an orthonormal orientation frame.
type Basis struct {
	Right, Up, Forward Vec3
}

var IdentityBasis = Basis{Right: Vec3Right, Up: Vec3Up, Forward: Vec3Forward}

func (b Basis) Rotate(axis Vec3, deg float64) Basis {
	return Basis{
		Right:   b.Right.Rotate(axis, deg),
		Up:      b.Up.Rotate(axis, deg),
		Forward: b.Forward.Rotate(axis, deg),
	}
}

// Snap rounds every basis component to the nearest integer. Quarter turns of
// an axis-aligned frame stay axis-aligned, so this removes drift.
func (b Basis) Snap() Basis {
	r := func(v Vec3) Vec3 { return Vec3{math.Round(v.X), math.Round(v.Y), math.Round(v.Z)} }
	return Basis{Right: r(b.Right), Up: r(b.Up), Forward: r(b.Forward)}
}
