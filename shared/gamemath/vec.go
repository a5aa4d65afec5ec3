package gamemath

import "math"

// Epsilon is the shortest vector length treated as a usable direction.
const Epsilon = 1e-6

// Vec3 is a position or direction in world units. Y is height; movement and
// combat geometry live on the XZ plane.
type Vec3 struct {
	X, Y, Z float64
}

// Zero is the origin.
var Zero = Vec3{}

// Forward is the heading of yaw 0.
var Forward = Vec3{Z: 1}

func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

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

// Flat drops the height component.
func (v Vec3) Flat() Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// FlatLength is the length on the XZ plane.
func (v Vec3) FlatLength() float64 {
	return math.Hypot(v.X, v.Z)
}

// Normalize returns the unit vector of v. When v is too short to carry a
// direction the fallback is returned instead, so callers never see NaN.
func (v Vec3) Normalize(fallback Vec3) Vec3 {
	l := v.Length()
	if l < Epsilon || math.IsNaN(l) || math.IsInf(l, 0) {
		return fallback
	}
	return v.Scale(1 / l)
}

// Lerp moves v toward o by t, with t clamped to [0, 1].
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	t = Clamp(t, 0, 1)
	return v.Add(o.Sub(v).Scale(t))
}

// FlatDistance is the distance between a and b on the XZ plane.
func FlatDistance(a, b Vec3) float64 {
	return math.Hypot(a.X-b.X, a.Z-b.Z)
}

// FlatDirection is the unit XZ direction from a to b, or fallback when the
// two points coincide.
func FlatDirection(from, to Vec3, fallback Vec3) Vec3 {
	return to.Sub(from).Flat().Normalize(fallback)
}
