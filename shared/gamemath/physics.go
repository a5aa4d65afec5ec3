package gamemath

import "math"

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// FacingVector returns the unit heading for yaw in degrees. Yaw 0 faces +Z
// and positive yaw turns toward +X.
func FacingVector(yaw float64) Vec3 {
	r := yaw * degToRad
	return Vec3{X: math.Sin(r), Z: math.Cos(r)}
}

// YawOf returns the yaw in degrees that faces dir. A zero direction yields 0.
func YawOf(dir Vec3) float64 {
	if dir.FlatLength() < Epsilon {
		return 0
	}
	return math.Atan2(dir.X, dir.Z) * radToDeg
}

// AngleDiff returns the absolute difference between two yaws in [0, 180].
func AngleDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// RightOf returns the XZ vector perpendicular to dir, pointing to its right.
func RightOf(dir Vec3) Vec3 {
	return Vec3{X: dir.Z, Z: -dir.X}
}

// Lerp interpolates between a and b by t without clamping.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DecayToward moves current toward target at rate per second, the way
// velocities settle after knockback or input changes.
func DecayToward(current, target Vec3, rate, dt float64) Vec3 {
	return current.Lerp(target, rate*dt)
}

// CountDown decrements a timer by dt and floors it at zero.
func CountDown(timer, dt float64) float64 {
	timer -= dt
	if timer < 0 {
		return 0
	}
	return timer
}
