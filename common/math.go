package common

import (
	"math"
	"math/rand"
)

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Clamp limits v to the [lo, hi] range.
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Roll reports whether an event with the given probability occurred.
// The probability is clamped to [0, 1]. A nil source never rolls true.
func Roll(r *rand.Rand, probability float32) bool {
	if r == nil {
		return false
	}
	p := Clamp(probability, 0, 1)
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float32() < p
}

// Vec3 is a right-handed 3D vector with Y up.
type Vec3 struct {
	X float32
	Y float32
	Z float32
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Len() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

// Normalized returns a unit-length copy of v, or the zero vector when v is
// too short to normalize.
func (v Vec3) Normalized() Vec3 {
	l := v.Len()
	if l < 1e-6 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

func (v Vec3) DistanceTo(o Vec3) float32 {
	return v.Sub(o).Len()
}

// SmoothAngle follows a target angle at a fixed angular speed. It drives
// secondary motion such as weapon recoil, where the angle snaps out and
// settles back over a few ticks.
type SmoothAngle struct {
	Angle  float32
	Target float32
	Speed  float32
}

// SetTarget sets the angle the accumulator settles toward.
func (s *SmoothAngle) SetTarget(a float32) {
	if s == nil {
		return
	}
	s.Target = a
}

// Update advances the angle toward the target by at most Speed*dt.
func (s *SmoothAngle) Update(dt float32) {
	if s == nil {
		return
	}
	diff := s.Target - s.Angle
	step := s.Speed * dt
	if step <= 0 {
		s.Angle = s.Target
		return
	}
	if diff > step {
		diff = step
	} else if diff < -step {
		diff = -step
	}
	s.Angle += diff
}
