package emath

// Small fixed-size vectors, used for per-channel color math

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64" // Will be "image/math/f64" at some point, hopefully make this file redundant
)

// Use a local type so we can hang methods off it. Channel order is always R,G,B.
type Vec3 f64.Vec3

func Splat(f float64) Vec3 { return Vec3{f, f, f} }

func (v Vec3) String() string {
	return fmt.Sprintf("[%12.10f, %12.10f, %12.10f]", v[0], v[1], v[2])
}

// Mean is the unweighted average of the three channels
func (v Vec3) Mean() float64 {
	return (v[0] + v[1] + v[2]) / 3.0
}

func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{v[0] * f, v[1] * f, v[2] * f}
}

// Mult is a per-channel (Hadamard) product
func (a Vec3) Mult(b Vec3) Vec3 {
	return Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

// IsFinite is false if any channel is NaN or +/-Inf
func (v Vec3) IsFinite() bool {
	for _, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func (v *Vec3) FloorAt(min float64) {
	if v[0] < min {
		v[0] = min
	}
	if v[1] < min {
		v[1] = min
	}
	if v[2] < min {
		v[2] = min
	}
}

func (v *Vec3) CeilingAt(max float64) {
	if v[0] > max {
		v[0] = max
	}
	if v[1] > max {
		v[1] = max
	}
	if v[2] > max {
		v[2] = max
	}
}

// Clamp returns a copy of v, with each channel forced into [min,max]
func (v Vec3) Clamp(min, max float64) Vec3 {
	v.FloorAt(min)
	v.CeilingAt(max)
	return v
}

// ClampF64 forces a single value into [min,max]
func ClampF64(f, min, max float64) float64 {
	if f < min {
		return min
	} else if f > max {
		return max
	}
	return f
}
