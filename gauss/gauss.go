// Package gauss turns uniform variates into normally distributed ones with
// the Box-Muller transform.
package gauss

import (
	"math"

	"github.com/zeebo/errs"
)

// Error is the class of errors returned by this package.
var Error = errs.Class("gauss")

// MaxRejections bounds how many consecutive draws outside of the unit disk
// Polar tolerates before giving up on the uniform source.
const MaxRejections = 1 << 20

// UniformSource produces uniform draws in [0, 1). *rand.Rand and
// *twist.Generator both satisfy it.
type UniformSource interface {
	Float64() float64
}

// UniformFunc adapts a function to a UniformSource.
type UniformFunc func() float64

// Float64 calls fn.
func (fn UniformFunc) Float64() float64 { return fn() }

// radius returns sqrt(-2 ln(u1)) after checking that u1 is in (0, 1].
func radius(u1 float64) (float64, error) {
	if !(u1 > 0 && u1 <= 1) {
		return 0, Error.New("u1 out of domain (0, 1]: %v", u1)
	}
	return math.Sqrt(-2 * math.Log(u1)), nil
}

// Direct returns the cosine branch of the Box-Muller transform of u1 and u2.
// It returns an error if u1 is not in (0, 1].
func Direct(u1, u2 float64) (float64, error) {
	r, err := radius(u1)
	if err != nil {
		return 0, err
	}
	return r * math.Cos(2*math.Pi*u2), nil
}

// DirectPair returns both the cosine and sine branches of the Box-Muller
// transform, which are independent standard normals.
func DirectPair(u1, u2 float64) (z0, z1 float64, err error) {
	r, err := radius(u1)
	if err != nil {
		return 0, 0, err
	}
	s, c := math.Sincos(2 * math.Pi * u2)
	return r * c, r * s, nil
}
