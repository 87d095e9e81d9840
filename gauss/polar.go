package gauss

import "math"

// Cache holds the second half of a pair produced by Polar. The zero value is
// empty. A Cache belongs to one logical stream: sharing it between streams
// leaks half of one stream's pair into the other.
type Cache struct {
	value float64
	full  bool
}

// Pending returns the cached standard normal, if any, without consuming it.
func (c *Cache) Pending() (float64, bool) { return c.value, c.full }

// Reset drops any cached value.
func (c *Cache) Reset() { *c = Cache{} }

// Polar returns a normal variate with the given mean and standard deviation
// using Marsaglia's polar method. Draws alternate between computing a fresh
// pair from src, returning the first, and returning the cached second one.
func Polar(mean, stddev float64, cache *Cache, src UniformSource) (float64, error) {
	if err := checkParams(mean, stddev); err != nil {
		return 0, err
	}

	if cache.full {
		cache.full = false
		return mean + cache.value*stddev, nil
	}

	z0, z1, err := polarPair(src)
	if err != nil {
		return 0, err
	}

	cache.value, cache.full = z1, true
	return mean + z0*stddev, nil
}

// polarPair draws points in the square (-1, 1)^2 until one lands inside of
// the unit disk and maps it to two standard normals.
func polarPair(src UniformSource) (z0, z1 float64, err error) {
	for i := 0; i < MaxRejections; i++ {
		x1 := 2*src.Float64() - 1
		x2 := 2*src.Float64() - 1

		// the origin is rejected as well, since ln(0) has no value.
		w := x1*x1 + x2*x2
		if !(w < 1) || w == 0 {
			continue
		}

		w = math.Sqrt(-2 * math.Log(w) / w)
		return x1 * w, x2 * w, nil
	}

	return 0, 0, Error.New("uniform source never landed in the unit disk after %d draws", MaxRejections)
}

// checkParams returns an error unless mean is finite and stddev is finite and
// non-negative.
func checkParams(mean, stddev float64) error {
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return Error.New("invalid mean: %v", mean)
	}
	if !(stddev >= 0) || math.IsInf(stddev, 0) {
		return Error.New("invalid standard deviation: %v", stddev)
	}
	return nil
}
