// Package twist implements the 32-bit Mersenne Twister (MT19937) seeded by
// Knuth's multiplicative warm up, and a registry of independent named streams.
package twist

import (
	"github.com/zeebo/errs"
)

// Error is the class of errors returned or panicked by this package.
var Error = errs.Class("twist")

const (
	stateSize = 624
	stateStep = 397 // paired with stateSize: changing one requires changing the other

	upperMask = 0x80000000
	lowerMask = 0x7fffffff
	matrixA   = 0x9908b0df

	temperB = 0x9d2c5680
	temperC = 0xefc60000

	seedMul = 6069
)

// FallbackSeed is the seed a Lenient generator silently reseeds with when it
// finds itself unseeded or corrupted.
const FallbackSeed = 4357

// Generator is a 32-bit Mersenne Twister. It is not safe for concurrent use:
// use one Generator per goroutine. The zero value is unseeded, and drawing
// from it panics unless Lenient is set.
type Generator struct {
	// Lenient causes an unseeded or corrupted generator to reseed with
	// FallbackSeed instead of panicking.
	Lenient bool

	words  [stateSize]uint32
	left   int // words remaining before the next twist
	seeded bool
	twists uint64
}

// New returns a Generator seeded with seed.
func New(seed uint32) *Generator {
	g := new(Generator)
	g.Seed(seed)
	return g
}

// Seed resets the generator state from seed. Every seed is valid. The first
// draw after seeding performs a full twist.
func (g *Generator) Seed(seed uint32) {
	// linear congruential warm up from Knuth, TAOCP Vol. 2, Table 1 line 25.
	g.words[0] = seed
	for i := 1; i < stateSize; i++ {
		g.words[i] = seedMul * g.words[i-1]
	}
	g.left = 0
	g.seeded = true
}

// index returns the position of the next word to be tempered.
func (g *Generator) index() int { return stateSize - g.left }

// Validate returns an error if the generator was never seeded or its cursor
// is outside of the state vector.
func (g *Generator) Validate() error {
	if !g.seeded {
		return Error.New("generator not seeded")
	}
	if g.left < 0 || g.left > stateSize {
		return Error.New("cursor out of range: %d", g.index())
	}
	return nil
}

// Regenerations returns how many full twist passes the generator has done.
func (g *Generator) Regenerations() uint64 { return g.twists }

// twist regenerates the whole state vector and rewinds the cursor.
func (g *Generator) twist() {
	if g.left != 0 || !g.seeded {
		if !g.Lenient {
			panic(g.Validate())
		}
		g.Seed(FallbackSeed)
	}

	w := &g.words
	k := 0
	for ; k < stateSize-stateStep; k++ {
		y := w[k]&upperMask | w[k+1]&lowerMask
		w[k] = w[k+stateStep] ^ y>>1 ^ matrixA*(y&1)
	}
	for ; k < stateSize-1; k++ {
		y := w[k]&upperMask | w[k+1]&lowerMask
		w[k] = w[k+stateStep-stateSize] ^ y>>1 ^ matrixA*(y&1)
	}
	y := w[stateSize-1]&upperMask | w[0]&lowerMask
	w[stateSize-1] = w[stateStep-1] ^ y>>1 ^ matrixA*(y&1)

	g.left = stateSize
	g.twists++
}

// Uint32 returns the next tempered word.
func (g *Generator) Uint32() uint32 {
	if uint(g.left-1) >= stateSize {
		g.twist()
	}

	y := g.words[stateSize-g.left]
	g.left--

	y ^= y >> 11
	y ^= y << 7 & temperB
	y ^= y << 15 & temperC
	y ^= y >> 18
	return y
}

// Uniform returns a float in the closed interval [0, 1]. It is 1 exactly when
// the underlying word is 0xffffffff.
func (g *Generator) Uniform() float64 {
	return float64(g.Uint32()) / 0xffffffff
}

// Float64 returns a float uniformly in [0, 1) using 53 bits from two words.
func (g *Generator) Float64() float64 {
	a, b := g.Uint32()>>5, g.Uint32()>>6
	return float64(uint64(a)<<26|uint64(b)) / (1 << 53)
}

// Uint64 returns two consecutive words, the first in the high half.
func (g *Generator) Uint64() uint64 {
	return uint64(g.Uint32())<<32 | uint64(g.Uint32())
}

// Int63 returns a non-negative int64.
func (g *Generator) Int63() int64 { return int64(g.Uint64() >> 1) }

// Uint32n returns a uint32 in [0, n) using a multiply and shift. It has a
// slight bias when n is not a power of two. It panics if n is 0.
func (g *Generator) Uint32n(n uint32) uint32 {
	if n == 0 {
		panic(Error.New("invalid argument to Uint32n: 0"))
	}
	return uint32(uint64(g.Uint32()) * uint64(n) >> 32)
}

// Intn returns an int in [0, n) with the same bias as Uint32n. It panics if n
// is not in (0, 1<<32].
func (g *Generator) Intn(n int) int {
	if n <= 0 || uint64(n) > 1<<32 {
		panic(Error.New("invalid argument to Intn: %d", n))
	}
	return int(uint64(g.Uint32()) * uint64(n) >> 32)
}
