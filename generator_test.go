package twist

import (
	"math/rand"
	"reflect"
	"runtime"
	"testing"

	"github.com/zeebo/assert"
	"github.com/zeebo/pcg"
)

func TestGenerator(t *testing.T) {
	t.Run("Golden", func(t *testing.T) {
		g := New(1)
		for _, want := range []uint32{
			3018268696, 1272122893, 2862735652, 3751029454, 2433498063,
			496519580, 2135191703, 1508715654, 3963804358, 1992826025,
		} {
			assert.Equal(t, g.Uint32(), want)
		}
	})

	t.Run("OtherSeeds", func(t *testing.T) {
		for _, tc := range []struct {
			seed uint32
			want [3]uint32
		}{
			{FallbackSeed, [3]uint32{3991895922, 3924182887, 2645243252}},
			{5489, [3]uint32{1725666986, 691302046, 828496344}},
			{0xdeadbeef, [3]uint32{4239770921, 1288537867, 3056191860}},
		} {
			g := New(tc.seed)
			got := [3]uint32{g.Uint32(), g.Uint32(), g.Uint32()}
			assert.Equal(t, got, tc.want)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		for i := 0; i < 10; i++ {
			seed := pcg.Uint32()
			a, b := New(seed), New(seed)
			for j := 0; j < 2*stateSize+7; j++ {
				assert.Equal(t, a.Uint32(), b.Uint32())
			}
		}
	})

	t.Run("Reseed", func(t *testing.T) {
		g := New(1)
		for i := 0; i < 1000; i++ {
			g.Uint32()
		}
		g.Seed(1)
		assert.Equal(t, g.Uint32(), uint32(3018268696))
	})

	t.Run("RegenerationBoundary", func(t *testing.T) {
		g := New(1)
		assert.Equal(t, g.Regenerations(), uint64(0))

		g.Uint32()
		assert.Equal(t, g.Regenerations(), uint64(1))

		got := make([]uint32, 0, 10)
		for i := 1; i < 630; i++ {
			w := g.Uint32()
			if i >= 620 {
				got = append(got, w)
			}
			if i < stateSize {
				assert.Equal(t, g.Regenerations(), uint64(1))
			} else {
				assert.Equal(t, g.Regenerations(), uint64(2))
			}
		}

		assert.DeepEqual(t, got, []uint32{
			1982011196, 3741360814, 1782945221, 759672345, 155041835,
			3188693502, 4152556492, 1330800998, 2547318134, 1645055323,
		})
	})

	t.Run("ZeroSeed", func(t *testing.T) {
		// the warm up multiplies, so a zero seed keeps the whole state zero.
		g := New(0)
		for i := 0; i < 2*stateSize; i++ {
			assert.Equal(t, g.Uint32(), uint32(0))
		}
	})

	t.Run("FallbackScenario", func(t *testing.T) {
		a, b := New(FallbackSeed), New(1)

		as, bs := make([]uint32, 1000), make([]uint32, 1000)
		for i := range as {
			as[i], bs[i] = a.Uint32(), b.Uint32()
		}

		for i := 1; i < len(as); i++ {
			assert.That(t, as[i] != as[i-1])
		}
		assert.That(t, !reflect.DeepEqual(as, bs))
	})
}

func TestUnseeded(t *testing.T) {
	t.Run("ZeroValuePanics", func(t *testing.T) {
		var g Generator
		assert.That(t, Error.Has(g.Validate()))
		assert.That(t, Error.Has(catch(func() { g.Uint32() })))
	})

	t.Run("CorruptCursorPanics", func(t *testing.T) {
		for _, left := range []int{-1, -100, stateSize + 1} {
			g := New(1)
			g.left = left
			assert.That(t, Error.Has(g.Validate()))
			assert.That(t, Error.Has(catch(func() { g.Uint32() })))
		}
	})

	t.Run("LenientReseeds", func(t *testing.T) {
		ref := New(FallbackSeed)

		g := &Generator{Lenient: true}
		for i := 0; i < 10; i++ {
			assert.Equal(t, g.Uint32(), ref.Uint32())
		}

		ref.Seed(FallbackSeed)
		g = New(1)
		g.Lenient = true
		g.left = -7
		for i := 0; i < 10; i++ {
			assert.Equal(t, g.Uint32(), ref.Uint32())
		}
		assert.NoError(t, g.Validate())
	})

	t.Run("ExhaustedIsValid", func(t *testing.T) {
		g := New(1)
		for i := 0; i < stateSize; i++ {
			g.Uint32()
		}
		assert.Equal(t, g.left, 0)
		assert.NoError(t, g.Validate())
	})
}

// catch runs fn and returns the error it panicked with, if any.
func catch(fn func()) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err, _ = rec.(error)
		}
	}()
	fn()
	return nil
}

func TestUniform(t *testing.T) {
	t.Run("Golden", func(t *testing.T) {
		g := New(1)
		assert.Equal(t, g.Uniform(), 0.7027454433736264)
		assert.Equal(t, g.Uniform(), 0.29618919205297467)
		assert.Equal(t, g.Uniform(), 0.6665325846212293)
	})

	t.Run("Closed", func(t *testing.T) {
		// 0x12dd9bb3 is the raw word that tempers to 0xffffffff.
		assert.Equal(t, temper(0x12dd9bb3), uint32(0xffffffff))

		g := New(1)
		g.Uint32()
		g.words[1], g.words[2] = 0x12dd9bb3, 0
		assert.Equal(t, g.Uniform(), 1.0)
		assert.Equal(t, g.Uniform(), 0.0)

		for i := 0; i < 100000; i++ {
			u := g.Uniform()
			assert.That(t, u >= 0 && u <= 1)
		}
	})

	t.Run("Float64", func(t *testing.T) {
		g := New(1)
		for i := 0; i < 100000; i++ {
			u := g.Float64()
			assert.That(t, u >= 0 && u < 1)
		}
	})

	t.Run("Uint64", func(t *testing.T) {
		g := New(1)
		assert.Equal(t, g.Uint64(), uint64(12963365341132688909))
	})

	t.Run("Intn", func(t *testing.T) {
		g := New(1)
		var counts [7]int
		for i := 0; i < 70000; i++ {
			counts[g.Intn(7)]++
		}
		for _, c := range counts {
			assert.That(t, c > 9000 && c < 11000)
		}
		assert.That(t, Error.Has(catch(func() { g.Intn(0) })))
		assert.That(t, Error.Has(catch(func() { g.Intn(-1) })))
		assert.That(t, Error.Has(catch(func() { g.Uint32n(0) })))

		for i := 0; i < 1000; i++ {
			assert.That(t, g.Uint32n(10) < 10)
		}
	})

	t.Run("Source", func(t *testing.T) {
		r := rand.New(New(1).Source())
		assert.Equal(t, r.Uint64(), uint64(12963365341132688909))

		r.Seed(1)
		assert.Equal(t, r.Int63(), int64(12963365341132688909>>1))
	})
}

// temper applies the output transform to y.
func temper(y uint32) uint32 {
	y ^= y >> 11
	y ^= y << 7 & temperB
	y ^= y << 15 & temperC
	y ^= y >> 18
	return y
}

func BenchmarkGenerator(b *testing.B) {
	b.Run("Uint32", func(b *testing.B) {
		var sink uint32
		g := New(1)
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			sink += g.Uint32()
		}

		runtime.KeepAlive(sink)
	})

	b.Run("Uniform", func(b *testing.B) {
		var sink float64
		g := New(1)
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			sink += g.Uniform()
		}

		runtime.KeepAlive(sink)
	})

	b.Run("Seed", func(b *testing.B) {
		g := New(1)
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			g.Seed(uint32(i))
		}
	})
}
