package twist

import (
	"sync"
	"sync/atomic"

	"github.com/zeebo/twist/gauss"
	"github.com/zeebo/xxh3"
)

// Stream is a named, independent generator together with the cache the polar
// transform needs. A Stream must only be driven by one goroutine at a time.
//
// Every way of replacing the generator state also drops the cached normal, so
// a Normal after Seed or UnmarshalBinary never returns half of an old pair.
type Stream struct {
	name  string
	gen   Generator
	cache gauss.Cache
}

// Name returns the name the stream was registered under.
func (s *Stream) Name() string { return s.name }

// Seed reseeds the stream's generator and drops any cached normal.
func (s *Stream) Seed(seed uint32) {
	s.gen.Seed(seed)
	s.cache.Reset()
}

// Uint32 returns the next tempered word of the stream.
func (s *Stream) Uint32() uint32 { return s.gen.Uint32() }

// Uniform returns a float in the closed interval [0, 1].
func (s *Stream) Uniform() float64 { return s.gen.Uniform() }

// Float64 returns a float in [0, 1).
func (s *Stream) Float64() float64 { return s.gen.Float64() }

// Normal returns a normal variate with the given mean and standard deviation
// drawn from the stream's generator.
func (s *Stream) Normal(mean, stddev float64) (float64, error) {
	return gauss.Polar(mean, stddev, &s.cache, &s.gen)
}

// MarshalBinary checkpoints the stream's generator. The cached normal is not
// part of the checkpoint.
func (s *Stream) MarshalBinary() ([]byte, error) { return s.gen.MarshalBinary() }

// UnmarshalBinary restores the generator from a checkpoint and drops any
// cached normal. The stream is unchanged if data is invalid.
func (s *Stream) UnmarshalBinary(data []byte) error {
	if err := s.gen.UnmarshalBinary(data); err != nil {
		return err
	}
	s.cache.Reset()
	return nil
}

// Fingerprint returns the fingerprint of the stream's generator state.
func (s *Stream) Fingerprint() uint64 { return s.gen.Fingerprint() }

// SeedFor derives a seed from a stream name.
func SeedFor(name string) uint32 {
	h := xxh3.HashString(name)
	return uint32(h>>32) ^ uint32(h)
}

// registry maps names to streams. Readers never lock: they load an immutable
// snapshot. Writers serialize on mu and publish a fresh copy with the new
// stream added.
type registry struct {
	mu   sync.Mutex
	snap atomic.Value // map[string]*Stream
}

var streams registry

func (r *registry) snapshot() map[string]*Stream {
	m, _ := r.snap.Load().(map[string]*Stream)
	return m
}

func (r *registry) create(name string) *Stream {
	r.mu.Lock()
	defer r.mu.Unlock()

	// another writer may have published name since the caller looked.
	old := r.snapshot()
	if s := old[name]; s != nil {
		return s
	}

	s := &Stream{name: name}
	s.gen.Seed(SeedFor(name))

	next := make(map[string]*Stream, len(old)+1)
	for n, existing := range old {
		next[n] = existing
	}
	next[name] = s
	r.snap.Store(next)

	return s
}

// GetStream returns the stream for some name, creating it seeded with
// SeedFor(name) if necessary.
func GetStream(name string) *Stream {
	if s := streams.snapshot()[name]; s != nil {
		return s
	}
	return streams.create(name)
}

// LookupStream returns the stream for some name, returning nil if none exists.
func LookupStream(name string) *Stream { return streams.snapshot()[name] }

// Streams calls the callback with every registered stream until it returns
// false.
func Streams(cb func(string, *Stream) bool) {
	for name, s := range streams.snapshot() {
		if !cb(name, s) {
			return
		}
	}
}
