package twist

import "math/rand"

// source adapts a Generator to the math/rand Source64 interface.
type source struct{ g *Generator }

// Source returns a rand.Source64 backed by the generator, so that it can be
// handed to rand.New. Seeding the source truncates the seed to 32 bits.
func (g *Generator) Source() rand.Source64 { return source{g: g} }

func (s source) Int63() int64    { return s.g.Int63() }
func (s source) Uint64() uint64  { return s.g.Uint64() }
func (s source) Seed(seed int64) { s.g.Seed(uint32(seed)) }
