package gauss

// Normal is a normal distribution sampled with the polar method. It keeps
// its own Cache, so a Normal must not be copied after its first draw or used
// from more than one goroutine.
type Normal struct {
	Mean   float64
	StdDev float64
	Source UniformSource

	cache Cache
}

// Rand returns a sample drawn from the distribution.
func (n *Normal) Rand() (float64, error) {
	if n.Source == nil {
		return 0, Error.New("normal has no uniform source")
	}
	return Polar(n.Mean, n.StdDev, &n.cache, n.Source)
}

// Fill fills out with samples, stopping at the first error.
func (n *Normal) Fill(out []float64) (err error) {
	for i := range out {
		out[i], err = n.Rand()
		if err != nil {
			return err
		}
	}
	return nil
}
