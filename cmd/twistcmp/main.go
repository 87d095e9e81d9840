// Command twistcmp prints Mersenne Twister driven normal samples beside those
// of a second uniform source, followed by a summary of each stream.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"text/tabwriter"

	"github.com/zeebo/errs"
	"github.com/zeebo/pcg"
	"github.com/zeebo/twist"
	"github.com/zeebo/twist/gauss"
	"github.com/zeebo/twist/samplehist"
)

type config struct {
	seed    uint
	pairs   int
	samples int
	mean    float64
	stddev  float64
	compare string
}

func main() {
	var cfg config
	flag.UintVar(&cfg.seed, "seed", 1, "seed for both generators")
	flag.IntVar(&cfg.pairs, "pairs", 50, "number of side by side rows to print")
	flag.IntVar(&cfg.samples, "samples", 100000, "number of samples to summarize (0 to skip)")
	flag.Float64Var(&cfg.mean, "mean", 0, "mean of the normal distribution")
	flag.Float64Var(&cfg.stddev, "stddev", 1, "standard deviation of the normal distribution")
	flag.StringVar(&cfg.compare, "compare", "pcg", "source to compare against: pcg or rand")
	flag.Parse()

	if err := run(os.Stdout, cfg); err != nil {
		log.Fatal(err)
	}
}

// newComparison returns the source named by name, seeded with seed.
func newComparison(name string, seed uint32) (gauss.UniformSource, error) {
	switch name {
	case "pcg":
		rng := pcg.New(uint64(seed))
		return gauss.UniformFunc(func() float64 {
			a, b := rng.Uint32()>>5, rng.Uint32()>>6
			return float64(uint64(a)<<26|uint64(b)) / (1 << 53)
		}), nil
	case "rand":
		return rand.New(rand.NewSource(int64(seed))), nil
	default:
		return nil, errs.New("unknown comparison source %q", name)
	}
}

func run(w io.Writer, cfg config) (err error) {
	if cfg.seed > math.MaxUint32 {
		return errs.New("seed out of range: %d", cfg.seed)
	}
	seed := uint32(cfg.seed)

	mt := twist.New(seed)
	other, err := newComparison(cfg.compare, seed)
	if err != nil {
		return err
	}

	mtNormal := &gauss.Normal{Mean: cfg.mean, StdDev: cfg.stddev, Source: mt}
	otherNormal := &gauss.Normal{Mean: cfg.mean, StdDev: cfg.stddev, Source: other}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "\t%s u1\t%s u2\tmt u1\tmt u2\t%s\tmt\t\n", cfg.compare, cfg.compare, cfg.compare)
	for i := 0; i < cfg.pairs; i++ {
		a, b := other.Float64(), other.Float64()
		c, d := mt.Uniform(), mt.Uniform()

		x, err := otherNormal.Rand()
		if err != nil {
			return err
		}
		y, err := mtNormal.Rand()
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%d\t%.6f\t%.6f\t%.6f\t%.6f\t%.6f\t%.6f\t\n", i, a, b, c, d, x, y)
	}
	if err := tw.Flush(); err != nil {
		return errs.Wrap(err)
	}

	if cfg.samples <= 0 {
		return nil
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "source\tmean\tvariance\tp01\tp50\tp99\t\n")
	for _, s := range []struct {
		name string
		n    *gauss.Normal
	}{
		{"mt", mtNormal},
		{cfg.compare, otherNormal},
	} {
		h, err := summarize(s.n, cfg.samples)
		if err != nil {
			return err
		}
		_, avg, vari := h.Variance()
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t\n",
			s.name, avg, vari, h.Quantile(0.01), h.Quantile(0.5), h.Quantile(0.99))
	}
	return errs.Wrap(tw.Flush())
}

// summarize draws samples values from n into a histogram.
func summarize(n *gauss.Normal, samples int) (*samplehist.Histogram, error) {
	h := new(samplehist.Histogram)
	for i := 0; i < samples; i++ {
		v, err := n.Rand()
		if err != nil {
			return nil, err
		}
		h.Observe(v)
	}
	return h, nil
}
