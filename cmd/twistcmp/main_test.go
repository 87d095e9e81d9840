package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/zeebo/assert"
)

func TestRun(t *testing.T) {
	t.Run("Table", func(t *testing.T) {
		for _, compare := range []string{"pcg", "rand"} {
			var buf bytes.Buffer
			assert.NoError(t, run(&buf, config{
				seed:    1,
				pairs:   5,
				samples: 1000,
				mean:    0,
				stddev:  1,
				compare: compare,
			}))

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			assert.Equal(t, len(lines), 1+5+1+1+2)
			assert.That(t, strings.Contains(lines[0], compare+" u1"))
			// the first mt uniform for seed 1
			assert.That(t, strings.Contains(lines[1], "0.702745"))
			assert.That(t, strings.HasPrefix(strings.TrimSpace(lines[8]), "mt"))
		}
	})

	t.Run("NoSummary", func(t *testing.T) {
		var buf bytes.Buffer
		assert.NoError(t, run(&buf, config{seed: 1, pairs: 2, stddev: 1, compare: "pcg"}))
		assert.Equal(t, strings.Count(buf.String(), "\n"), 3)
	})

	t.Run("Errors", func(t *testing.T) {
		var buf bytes.Buffer
		assert.That(t, run(&buf, config{seed: 1, compare: "drand48"}) != nil)
		assert.That(t, run(&buf, config{seed: 1 << 40, compare: "pcg"}) != nil)
		assert.That(t, run(&buf, config{seed: 1, pairs: 1, stddev: -1, compare: "pcg"}) != nil)
	})
}
