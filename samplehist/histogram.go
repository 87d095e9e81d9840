// Package samplehist provides a histogram of float samples with a bounded
// relative error of about 1.5%, for summarizing the output of generators.
package samplehist

import (
	"math"
	"sync/atomic"
	"unsafe"
)

type ptr = unsafe.Pointer

// Observations are keyed by their float32 bits mapped so that unsigned key
// order is float order. The top 15 bits of the key pick a counter through
// three levels of 5 bits each.
const (
	levelShift = 5
	levelSize  = 1 << levelShift
	levelMask  = levelSize - 1

	l1Shift  = 32 - levelShift
	l2Shift  = l1Shift - levelShift
	ctrShift = l2Shift - levelShift
)

type (
	level0 struct {
		bm b32
		l1 [levelSize]*level1
	}
	level1 struct {
		bm b32
		l2 [levelSize]*level2
	}
	level2 [levelSize]uint64
)

// Histogram counts observations. The zero value is ready to use, and
// Observe may be called concurrently.
type Histogram struct {
	l0 level0
}

// toKey maps a float to its ordered key.
func toKey(v float32) uint32 {
	obs := math.Float32bits(v)
	return obs ^ (uint32(int32(obs)>>31) | 1<<31)
}

// fromKey is the inverse of toKey.
func fromKey(key uint32) float32 {
	return math.Float32frombits(key ^ (^uint32(int32(key)>>31) | 1<<31))
}

// Observe records v. NaNs and values that overflow a float32 are dropped.
func (h *Histogram) Observe(v float64) {
	if v != v || v > math.MaxFloat32 || v < -math.MaxFloat32 {
		return
	}
	key := toKey(float32(v))

	l1i := (key >> l1Shift) & levelMask
	l1a := (*ptr)(ptr(&h.l0.l1[l1i]))
	l1 := (*level1)(atomic.LoadPointer(l1a))
	if l1 == nil {
		l1 = new(level1)
		if !atomic.CompareAndSwapPointer(l1a, nil, ptr(l1)) {
			l1 = (*level1)(atomic.LoadPointer(l1a))
		} else {
			h.l0.bm.Set(uint(l1i))
		}
	}

	l2i := (key >> l2Shift) & levelMask
	l2a := (*ptr)(ptr(&l1.l2[l2i]))
	l2 := (*level2)(atomic.LoadPointer(l2a))
	if l2 == nil {
		l2 = new(level2)
		if !atomic.CompareAndSwapPointer(l2a, nil, ptr(l2)) {
			l2 = (*level2)(atomic.LoadPointer(l2a))
		} else {
			l1.bm.Set(uint(l2i))
		}
	}

	atomic.AddUint64(&l2[(key>>ctrShift)&levelMask], 1)
}

// walk calls cb with the lowest key of every allocated counter and its count
// in ascending key order, stopping early if cb returns false.
func (h *Histogram) walk(cb func(key uint32, count uint64) bool) {
	bm0 := h.l0.bm.Clone()
	for {
		i, ok := bm0.Next()
		if !ok {
			return
		}
		l1 := (*level1)(atomic.LoadPointer((*ptr)(ptr(&h.l0.l1[i]))))

		bm1 := l1.bm.Clone()
		for {
			j, ok := bm1.Next()
			if !ok {
				break
			}
			l2 := (*level2)(atomic.LoadPointer((*ptr)(ptr(&l1.l2[j]))))

			for k := uint32(0); k < levelSize; k++ {
				key := i<<l1Shift | j<<l2Shift | k<<ctrShift
				if !cb(key, atomic.LoadUint64(&l2[k])) {
					return
				}
			}
		}
	}
}

// middle returns the value in the middle of the counter starting at key.
func middle(key uint32) float64 {
	return float64(fromKey(key | 1<<(ctrShift-1)))
}

// Total returns the number of observations.
func (h *Histogram) Total() (total int64) {
	h.walk(func(_ uint32, count uint64) bool {
		total += int64(count)
		return true
	})
	return total
}

// Quantile returns an estimation of the qth quantile for q in [0, 1]. It is
// 0 for an empty histogram.
func (h *Histogram) Quantile(q float64) (v float64) {
	total := h.Total()
	if total == 0 {
		return 0
	}

	target, acc := uint64(q*float64(total)+0.5), uint64(0)
	v = math.MaxFloat32

	h.walk(func(key uint32, count uint64) bool {
		acc += count
		if acc >= target && count > 0 {
			v = float64(fromKey(key))
			return false
		}
		return true
	})

	return v
}

// CDF returns an estimation of the fraction of observations at most v.
func (h *Histogram) CDF(v float64) float64 {
	obs := toKey(float32(v))

	var sum, total uint64
	h.walk(func(key uint32, count uint64) bool {
		if key <= obs {
			sum += count
		}
		total += count
		return true
	})

	if total == 0 {
		return 0
	}
	return float64(sum) / float64(total)
}

// Average returns an estimation of the sum and average.
func (h *Histogram) Average() (sum, avg float64) {
	var total float64
	h.walk(func(key uint32, count uint64) bool {
		if count > 0 {
			total += float64(count)
			sum += float64(count) * middle(key)
		}
		return true
	})

	if total == 0 {
		return 0, 0
	}
	return sum, sum / total
}

// Variance returns an estimation of the sum, average and sample variance.
func (h *Histogram) Variance() (sum, avg, vari float64) {
	var total, m2 float64
	h.walk(func(key uint32, count uint64) bool {
		if count == 0 {
			return true
		}
		n, value := float64(count), middle(key)

		// weighted welford update
		total += n
		delta := value - avg
		avg += delta * n / total
		m2 += n * delta * (value - avg)
		sum += n * value
		return true
	})

	if total < 2 {
		return sum, avg, 0
	}
	return sum, avg, m2 / (total - 1)
}
