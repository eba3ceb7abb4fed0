// Package rng provides the single seedable random stream every generator
// draws from. Identical seeds replay identical batches.
package rng

import (
	"encoding/hex"
	"math"
	"math/rand/v2"
)

// Source is a deterministic random stream. It is not safe for concurrent use;
// each batch owns exactly one.
type Source struct {
	r *rand.Rand
}

// New returns a Source seeded with seed.
func New(seed uint64) *Source {
	return &Source{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float64 returns a value in [0,1).
func (s *Source) Float64() float64 {
	return s.r.Float64()
}

// Uniform returns a value in [lo,hi]. Reversed bounds are swapped.
func (s *Source) Uniform(lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + s.r.Float64()*(hi-lo)
}

// IntBetween returns an integer in [lo,hi] inclusive.
func (s *Source) IntBetween(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + s.r.IntN(hi-lo+1)
}

// IntN returns an integer in [0,n). n must be positive.
func (s *Source) IntN(n int) int {
	return s.r.IntN(n)
}

// Bool returns true with probability one half.
func (s *Source) Bool() bool {
	return s.r.IntN(2) == 1
}

// Choice picks one string. An empty slice yields "".
func (s *Source) Choice(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[s.r.IntN(len(items))]
}

// Pick picks one element of any slice. It panics on an empty slice.
func Pick[T any](s *Source, items []T) T {
	return items[s.r.IntN(len(items))]
}

// Sample returns k distinct elements in draw order. k is clamped to len(items).
func (s *Source) Sample(items []string, k int) []string {
	return SampleOf(s, items, k)
}

// SampleOf is Sample for any element type.
func SampleOf[T any](s *Source, items []T, k int) []T {
	k = max(min(k, len(items)), 0)
	pool := append([]T(nil), items...)
	out := make([]T, 0, k)
	for i := 0; i < k; i++ {
		j := i + s.r.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
		out = append(out, pool[i])
	}
	return out
}

// Weighted returns an index drawn proportionally to weights. Non-positive
// weights never win; if every weight is non-positive the first index is returned.
func (s *Source) Weighted(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0
	}
	target := s.r.Float64() * total
	acc := 0.0
	last := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		last = i
		if target < acc {
			return i
		}
	}
	return last
}

// Hex returns n random bytes hex-encoded (2n characters).
func (s *Source) Hex(n int) string {
	b := make([]byte, n)
	_, _ = s.Read(b)
	return hex.EncodeToString(b)
}

// Read fills p with random bytes. It lets the stream back io.Reader consumers
// such as uuid.NewRandomFromReader.
func (s *Source) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := s.r.Uint64()
		for j := 0; j < 8 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (8 * j))
		}
	}
	return len(p), nil
}

// Round rounds v to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
