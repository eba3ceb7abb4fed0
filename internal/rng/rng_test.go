package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_SameSeedSameStream(t *testing.T) {
	a, b := New(7), New(7)
	for range 20 {
		assert.Equal(t, a.Float64(), b.Float64())
	}
	assert.NotEqual(t, New(1).Hex(8), New(2).Hex(8))
}

func TestSource_Bounds(t *testing.T) {
	s := New(3)
	for range 200 {
		n := s.IntBetween(5, 2)
		assert.GreaterOrEqual(t, n, 2)
		assert.LessOrEqual(t, n, 5)

		f := s.Uniform(7.5, 10)
		assert.GreaterOrEqual(t, f, 7.5)
		assert.LessOrEqual(t, f, 10.0)
	}
}

func TestSource_Choice(t *testing.T) {
	s := New(1)
	assert.Empty(t, s.Choice(nil))
	assert.Equal(t, "only", s.Choice([]string{"only"}))
	assert.Equal(t, 9, Pick(s, []int{9}))
}

func TestSampleOf_DistinctAndClamped(t *testing.T) {
	s := New(11)
	items := []string{"a", "b", "c", "d"}

	got := s.Sample(items, 3)
	require.Len(t, got, 3)
	seen := map[string]bool{}
	for _, v := range got {
		assert.False(t, seen[v])
		seen[v] = true
	}

	assert.ElementsMatch(t, items, s.Sample(items, 10))
	assert.Empty(t, SampleOf(s, items, -1))
	assert.Equal(t, []string{"a", "b", "c", "d"}, items, "input is not reordered")
}

func TestWeighted(t *testing.T) {
	s := New(5)
	assert.Equal(t, 0, s.Weighted([]float64{0, -1}))
	for range 50 {
		assert.Equal(t, 2, s.Weighted([]float64{0, -3, 1}))
	}

	counts := make([]int, 2)
	for range 2000 {
		counts[s.Weighted([]float64{0.9, 0.1})]++
	}
	assert.Greater(t, counts[0], counts[1]*4)
}

func TestHexAndRead(t *testing.T) {
	assert.Len(t, New(1).Hex(6), 12)

	buf := make([]byte, 13)
	n, err := New(1).Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 13, n)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 8.57, Round(8.5671, 2))
	assert.Equal(t, 3.0, Round(2.5, 0))
}
