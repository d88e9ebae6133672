package shuffle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestDoDeterministic(t *testing.T) {
	a := intRange(50)
	b := intRange(50)

	Do(a, 42)
	Do(b, 42)

	assert.Equal(t, a, b, "same seed and input must produce identical order")
}

func TestDoDifferentSeedsDiffer(t *testing.T) {
	a := intRange(50)
	b := intRange(50)

	Do(a, 1)
	Do(b, 2)

	assert.NotEqual(t, a, b)
}

func TestDoIsPermutation(t *testing.T) {
	items := intRange(97)
	Do(items, 123456)

	require.Len(t, items, 97)
	seen := make(map[int]bool, len(items))
	for _, v := range items {
		assert.False(t, seen[v], "duplicate element %d", v)
		seen[v] = true
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 97)
	}
}

func TestDoNegativeSeed(t *testing.T) {
	a := intRange(10)
	b := intRange(10)
	Do(a, -42)
	Do(b, -42)
	assert.Equal(t, a, b)
}

// math.MinInt64 has no positive counterpart, so a naive sign flip
// leaves the generator negative and the swap index out of range.
func TestDoExtremeSeeds(t *testing.T) {
	for _, seed := range []int64{math.MinInt64, math.MaxInt64, math.MinInt64 + 1, -lcgModulus} {
		items := intRange(20)
		Do(items, seed)

		require.Len(t, items, 20)
		seen := make(map[int]bool, len(items))
		for _, v := range items {
			assert.False(t, seen[v], "seed %d produced duplicate %d", seed, v)
			seen[v] = true
		}
	}
}

func TestDoSmallInputs(t *testing.T) {
	empty := []int{}
	Do(empty, 7)
	assert.Empty(t, empty)

	one := []int{5}
	Do(one, 7)
	assert.Equal(t, []int{5}, one)
}

func TestPage(t *testing.T) {
	items := intRange(10)

	assert.Equal(t, []int{0, 1, 2, 3}, Page(items, 1, 4))
	assert.Equal(t, []int{4, 5, 6, 7}, Page(items, 2, 4))
	assert.Equal(t, []int{8, 9}, Page(items, 3, 4))
	assert.Empty(t, Page(items, 4, 4))
	assert.Equal(t, []int{0, 1, 2, 3}, Page(items, 0, 4), "page below 1 clamps to first page")
	assert.Empty(t, Page(items, 1, 0))
}

func TestPagesCoverListWithoutOverlap(t *testing.T) {
	items := intRange(23)
	Do(items, 99)

	var rebuilt []int
	for page := 1; ; page++ {
		chunk := Page(items, page, 5)
		if len(chunk) == 0 {
			break
		}
		rebuilt = append(rebuilt, chunk...)
	}
	assert.Equal(t, items, rebuilt)
}
