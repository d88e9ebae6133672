// Package shuffle provides the seeded listing randomizer. The same
// seed always yields the same permutation, so paginated storefront
// requests sharing a seed slice one stable ordering instead of
// re-randomizing every page load.
package shuffle

// lcg is the linear-congruential generator driving the shuffle. Not
// cryptographic; the storefront only needs perceived freshness.
type lcg struct {
	seed int64
}

const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// next returns a pseudo-random float in [0, 1)
func (g *lcg) next() float64 {
	g.seed = (g.seed*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(g.seed) / lcgModulus
}

// Do performs an in-place Fisher-Yates shuffle of items driven by
// seed. Any int64 is a usable seed; reducing mod first keeps the
// generator state in [0, lcgModulus) even for math.MinInt64, whose
// negation is itself.
func Do[T any](items []T, seed int64) {
	seed %= lcgModulus
	if seed < 0 {
		seed += lcgModulus
	}
	g := lcg{seed: seed}
	for i := len(items) - 1; i > 0; i-- {
		j := int(g.next() * float64(i+1))
		items[i], items[j] = items[j], items[i]
	}
}

// Page slices an already-shuffled list by page number (1-based) and
// page size, clamping to the list bounds.
func Page[T any](items []T, page, size int) []T {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
