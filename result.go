package hamtrie

// Result is a single search match.
type Result[V any] struct {
	// Value is the item that was inserted with the matching hash.
	Value V

	// Distance is the exact Hamming distance between the query hash and
	// the stored hash, counted over the full declared bit resolution.
	Distance int

	// NormalizedDistance is Distance divided by the bit resolution, a
	// value in [0, 1] that stays comparable across hash widths.
	NormalizedDistance float64
}
