package dice

// Bernoulli returns true with probability p.
//
// Precondition: 0 <= p <= 1. Callers validate probabilities read from content.
func Bernoulli(src Source, p float64) bool {
	return src.Float64() < p
}

// Range returns a uniformly distributed int in [lo, hi].
//
// Precondition: lo <= hi.
func Range(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}

// WeightedIndex returns an index chosen with probability proportional to its weight.
// Non-positive weights are never chosen.
//
// Postcondition: Returns -1 when no weight is positive, else an index into weights.
func WeightedIndex(src Source, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	roll := src.Float64() * total
	cumulative := 0.0
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		last = i
		if roll < cumulative {
			return i
		}
	}
	return last
}
