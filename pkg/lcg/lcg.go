package lcg

// Numerical Recipes parameters, modulus 2^32 via uint32 overflow.
const (
	multiplier uint32 = 1664525
	increment  uint32 = 1013904223
	modulus           = 4294967296.0
)

// LCG is a linear-congruential generator. Two generators built from the same
// seed produce identical sequences.
//
// Not safe for concurrent use.
type LCG struct {
	state uint32
}

// New creates a generator from a 32-bit seed.
func New(seed uint32) *LCG {
	return &LCG{state: seed}
}

// FromInt64 truncates seed to its low 32 bits, matching unsigned wraparound
// for negative seeds.
func FromInt64(seed int64) *LCG {
	return New(uint32(seed))
}

// Next advances the state and returns a float in [0, 1).
func (g *LCG) Next() float64 {
	g.state = multiplier*g.state + increment
	return float64(g.state) / modulus
}

// NextInt returns an integer in [0, max).
func (g *LCG) NextInt(max int) int {
	return int(g.Next() * float64(max))
}

// Pick returns a uniformly chosen element. Panics on an empty slice.
func Pick[T any](g *LCG, items []T) T {
	if len(items) == 0 {
		panic("lcg: pick from empty slice")
	}
	return items[g.NextInt(len(items))]
}

// WeightedPick draws once and walks the cumulative weights, returning the
// first item whose cumulative weight exceeds the draw. If rounding leaves the
// total short of the draw the last item is returned.
//
// Panics when items is empty or the slices differ in length.
func WeightedPick[T any](g *LCG, items []T, weights []float64) T {
	if len(items) == 0 {
		panic("lcg: weighted pick from empty slice")
	}
	if len(items) != len(weights) {
		panic("lcg: items and weights length mismatch")
	}

	r := g.Next()
	cumulative := 0.0
	for i, item := range items {
		cumulative += weights[i]
		if r < cumulative {
			return item
		}
	}
	return items[len(items)-1]
}
