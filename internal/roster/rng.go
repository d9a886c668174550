package roster

import "math/rand"

// RNG is the engine's sole source of randomness: the tie-break term in
// day-shift scoring (§4.4) and the driver's shuffle (§4.9, §5). A given
// (input, seed) pair must produce a deterministic output, so every path
// that wants randomness goes through this type rather than touching the
// global math/rand source directly.
type RNG struct {
	r *rand.Rand
}

// NewRNG builds a seeded RNG. Seed 0 is a legitimate, deterministic seed,
// not "no seed" — callers that want a different run each time must pick
// their own seed (e.g. from time or a counter) before calling this.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns a float in [0, 1).
func (g *RNG) Float64() float64 {
	return g.r.Float64()
}

// TieBreak returns the [0, 2) scoring term from §4.4's scoring formula.
func (g *RNG) TieBreak() float64 {
	return g.r.Float64() * 2
}

// ShuffleEngineers performs an in-place Fisher-Yates shuffle.
func (g *RNG) ShuffleEngineers(engineers []Engineer) {
	g.r.Shuffle(len(engineers), func(i, j int) {
		engineers[i], engineers[j] = engineers[j], engineers[i]
	})
}
