// Package shuffle produces randomized presentation orders for item tokens.
package shuffle

import "math/rand/v2"

// Shuffler returns uniform random permutations using Fisher-Yates.
type Shuffler struct {
	intN func(n int) int
}

// New returns a Shuffler drawing from the process-wide random source.
func New() *Shuffler {
	return &Shuffler{intN: rand.IntN}
}

// NewSeeded returns a deterministic Shuffler. Two Shufflers built from the
// same seed produce the same sequence of permutations.
func NewSeeded(seed uint64) *Shuffler {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return &Shuffler{intN: r.IntN}
}

// Shuffle returns a new slice holding a permutation of tokens.
// The input slice is not modified.
func (s *Shuffler) Shuffle(tokens []string) []string {
	out := make([]string, len(tokens))
	copy(out, tokens)

	for i := len(out) - 1; i > 0; i-- {
		j := s.intN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
