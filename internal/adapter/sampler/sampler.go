// Package sampler provides weighted random draws over frequency-tiered
// models.
package sampler

import (
	"math/rand"
	"sort"
	"time"

	"ipsum/internal/domain"
	"ipsum/internal/port"
)

// Weighted draws words from a FreqModel with replacement. A tier is
// picked with probability proportional to its weight; the word is then
// uniform among the tier's members.
type Weighted struct {
	tiers []tier
	total int
	rnd   port.Rand
}

type tier struct {
	bound int // cumulative weight boundary, inclusive
	words []string
}

// New precomputes cumulative weight boundaries over the model's tiers
// ordered by ascending weight.
func New(model domain.FreqModel, rnd port.Rand) *Weighted {
	weights := make([]int, 0, len(model))
	for w := range model {
		weights = append(weights, w)
	}
	sort.Ints(weights)

	s := &Weighted{rnd: rnd}
	for _, w := range weights {
		s.total += w
		s.tiers = append(s.tiers, tier{bound: s.total, words: model[w]})
	}
	return s
}

// Draw returns one word. It returns "" only for an empty model.
func (s *Weighted) Draw() string {
	if s.total == 0 {
		return ""
	}
	point := s.rnd.Intn(s.total) + 1
	idx := sort.Search(len(s.tiers), func(i int) bool {
		return s.tiers[i].bound >= point
	})
	words := s.tiers[idx].words
	return words[s.rnd.Intn(len(words))]
}

// NewRand returns a time-seeded randomness source.
func NewRand() port.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// NewSeededRand returns a deterministic randomness source for tests.
func NewSeededRand(seed int64) port.Rand {
	return rand.New(rand.NewSource(seed))
}
