// Package planner decomposes a requested output quantity into a
// paragraph-of-sentences length plan.
package planner

import (
	"fmt"

	"ipsum/internal/domain"
	"ipsum/internal/port"
)

// Planner turns a quantity plus length bounds into a LengthPlan.
type Planner struct {
	rnd port.Rand
}

// New creates a Planner using the given randomness source.
func New(rnd port.Rand) *Planner {
	return &Planner{rnd: rnd}
}

// Distribute builds the plan. For unit "words" the flattened sentence
// lengths sum exactly to quantity; for unit "paragraphs" each of the
// quantity paragraphs draws an independent word count within the
// per-paragraph bounds.
func (p *Planner) Distribute(quantity int, unit domain.Unit, sentences, words domain.Bounds) (domain.LengthPlan, error) {
	perParagraph := domain.Bounds{
		Min: sentences.Min * words.Min,
		Max: sentences.Max * words.Max,
	}

	var paragraphWords []int
	switch unit {
	case domain.UnitParagraphs:
		paragraphWords = make([]int, quantity)
		for i := range paragraphWords {
			paragraphWords[i] = perParagraph.Min + p.rnd.Intn(perParagraph.Max-perParagraph.Min+1)
		}
	case domain.UnitWords:
		paragraphWords = p.partition(quantity,
			ceilDiv(quantity, perParagraph.Max), quantity/perParagraph.Min,
			perParagraph.Min, perParagraph.Max)
	default:
		return nil, fmt.Errorf("unknown unit %q", unit)
	}

	plan := make(domain.LengthPlan, 0, len(paragraphWords))
	for _, w := range paragraphWords {
		kMin := max(ceilDiv(w, words.Max), sentences.Min)
		kMax := min(w/words.Min, sentences.Max)
		plan = append(plan, p.partition(w, kMin, kMax, words.Min, words.Max))
	}
	return plan, nil
}

// partition splits sum into a random number of chunks in [kMin, kMax],
// each within [vMin, vMax], summing exactly to sum. At every step the
// current chunk is drawn from the range that keeps the remaining chunks
// feasible: [max(rest-(r-1)*vMax, vMin), min(rest-(r-1)*vMin, vMax)].
func (p *Planner) partition(sum, kMin, kMax, vMin, vMax int) []int {
	// infeasible ranges only occur for quantities below the combined
	// minimums; degrade instead of panicking
	if kMax < kMin {
		kMax = kMin
	}
	k := kMin + p.rnd.Intn(kMax-kMin+1)
	// keep the chunk count value-feasible so the chunks sum exactly to
	// sum; a sum below vMin collapses to a single short chunk
	lo := max(ceilDiv(sum, vMax), 1)
	hi := max(sum/vMin, 1)
	if k < lo {
		k = lo
	}
	if k > hi {
		k = hi
	}

	chunks := make([]int, 0, k)
	rest := sum
	for r := k; r >= 1; r-- {
		if r == 1 {
			chunks = append(chunks, rest)
			break
		}
		lo := max(rest-(r-1)*vMax, vMin)
		hi := min(rest-(r-1)*vMin, vMax)
		if hi < lo {
			hi = lo
		}
		v := lo + p.rnd.Intn(hi-lo+1)
		chunks = append(chunks, v)
		rest -= v
	}
	return chunks
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
