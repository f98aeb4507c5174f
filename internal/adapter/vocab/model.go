// Package vocab builds frequency-tiered vocabulary models from token
// sequences.
package vocab

import (
	"math"

	"ipsum/internal/domain"
)

// BuildOptions shape the resulting model.
type BuildOptions struct {
	// Emphasize lists words whose occurrence count is multiplied by
	// EmphasizeFactor (typically the article title words).
	Emphasize []string
	// EmphasizeFactor defaults to 2 when zero.
	EmphasizeFactor float64
	// MinWeight drops tiers below this weight. Defaults to 1.
	MinWeight int
	// MaxWeight drops tiers above this weight. Zero means unbounded.
	MaxWeight int
	// MergeAbove folds every tier heavier than this weight into the
	// tier at exactly this weight. Zero disables merging.
	MergeAbove int
	// MinTotal is the minimum number of words the model must hold.
	MinTotal int
}

// Build counts token occurrences (case-sensitive, exact match), applies
// emphasis, and groups words into tiers by resulting weight. It fails
// with NotEnoughVocabularyError when the model ends up smaller than
// opts.MinTotal.
func Build(tokens []string, opts BuildOptions) (domain.FreqModel, error) {
	factor := opts.EmphasizeFactor
	if factor == 0 {
		factor = 2
	}
	minWeight := opts.MinWeight
	if minWeight == 0 {
		minWeight = 1
	}

	counts := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}

	for _, word := range opts.Emphasize {
		if c, ok := counts[word]; ok {
			counts[word] = int(math.Round(float64(c) * factor))
		}
	}

	model := make(domain.FreqModel)
	for word, weight := range counts {
		if weight < minWeight {
			continue
		}
		if opts.MaxWeight > 0 && weight > opts.MaxWeight {
			continue
		}
		model[weight] = append(model[weight], word)
	}

	if opts.MergeAbove > 0 {
		for weight, tier := range model {
			if weight > opts.MergeAbove {
				model[opts.MergeAbove] = append(model[opts.MergeAbove], tier...)
				delete(model, weight)
			}
		}
	}

	if total := model.TotalWords(); total < opts.MinTotal {
		return nil, &domain.NotEnoughVocabularyError{Required: opts.MinTotal, Actual: total}
	}
	return model, nil
}
