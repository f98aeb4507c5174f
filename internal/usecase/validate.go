package usecase

import (
	"fmt"

	"ipsum/internal/domain"
)

// ValidateOptions checks every structural rule and reports all failures
// together, so a caller fixing its request sees the full list at once.
func ValidateOptions(opts domain.Options) error {
	var errs []domain.OptionError

	switch opts.Unit {
	case domain.UnitWords, domain.UnitParagraphs:
	default:
		errs = append(errs, domain.OptionError{
			Field:  "unit",
			Reason: fmt.Sprintf("must be %q or %q, got %q", domain.UnitWords, domain.UnitParagraphs, opts.Unit),
		})
	}

	if opts.Quantity <= 0 {
		errs = append(errs, domain.OptionError{
			Field:  "quantity",
			Reason: fmt.Sprintf("must be positive, got %d", opts.Quantity),
		})
	}

	switch opts.Format {
	case domain.FormatPlain, domain.FormatHTML:
	default:
		errs = append(errs, domain.OptionError{
			Field:  "format",
			Reason: fmt.Sprintf("must be %q or %q, got %q", domain.FormatPlain, domain.FormatHTML, opts.Format),
		})
	}

	errs = append(errs, validateBounds("sentencesPerParagraph", opts.SentencesPerParagraph)...)
	errs = append(errs, validateBounds("wordsPerSentence", opts.WordsPerSentence)...)

	if len(errs) > 0 {
		return &domain.InvalidOptionsError{Errors: errs}
	}
	return nil
}

// validateBounds enforces min >= 3, max >= 3 and max >= min*2-1. The
// last rule keeps every intermediate remainder reachable during
// partitioning: with a tighter range some sums cannot be split into
// chunks that all stay within [min, max].
func validateBounds(field string, b domain.Bounds) []domain.OptionError {
	var errs []domain.OptionError
	if b.Min < 3 {
		errs = append(errs, domain.OptionError{
			Field:  field + ".min",
			Reason: fmt.Sprintf("must be at least 3, got %d", b.Min),
		})
	}
	if b.Max < 3 {
		errs = append(errs, domain.OptionError{
			Field:  field + ".max",
			Reason: fmt.Sprintf("must be at least 3, got %d", b.Max),
		})
	}
	if b.Min >= 3 && b.Max >= 3 && b.Max < b.Min*2-1 {
		errs = append(errs, domain.OptionError{
			Field:  field + ".max",
			Reason: fmt.Sprintf("must be at least min*2-1 = %d, got %d", b.Min*2-1, b.Max),
		})
	}
	return errs
}
