package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoInput is returned when a request matches none of the accepted
// input shapes (query, title+body, title+words, title+model).
var ErrNoInput = errors.New("no usable input: need a query, a body, a word list or a frequency model")

// ErrEmptyQuery is returned for a query consisting only of whitespace.
var ErrEmptyQuery = errors.New("query must not be empty")

// NotFoundError reports that no article matched the query.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no article found for %q", e.Query)
}

// AmbiguousError reports that the query resolved to a disambiguation
// page rather than an article.
type AmbiguousError struct {
	Query       string
	Suggestions []string
}

func (e *AmbiguousError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("%q is ambiguous", e.Query)
	}
	return fmt.Sprintf("%q is ambiguous, did you mean: %s", e.Query, strings.Join(e.Suggestions, ", "))
}

// BodyTooShortError reports a supplied source text below the minimum
// word count.
type BodyTooShortError struct {
	Required int
	Actual   int
}

func (e *BodyTooShortError) Error() string {
	return fmt.Sprintf("source text too short: %d words, need at least %d", e.Actual, e.Required)
}

// NotEnoughTokensError reports that normalization produced too few
// usable tokens.
type NotEnoughTokensError struct {
	Required int
	Actual   int
}

func (e *NotEnoughTokensError) Error() string {
	return fmt.Sprintf("normalized text yields %d tokens, need at least %d", e.Actual, e.Required)
}

// NotEnoughVocabularyError reports that the frequency model holds too
// few weighted words to compose sentences from.
type NotEnoughVocabularyError struct {
	Required int
	Actual   int
}

func (e *NotEnoughVocabularyError) Error() string {
	return fmt.Sprintf("frequency model holds %d words, need at least %d", e.Actual, e.Required)
}

// OptionError reports a single invalid generation option.
type OptionError struct {
	Field  string
	Reason string
}

func (e OptionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// InvalidOptionsError aggregates every option failure found during
// validation so the caller sees them all at once.
type InvalidOptionsError struct {
	Errors []OptionError
}

func (e *InvalidOptionsError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, oe := range e.Errors {
		msgs[i] = oe.Error()
	}
	return "invalid options: " + strings.Join(msgs, "; ")
}
