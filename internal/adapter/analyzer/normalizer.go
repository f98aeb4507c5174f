package analyzer

import (
	"regexp"
	"strings"
	"unicode"

	"ipsum/internal/domain"
)

// Normalizer cleans raw prose into a flat token sequence fit for
// frequency counting. Encyclopedia extracts carry markup remnants,
// citation artifacts and sentence-position capitalization that would
// otherwise pollute the vocabulary.
type Normalizer struct {
	minTokens int
}

// NewNormalizer creates a Normalizer that requires at least minTokens
// tokens in its output.
func NewNormalizer(minTokens int) *Normalizer {
	return &Normalizer{minTokens: minTokens}
}

var (
	noiseChars  = regexp.MustCompile(`[()\[\]{}<>–—;?!"]`)
	ellipsisRun = regexp.MustCompile(`\.{2,}|…`)
	lineBreaks  = regexp.MustCompile(`[\r\n]+`)
	initialPat  = regexp.MustCompile(`^[A-Za-z]\.$`)
)

// Normalize runs the cleaning pipeline over raw text and returns the
// resulting tokens. It fails with NotEnoughTokensError when fewer than
// the required minimum survive.
func (n *Normalizer) Normalize(raw string) ([]string, error) {
	text := noiseChars.ReplaceAllString(raw, " ")
	text = ellipsisRun.ReplaceAllString(text, " ")
	text = lineBreaks.ReplaceAllString(text, " ")

	tokens := strings.Fields(text)
	tokens = joinInitialRuns(tokens)
	tokens = dropStopwords(tokens)
	tokens = resolveSeparators(tokens)
	repairSentenceStarts(tokens)
	tokens = resolveDots(tokens)
	tokens = dropNonAlphanumeric(tokens)

	if len(tokens) < n.minTokens {
		return nil, &domain.NotEnoughTokensError{Required: n.minTokens, Actual: len(tokens)}
	}
	return tokens, nil
}

// joinInitialRuns collapses runs of two or more single-letter initials
// ("J. R. R.") into one token ("J.R.R.") so they survive as a name
// fragment instead of three noise tokens.
func joinInitialRuns(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		j := i
		for j < len(tokens) && initialPat.MatchString(tokens[j]) {
			j++
		}
		if j-i >= 2 {
			out = append(out, strings.Join(tokens[i:j], ""))
			i = j
			continue
		}
		out = append(out, tokens[i])
		i++
	}
	return out
}

func dropStopwords(tokens []string) []string {
	out := tokens[:0]
	for _, tok := range tokens {
		if IsStopword(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// resolveSeparators keeps a comma or colon only when both neighbor
// characters are digits (3,500 or 12:30); anywhere else the mark is a
// clause separator and becomes a token break.
func resolveSeparators(tokens []string) []string {
	var out []string
	for _, tok := range tokens {
		runes := []rune(tok)
		var b strings.Builder
		for i, r := range runes {
			if r != ',' && r != ':' {
				b.WriteRune(r)
				continue
			}
			if i > 0 && i < len(runes)-1 && unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
				b.WriteRune(r)
				continue
			}
			b.WriteRune(' ')
		}
		out = append(out, strings.Fields(b.String())...)
	}
	return out
}

// repairSentenceStarts lowercases words whose capital letter is an
// artifact of sentence position, in place.
func repairSentenceStarts(tokens []string) {
	for i, tok := range tokens {
		if !sentenceInitial(tokens, i) {
			continue
		}
		tokens[i] = repairCase(tok, tokens, i)
	}
}

// sentenceInitial reports whether tokens[i] directly follows the start
// of text or a sentence-ending period.
func sentenceInitial(tokens []string, i int) bool {
	return i == 0 || strings.HasSuffix(tokens[i-1], ".")
}

// repairCase decides whether a capitalized word at a sentence boundary
// is capitalized only because of its position. The word is rewritten to
// lowercase when its lowercase form is attested elsewhere in the text
// and its capitalized form never occurs mid-sentence.
func repairCase(tok string, tokens []string, self int) string {
	runes := []rune(tok)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return tok
	}
	if isAllCaps(tok) {
		return tok
	}

	lower := strings.ToLower(tok)
	lowerAttested := false
	capitalMidSentence := false

	for j, other := range tokens {
		if j == self {
			continue
		}
		bare := strings.Trim(other, ".")
		if bare == lower {
			lowerAttested = true
		}
		if bare == tok && !sentenceInitial(tokens, j) {
			capitalMidSentence = true
		}
	}

	if lowerAttested && !capitalMidSentence {
		return lower
	}
	return tok
}

// isAllCaps reports whether every letter in tok is uppercase and tok
// contains at least one letter (acronyms like NASA or U.S.).
func isAllCaps(tok string) bool {
	hasLetter := false
	for _, r := range tok {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

// resolveDots disambiguates the remaining period characters: numeric
// formatting, footnote-marker artifacts, citation joins like
// "battle.It", and genuine abbreviations.
func resolveDots(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i, tok := range tokens {
		if !strings.Contains(tok, ".") {
			out = append(out, tok)
			continue
		}

		switch {
		case strings.Trim(tok, ".") == "":
			// dots only, markup leftover

		case isNumericToken(tok):
			// trailing dot is a sentence period, interior dots are
			// formatting (1.5, 3.500)
			out = append(out, strings.TrimSuffix(tok, "."))

		case strings.Count(tok, ".") == 1 && strings.HasPrefix(tok, "."):
			if word, ok := resolveLeadingDot(tok, tokens, i); ok {
				out = append(out, word)
			}

		case strings.Count(tok, ".") == 1 && strings.HasSuffix(tok, "."):
			if word, ok := resolveTrailingDot(tok, tokens); ok {
				out = append(out, word)
			}

		case splitIndex(tok) >= 0:
			out = append(out, splitCitationJoin(tok, tokens, i)...)

		default:
			// multi-dot or uppercase-adjacent forms (U.S., Ph.D.) are
			// legitimate abbreviations
			out = append(out, tok)
		}
	}
	return out
}

// resolveLeadingDot handles ".word" footnote artifacts. The dot is kept
// only when the bare form is attested more than once elsewhere;
// stopword remains are dropped entirely.
func resolveLeadingDot(tok string, tokens []string, self int) (string, bool) {
	bare := strings.TrimPrefix(tok, ".")
	if IsStopword(bare) {
		return "", false
	}
	if countBare(bare, tokens, self) > 1 {
		return tok, true
	}
	return repairCase(bare, tokens, self), true
}

// resolveTrailingDot handles "word." forms: the dot survives only when
// the dotted form is attested more than once and strictly outnumbers
// the bare form, which marks a real abbreviation rather than a
// sentence-ending period.
func resolveTrailingDot(tok string, tokens []string) (string, bool) {
	bare := strings.TrimSuffix(tok, ".")
	if IsStopword(bare) {
		return "", false
	}
	withDot := 0
	noDot := 0
	for _, other := range tokens {
		switch other {
		case tok:
			withDot++
		case bare:
			noDot++
		}
	}
	if withDot > 1 && withDot > noDot {
		return tok, true
	}
	return bare, true
}

// splitIndex returns the index of the single interior dot in a
// "word.Word" citation join, or -1 when tok does not match the pattern.
func splitIndex(tok string) int {
	if strings.Count(tok, ".") != 1 {
		return -1
	}
	runes := []rune(tok)
	for i := 1; i < len(runes)-1; i++ {
		if runes[i] != '.' {
			continue
		}
		before := runes[i-1]
		after := runes[i+1]
		beforeOK := unicode.IsLower(before) || unicode.IsDigit(before)
		afterOK := unicode.IsUpper(after) || unicode.IsDigit(after)
		if beforeOK && afterOK {
			return i
		}
		return -1
	}
	return -1
}

// splitCitationJoin splits "battle.It" into its two words, keeping only
// non-stopword sides and repairing the case of the second (it sits
// right after a sentence boundary).
func splitCitationJoin(tok string, tokens []string, self int) []string {
	runes := []rune(tok)
	at := splitIndex(tok)
	left := string(runes[:at])
	right := string(runes[at+1:])

	leftStop := IsStopword(left)
	rightStop := IsStopword(right)

	switch {
	case leftStop && rightStop:
		return nil
	case leftStop:
		return []string{repairCase(right, tokens, self)}
	case rightStop:
		return []string{left}
	default:
		return []string{left, repairCase(right, tokens, self)}
	}
}

// countBare counts tokens other than tokens[self] whose dot-trimmed
// form equals bare.
func countBare(bare string, tokens []string, self int) int {
	n := 0
	for j, other := range tokens {
		if j == self {
			continue
		}
		if strings.Trim(other, ".") == bare {
			n++
		}
	}
	return n
}

// isNumericToken reports whether tok is numeric with formatting
// punctuation only (1,500 or 12:30 or $4.99) and at least one digit.
func isNumericToken(tok string) bool {
	hasDigit := false
	for _, r := range tok {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(".,:%$", r):
		default:
			return false
		}
	}
	return hasDigit
}

func dropNonAlphanumeric(tokens []string) []string {
	out := tokens[:0]
	for _, tok := range tokens {
		if hasAlphanumeric(tok) {
			out = append(out, tok)
		}
	}
	return out
}

func hasAlphanumeric(tok string) bool {
	for _, r := range tok {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
