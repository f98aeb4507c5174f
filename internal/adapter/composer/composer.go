// Package composer assembles sentences and paragraphs from a frequency
// model under word-placement rules.
package composer

import (
	"strings"
	"unicode"

	"ipsum/internal/adapter/analyzer"
	"ipsum/internal/adapter/sampler"
	"ipsum/internal/domain"
	"ipsum/internal/port"
)

// Mid-sentence punctuation is only considered for sentences longer
// than this, and lands strictly between the 4th word and the 4th word
// from the end.
const (
	midPunctMinLen = 8
	midPunctMargin = 4
	midPunctChance = 0.8
)

// A draw source is abandoned after this many consecutive rejections; a
// small vocabulary may not be able to satisfy the placement rules.
const maxDraws = 64

// Composer produces punctuated, capitalized sentences from a
// vocabulary model and a length plan.
type Composer struct {
	vocab  *sampler.Weighted
	filler *sampler.Weighted
	ending *sampler.Weighted
	middle *sampler.Weighted
	rnd    port.Rand
}

// New wires a Composer over the given vocabulary model.
func New(model domain.FreqModel, rnd port.Rand) *Composer {
	return &Composer{
		vocab:  sampler.New(model, rnd),
		filler: sampler.New(analyzer.FillerModel(), rnd),
		ending: sampler.New(analyzer.SentenceEndModel(), rnd),
		middle: sampler.New(analyzer.MidSentenceModel(), rnd),
		rnd:    rnd,
	}
}

// Compose renders the plan into paragraphs of finished sentences.
func (c *Composer) Compose(plan domain.LengthPlan) [][]string {
	paragraphs := make([][]string, 0, len(plan))
	for _, lengths := range plan {
		sentences := make([]string, 0, len(lengths))
		for _, n := range lengths {
			sentences = append(sentences, c.Sentence(n))
		}
		paragraphs = append(paragraphs, sentences)
	}
	return paragraphs
}

// Render flattens composed paragraphs into the requested format:
// newline-joined plain text, or <p>-wrapped HTML with no separator.
func Render(paragraphs [][]string, format domain.Format) string {
	joined := make([]string, len(paragraphs))
	for i, sentences := range paragraphs {
		joined[i] = strings.Join(sentences, " ")
	}
	if format == domain.FormatHTML {
		var b strings.Builder
		for _, p := range joined {
			b.WriteString("<p>")
			b.WriteString(p)
			b.WriteString("</p>")
		}
		return b.String()
	}
	return strings.Join(joined, "\n")
}

// Sentence assembles one sentence of n words, then capitalizes and
// punctuates it. Non-positive lengths yield an empty sentence.
func (c *Composer) Sentence(n int) string {
	if n <= 0 {
		return ""
	}
	words := make([]string, 0, n)
	for len(words) < n {
		words = append(words, c.nextWord(words, n))
	}

	capitalize(words)
	c.punctuateEnd(words)
	if n > midPunctMinLen && c.rnd.Float64() < midPunctChance {
		c.punctuateMiddle(words)
	}
	return strings.Join(words, " ")
}

// nextWord picks the source for the next draw, then rejection-samples
// until a word satisfies the placement rules. The sampling is bounded:
// an exhausted source is swapped for the other one, and when both run
// out the last draw stands even if it repeats a word.
func (c *Composer) nextWord(words []string, target int) string {
	src := c.pickSource(words, target)
	other := c.filler
	if src == c.filler {
		other = c.vocab
	}

	var word string
	for attempts := 0; attempts < 2*maxDraws; attempts++ {
		word = src.Draw()
		if c.accept(word, words, target) {
			return word
		}
		if attempts == maxDraws {
			src = other
		}
	}
	return word
}

// pickSource chooses between the vocabulary and filler samplers based
// on the tail of the sentence so far.
func (c *Composer) pickSource(words []string, target int) *sampler.Weighted {
	n := len(words)
	last := n >= target-1

	lastTwoFiller := n >= 2 && isFiller(words[n-1]) && isFiller(words[n-2])
	if last || lastTwoFiller {
		return c.vocab
	}

	lastThreeContent := n >= 3 && !isFiller(words[n-1]) && !isFiller(words[n-2]) && !isFiller(words[n-3])
	twoLeftAfterContent := target-n == 2 && n >= 2 && !isFiller(words[n-1]) && !isFiller(words[n-2])
	if lastThreeContent || twoLeftAfterContent {
		return c.filler
	}

	if c.rnd.Float64() < 2.0/3.0 {
		return c.vocab
	}
	return c.filler
}

// accept applies the rejection rules: no case-insensitive repeats, and
// at most one numeric token which may be neither the first nor the
// last word.
func (c *Composer) accept(word string, words []string, target int) bool {
	if word == "" {
		return false
	}
	for _, w := range words {
		if strings.EqualFold(w, word) {
			return false
		}
	}
	if isNumeric(word) {
		if len(words) == 0 || len(words) == target-1 {
			return false
		}
		for _, w := range words {
			if isNumeric(w) {
				return false
			}
		}
	}
	return true
}

func capitalize(words []string) {
	if len(words) == 0 {
		return
	}
	runes := []rune(words[0])
	runes[0] = unicode.ToUpper(runes[0])
	words[0] = string(runes)
}

// punctuateEnd appends sentence-ending punctuation unless the last word
// already carries a preserved numeric period.
func (c *Composer) punctuateEnd(words []string) {
	last := words[len(words)-1]
	if strings.HasSuffix(last, ".") {
		return
	}
	words[len(words)-1] = last + c.ending.Draw()
}

// enclosing maps two-sided marks to their opening and closing halves.
var enclosing = map[string][2]string{
	"\"\"": {"\"", "\""},
	"()":   {"(", ")"},
	"[]":   {"[", "]"},
	"— —":  {"— ", " —"},
}

// punctuateMiddle inserts one mid-sentence mark inside the eligible
// window. When no position satisfies the adjacency rules the sentence
// is left untouched; punctuation here is best effort.
func (c *Composer) punctuateMiddle(words []string) {
	mark := c.middle.Draw()
	lo := midPunctMargin
	hi := len(words) - midPunctMargin - 1

	if pair, ok := enclosing[mark]; ok {
		c.encloseSpan(words, pair, lo, hi)
		return
	}

	// simple marks attach to a word whose neighborhood is free of
	// filler and numeric tokens
	var candidates []int
	for i := lo; i <= hi && i+1 < len(words); i++ {
		if eligibleSimple(words[i]) && eligibleSimple(words[i+1]) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return
	}
	at := candidates[c.rnd.Intn(len(candidates))]
	words[at] += mark
}

// encloseSpan wraps the first eligible span inside [lo, hi] with the
// given opening and closing halves. Start positions scan forward, end
// positions scan backward; if either search fails the mark is skipped.
func (c *Composer) encloseSpan(words []string, pair [2]string, lo, hi int) {
	start := -1
	for i := lo; i <= hi; i++ {
		if i > 0 && !isFiller(words[i-1]) && !isFiller(words[i]) {
			start = i
			break
		}
	}
	if start < 0 {
		return
	}
	end := -1
	for j := hi; j >= start; j-- {
		if j+1 < len(words) && !isFiller(words[j]) && !isFiller(words[j+1]) {
			end = j
			break
		}
	}
	if end < 0 {
		return
	}
	words[start] = pair[0] + words[start]
	words[end] = words[end] + pair[1]
}

func eligibleSimple(word string) bool {
	return !isFiller(word) && !isNumeric(word)
}

func isFiller(word string) bool {
	return analyzer.IsStopword(strings.Trim(word, ".,;:!?()[]\"— "))
}

// isNumeric reports a numeric-looking token: at least one digit, and
// nothing besides digits and numeric formatting punctuation.
func isNumeric(word string) bool {
	hasDigit := false
	for _, r := range word {
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
