package domain

// Unit selects how a requested quantity is interpreted.
type Unit string

const (
	UnitWords      Unit = "words"
	UnitParagraphs Unit = "paragraphs"
)

// Format selects the rendering of the generated body.
type Format string

const (
	FormatPlain Format = "plain"
	FormatHTML  Format = "html"
)

// Article is a fetched or supplied source text.
type Article struct {
	Title string
	Body  string
}

// FreqModel maps an occurrence weight to the tier of words sharing it.
// Every word appears in exactly one tier; tiers are never empty and
// weights are always >= 1.
type FreqModel map[int][]string

// TotalWords returns the number of words across all tiers.
func (m FreqModel) TotalWords() int {
	n := 0
	for _, tier := range m {
		n += len(tier)
	}
	return n
}

// Bounds is an inclusive integer range.
type Bounds struct {
	Min int
	Max int
}

// Options are the validated generation parameters.
type Options struct {
	Unit                  Unit
	Quantity              int
	Format                Format
	SentencesPerParagraph Bounds
	WordsPerSentence      Bounds
}

// LengthPlan is the decomposition of a requested quantity into
// paragraphs of intended sentence word counts.
type LengthPlan [][]int

// TotalWords returns the sum of every sentence length in the plan.
func (p LengthPlan) TotalWords() int {
	n := 0
	for _, paragraph := range p {
		for _, sentence := range paragraph {
			n += sentence
		}
	}
	return n
}

// Result is the output of one synthesis call. Title and Model are
// populated only when the caller asked for them.
type Result struct {
	Body       string
	Paragraphs [][]string
	Title      string
	Model      FreqModel
}
