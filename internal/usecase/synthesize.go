package usecase

import (
	"context"
	"strings"

	"ipsum/internal/adapter/analyzer"
	"ipsum/internal/adapter/composer"
	"ipsum/internal/adapter/planner"
	"ipsum/internal/adapter/vocab"
	"ipsum/internal/domain"
	"ipsum/internal/port"
)

// Request is one synthesis invocation. Exactly one of the four input
// shapes must be supplied, checked in order: Query, Title+Body,
// Title+Words, Title+Model. Later shapes skip the earlier pipeline
// stages.
type Request struct {
	Query string
	Title string
	Body  string
	Words []string
	Model domain.FreqModel

	Options domain.Options

	// IncludeTitle and IncludeModel select the optional result fields.
	IncludeTitle bool
	IncludeModel bool
}

// Limits are the minimum-size thresholds applied along the pipeline.
type Limits struct {
	// BodyWords is the minimum word count of a supplied body.
	BodyWords int
	// Tokens is the minimum token count after normalization.
	Tokens int
	// Vocabulary is the minimum word count of the frequency model.
	Vocabulary int
}

// Synthesizer runs the fetch -> normalize -> model -> plan-and-compose
// pipeline. Each call draws a fresh randomness source from newRand, so
// one Synthesizer may serve concurrent requests.
type Synthesizer struct {
	source  port.ArticleSource
	newRand func() port.Rand
	limits  Limits
}

// NewSynthesizer wires the pipeline. source may be nil when only the
// fetch-free input shapes are used.
func NewSynthesizer(source port.ArticleSource, newRand func() port.Rand, limits Limits) *Synthesizer {
	return &Synthesizer{source: source, newRand: newRand, limits: limits}
}

// Synthesize validates the request, runs whichever pipeline stages the
// input shape still requires, and composes the output text. Validation
// runs eagerly; no generation work starts on an invalid request.
func (s *Synthesizer) Synthesize(ctx context.Context, req Request) (*domain.Result, error) {
	if err := ValidateOptions(req.Options); err != nil {
		return nil, err
	}

	title := req.Title
	body := req.Body
	words := req.Words
	model := req.Model

	// stage 1: fetch
	if model == nil && words == nil && body == "" {
		query := strings.TrimSpace(req.Query)
		if query == "" {
			if req.Query != "" {
				return nil, domain.ErrEmptyQuery
			}
			return nil, domain.ErrNoInput
		}
		article, err := s.source.Fetch(ctx, query)
		if err != nil {
			return nil, err
		}
		title = article.Title
		body = article.Body
	}

	// stage 2: normalize
	if model == nil && words == nil {
		if n := len(strings.Fields(body)); n < s.limits.BodyWords {
			return nil, &domain.BodyTooShortError{Required: s.limits.BodyWords, Actual: n}
		}
		normalizer := analyzer.NewNormalizer(s.limits.Tokens)
		var err error
		words, err = normalizer.Normalize(body)
		if err != nil {
			return nil, err
		}
	}

	// stage 3: build the frequency model, emphasizing title words; a
	// supplied model is held to the same vocabulary minimum
	if model == nil {
		var err error
		model, err = vocab.Build(words, vocab.BuildOptions{
			Emphasize: strings.Fields(title),
			MinTotal:  s.limits.Vocabulary,
		})
		if err != nil {
			return nil, err
		}
	} else if total := model.TotalWords(); total < s.limits.Vocabulary {
		return nil, &domain.NotEnoughVocabularyError{Required: s.limits.Vocabulary, Actual: total}
	}

	// stage 4: plan and compose
	rnd := s.newRand()
	plan, err := planner.New(rnd).Distribute(
		req.Options.Quantity, req.Options.Unit,
		req.Options.SentencesPerParagraph, req.Options.WordsPerSentence)
	if err != nil {
		return nil, err
	}

	paragraphs := composer.New(model, rnd).Compose(plan)

	result := &domain.Result{
		Body:       composer.Render(paragraphs, req.Options.Format),
		Paragraphs: paragraphs,
	}
	if req.IncludeTitle {
		result.Title = title
	}
	if req.IncludeModel {
		result.Model = model
	}
	return result, nil
}
