package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ipsum/internal/adapter/sampler"
	"ipsum/internal/domain"
	"ipsum/internal/port"
)

const sourceText = `The siege lasted through winter. Cavalry patrols scouted ridgelines daily
while garrison troops repaired ramparts. Supply columns crossed frozen rivers
carrying grain toward beleaguered defenders. Commanders exchanged envoys
seeking armistice terms. Blockade runners slipped past watchtowers nightly.
Regiments mustered reserves behind earthworks. Artillery batteries pounded
fortress walls relentlessly. Winter campaigns exhausted both armies equally.
Frontier provinces supplied fresh recruits steadily. Imperial heralds
proclaimed victories prematurely. Veteran infantry held vanguard positions.
Siege engines breached outer defenses eventually. Treaty negotiations began
once spring thawed mountain passes completely.`

type fakeSource struct {
	article domain.Article
	err     error
	calls   int
}

func (f *fakeSource) Fetch(ctx context.Context, query string) (domain.Article, error) {
	f.calls++
	if f.err != nil {
		return domain.Article{}, f.err
	}
	return f.article, nil
}

func newTestSynthesizer(source port.ArticleSource) *Synthesizer {
	seed := int64(0)
	newRand := func() port.Rand {
		seed++
		return sampler.NewSeededRand(seed)
	}
	return NewSynthesizer(source, newRand, Limits{BodyWords: 20, Tokens: 15, Vocabulary: 10})
}

func testRequest() Request {
	return Request{
		Options: domain.Options{
			Unit:                  domain.UnitParagraphs,
			Quantity:              2,
			Format:                domain.FormatPlain,
			SentencesPerParagraph: domain.Bounds{Min: 3, Max: 5},
			WordsPerSentence:      domain.Bounds{Min: 5, Max: 9},
		},
	}
}

func TestSynthesizeFromQuery(t *testing.T) {
	source := &fakeSource{article: domain.Article{Title: "Siege", Body: sourceText}}

	req := testRequest()
	req.Query = "Siege"
	req.IncludeTitle = true
	req.IncludeModel = true

	result, err := newTestSynthesizer(source).Synthesize(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if source.calls != 1 {
		t.Errorf("source called %d times, want 1", source.calls)
	}
	if result.Title != "Siege" {
		t.Errorf("Title = %q, want Siege", result.Title)
	}
	if result.Model == nil {
		t.Error("Model not included")
	}
	if len(result.Paragraphs) != 2 {
		t.Errorf("%d paragraphs, want 2", len(result.Paragraphs))
	}
	if strings.Count(result.Body, "\n") != 1 {
		t.Errorf("plain body should join 2 paragraphs with one newline: %q", result.Body)
	}
}

func TestSynthesizeFromBodySkipsFetch(t *testing.T) {
	source := &fakeSource{}

	req := testRequest()
	req.Title = "Winter War"
	req.Body = sourceText

	result, err := newTestSynthesizer(source).Synthesize(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if source.calls != 0 {
		t.Errorf("source called %d times, want 0", source.calls)
	}
	if result.Body == "" {
		t.Error("empty body")
	}
	if result.Title != "" {
		t.Error("Title included without IncludeTitle")
	}
}

func TestSynthesizeFromWordsSkipsNormalization(t *testing.T) {
	words := strings.Fields("siege cavalry garrison rampart envoy armistice blockade regiment artillery fortress frontier province recruit herald infantry vanguard treaty column river grain")

	req := testRequest()
	req.Title = "Siege"
	req.Words = words

	result, err := newTestSynthesizer(&fakeSource{}).Synthesize(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if result.Body == "" {
		t.Error("empty body")
	}
}

func TestSynthesizeFromModelSkipsEverything(t *testing.T) {
	model := domain.FreqModel{
		3: {"siege", "cavalry", "garrison"},
		1: {"rampart", "envoy", "armistice", "blockade", "regiment", "artillery", "fortress"},
	}

	req := testRequest()
	req.Title = "Siege"
	req.Model = model
	req.IncludeModel = true

	result, err := newTestSynthesizer(&fakeSource{}).Synthesize(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if result.Model.TotalWords() != model.TotalWords() {
		t.Error("model not passed through")
	}
}

func TestSynthesizeSuppliedModelTooSmall(t *testing.T) {
	req := testRequest()
	req.Title = "Siege"
	req.Model = domain.FreqModel{1: {"siege", "cavalry", "garrison"}}

	_, err := newTestSynthesizer(&fakeSource{}).Synthesize(context.Background(), req)
	var fewWords *domain.NotEnoughVocabularyError
	if !errors.As(err, &fewWords) {
		t.Fatalf("expected NotEnoughVocabularyError, got %v", err)
	}
	if fewWords.Required != 10 || fewWords.Actual != 3 {
		t.Errorf("Required/Actual = %d/%d, want 10/3", fewWords.Required, fewWords.Actual)
	}
}

func TestSynthesizeModelRoundTrip(t *testing.T) {
	source := &fakeSource{article: domain.Article{Title: "Siege", Body: sourceText}}

	first := testRequest()
	first.Query = "Siege"
	first.IncludeModel = true

	synth := newTestSynthesizer(source)
	seeded, err := synth.Synthesize(context.Background(), first)
	if err != nil {
		t.Fatal(err)
	}

	second := testRequest()
	second.Title = "Siege"
	second.Model = seeded.Model

	again, err := synth.Synthesize(context.Background(), second)
	if err != nil {
		t.Fatal(err)
	}
	if len(again.Paragraphs) != 2 {
		t.Errorf("%d paragraphs, want 2", len(again.Paragraphs))
	}
}

func TestSynthesizeEmptyRequest(t *testing.T) {
	_, err := newTestSynthesizer(&fakeSource{}).Synthesize(context.Background(), testRequest())
	if !errors.Is(err, domain.ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
}

func TestSynthesizeBlankQuery(t *testing.T) {
	req := testRequest()
	req.Query = "   "
	_, err := newTestSynthesizer(&fakeSource{}).Synthesize(context.Background(), req)
	if !errors.Is(err, domain.ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestSynthesizeBodyTooShort(t *testing.T) {
	req := testRequest()
	req.Body = "barely any words here"

	_, err := newTestSynthesizer(&fakeSource{}).Synthesize(context.Background(), req)
	var tooShort *domain.BodyTooShortError
	if !errors.As(err, &tooShort) {
		t.Fatalf("expected BodyTooShortError, got %v", err)
	}
}

func TestSynthesizeInvalidOptionsBeforeFetch(t *testing.T) {
	source := &fakeSource{article: domain.Article{Title: "Siege", Body: sourceText}}

	req := testRequest()
	req.Query = "Siege"
	req.Options.Quantity = -1

	_, err := newTestSynthesizer(source).Synthesize(context.Background(), req)
	var invalid *domain.InvalidOptionsError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidOptionsError, got %v", err)
	}
	if source.calls != 0 {
		t.Errorf("fetch ran before validation: %d calls", source.calls)
	}
}

func TestSynthesizeSourceErrorsPassThrough(t *testing.T) {
	wantErr := &domain.AmbiguousError{Query: "Mercury", Suggestions: []string{"Mercury (planet)", "Mercury (element)"}}
	source := &fakeSource{err: wantErr}

	req := testRequest()
	req.Query = "Mercury"

	_, err := newTestSynthesizer(source).Synthesize(context.Background(), req)
	var ambiguous *domain.AmbiguousError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected AmbiguousError, got %v", err)
	}
	if len(ambiguous.Suggestions) != 2 {
		t.Errorf("suggestions lost: %v", ambiguous.Suggestions)
	}
}
