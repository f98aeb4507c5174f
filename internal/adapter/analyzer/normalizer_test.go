package analyzer

import (
	"errors"
	"strings"
	"testing"

	"ipsum/internal/domain"
)

func normalize(t *testing.T, raw string) []string {
	t.Helper()
	tokens, err := NewNormalizer(0).Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	return tokens
}

func TestNormalizeCitationJoins(t *testing.T) {
	tokens := normalize(t, "The Battle.It began in 1944.The U.S. forces...")

	want := []string{"Battle", "began", "1944", "U.S.", "forces"}
	if strings.Join(tokens, " ") != strings.Join(want, " ") {
		t.Errorf("got %v, want %v", tokens, want)
	}
}

func TestNormalizeCitationJoinBothSidesKept(t *testing.T) {
	tokens := normalize(t, "They reached the border.Germany surrendered soon")

	joined := strings.Join(tokens, " ")
	if !strings.Contains(joined, "border") || !strings.Contains(joined, "Germany") {
		t.Errorf("expected both sides of the join, got %v", tokens)
	}
	for _, tok := range tokens {
		if strings.Contains(tok, ".") {
			t.Errorf("unresolved dot in %q", tok)
		}
	}
}

func TestNormalizeNumericTokens(t *testing.T) {
	tokens := normalize(t, "He spent 3,500 dollars, then left at 12:30 sharp. Price rose 1.5 percent.")

	joined := " " + strings.Join(tokens, " ") + " "
	for _, want := range []string{" 3,500 ", " 12:30 ", " dollars ", " 1.5 ", " percent "} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in %v", strings.TrimSpace(want), tokens)
		}
	}
}

func TestNormalizeSentenceInitialCaseRepair(t *testing.T) {
	tokens := normalize(t, "Rocks fall quickly. Rocks crumble. Heavy rocks endure.")

	for _, tok := range tokens {
		if tok == "Rocks" {
			t.Errorf("sentence-positional capital not repaired: %v", tokens)
		}
	}
	count := 0
	for _, tok := range tokens {
		if tok == "rocks" {
			count++
		}
	}
	if count != 3 {
		t.Errorf("expected 3 occurrences of %q, got %d in %v", "rocks", count, tokens)
	}
}

func TestNormalizeKeepsMidSentenceProperNouns(t *testing.T) {
	// "Paris" occurs mid-sentence capitalized, so the sentence-initial
	// occurrence keeps its capital too
	tokens := normalize(t, "Paris grew rapidly. Merchants reached Paris early.")

	for _, tok := range tokens {
		if tok == "paris" {
			t.Errorf("proper noun lowercased: %v", tokens)
		}
	}
}

func TestNormalizeAcronymsUntouched(t *testing.T) {
	tokens := normalize(t, "NASA launched rockets. NASA repeated launches.")

	found := 0
	for _, tok := range tokens {
		if tok == "NASA" {
			found++
		}
	}
	if found != 2 {
		t.Errorf("acronym mangled: %v", tokens)
	}
}

func TestNormalizeJoinsInitialRuns(t *testing.T) {
	tokens := normalize(t, "Tolkien wrote novels. J. R. R. Tolkien lived quietly.")

	joined := strings.Join(tokens, " ")
	if !strings.Contains(joined, "J.R.R.") {
		t.Errorf("initials not joined: %v", tokens)
	}
}

func TestNormalizeStripsNoise(t *testing.T) {
	tokens := normalize(t, "Armies (large ones) moved; fast! \"Villages\" burned... completely [citation] <needed>")

	joined := " " + strings.Join(tokens, " ") + " "
	for _, bad := range []string{"(", ")", ";", "!", "\"", "[", "]", "<", ">", "..."} {
		if strings.Contains(joined, bad) {
			t.Errorf("noise %q survived: %v", bad, tokens)
		}
	}
	for _, want := range []string{" Armies ", " moved ", " Villages ", " burned ", " completely ", " citation ", " needed "} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in %v", strings.TrimSpace(want), tokens)
		}
	}
}

func TestNormalizeDropsStopwords(t *testing.T) {
	tokens := normalize(t, "The army and the navy crossed the river")

	for _, tok := range tokens {
		if IsStopword(tok) {
			t.Errorf("stopword %q survived: %v", tok, tokens)
		}
	}
}

func TestNormalizeTrailingDotAbbreviation(t *testing.T) {
	// "approx." outnumbers the bare form and repeats, so the dot marks
	// a real abbreviation
	tokens := normalize(t, "Troops numbered approx. 5000 men. Supplies lasted approx. three weeks. Losses reached approx. half.")

	found := false
	for _, tok := range tokens {
		if tok == "approx." {
			found = true
		}
	}
	if !found {
		t.Errorf("abbreviation dot stripped: %v", tokens)
	}
}

func TestNormalizeTrailingDotSentencePeriod(t *testing.T) {
	tokens := normalize(t, "Soldiers marched north. Winter arrived early.")

	for _, tok := range tokens {
		if strings.HasSuffix(tok, ".") {
			t.Errorf("sentence period kept on %q: %v", tok, tokens)
		}
	}
}

func TestNormalizeInsufficientTokens(t *testing.T) {
	_, err := NewNormalizer(100).Normalize("short text only")

	var tooFew *domain.NotEnoughTokensError
	if !errors.As(err, &tooFew) {
		t.Fatalf("expected NotEnoughTokensError, got %v", err)
	}
	if tooFew.Required != 100 {
		t.Errorf("Required = %d, want 100", tooFew.Required)
	}
	if tooFew.Actual >= 100 {
		t.Errorf("Actual = %d, want < 100", tooFew.Actual)
	}
}

func TestIsStopword(t *testing.T) {
	for _, w := range []string{"the", "The", "THE", "and", "Which"} {
		if !IsStopword(w) {
			t.Errorf("IsStopword(%q) = false", w)
		}
	}
	for _, w := range []string{"battle", "Germany", "1944", ""} {
		if IsStopword(w) {
			t.Errorf("IsStopword(%q) = true", w)
		}
	}
}

func TestFixedModelsNonEmpty(t *testing.T) {
	for name, model := range map[string]domain.FreqModel{
		"filler": FillerModel(),
		"ending": SentenceEndModel(),
		"middle": MidSentenceModel(),
	} {
		if model.TotalWords() == 0 {
			t.Errorf("%s model is empty", name)
		}
		for weight, tier := range model {
			if weight < 1 {
				t.Errorf("%s model has weight %d < 1", name, weight)
			}
			if len(tier) == 0 {
				t.Errorf("%s model has empty tier at %d", name, weight)
			}
		}
	}
}
