package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ipsum/internal/domain"
)

func writeFile(t *testing.T, root, name, body string) {
	t.Helper()
	path := filepath.Join(root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFetchSingleMatch(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "winter-campaign.txt", "The siege lasted through winter.")
	writeFile(t, root, "harvest.txt", "Farmers gathered grain.")

	s := NewFileSource(root, nil, nil)
	article, err := s.Fetch(context.Background(), "winter")
	if err != nil {
		t.Fatal(err)
	}
	if article.Title != "winter-campaign" {
		t.Errorf("Title = %q", article.Title)
	}
	if article.Body != "The siege lasted through winter." {
		t.Errorf("Body = %q", article.Body)
	}
}

func TestFetchMatchIsCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Winter-Campaign.txt", "body")

	if _, err := NewFileSource(root, nil, nil).Fetch(context.Background(), "WINTER"); err != nil {
		t.Fatal(err)
	}
}

func TestFetchAmbiguous(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "winter-campaign.txt", "first")
	writeFile(t, root, "notes/winter-supplies.md", "second")

	_, err := NewFileSource(root, nil, nil).Fetch(context.Background(), "winter")
	var ambiguous *domain.AmbiguousError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected AmbiguousError, got %v", err)
	}
	if len(ambiguous.Suggestions) != 2 {
		t.Errorf("suggestions = %v, want 2 entries", ambiguous.Suggestions)
	}
}

func TestFetchNotFound(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "harvest.txt", "body")

	_, err := NewFileSource(root, nil, nil).Fetch(context.Background(), "winter")
	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestFetchDefaultIncludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "winter.csv", "skipped")
	writeFile(t, root, "winter.md", "kept")

	article, err := NewFileSource(root, nil, nil).Fetch(context.Background(), "winter")
	if err != nil {
		t.Fatal(err)
	}
	if article.Body != "kept" {
		t.Errorf("Body = %q, want the markdown file", article.Body)
	}
}

func TestFetchExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "winter.txt", "kept")
	writeFile(t, root, "drafts/winter.txt", "excluded")

	s := NewFileSource(root, nil, []string{"drafts/**"})
	article, err := s.Fetch(context.Background(), "winter")
	if err != nil {
		t.Fatal(err)
	}
	if article.Body != "kept" {
		t.Errorf("Body = %q, want the non-draft file", article.Body)
	}
}
