// Package corpus serves local text files as article sources, for
// offline generation from any prose directory.
package corpus

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"ipsum/internal/domain"
)

// FileSource resolves queries against text files under a root
// directory. Include and exclude patterns use doublestar globs
// relative to the root.
type FileSource struct {
	root     string
	includes []string
	excludes []string
}

// NewFileSource creates a FileSource. Empty includes default to
// **/*.txt and **/*.md.
func NewFileSource(root string, includes, excludes []string) *FileSource {
	if len(includes) == 0 {
		includes = []string{"**/*.txt", "**/*.md"}
	}
	return &FileSource{root: root, includes: includes, excludes: excludes}
}

// Fetch matches query against the base names of included files. A
// single match becomes the article (title from the file name, body from
// its contents); several matches surface as an ambiguity carrying the
// candidate names.
func (s *FileSource) Fetch(ctx context.Context, query string) (domain.Article, error) {
	files, err := s.list()
	if err != nil {
		return domain.Article{}, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	var matches []string
	for _, path := range files {
		if strings.Contains(strings.ToLower(title(path)), needle) {
			matches = append(matches, path)
		}
	}

	switch len(matches) {
	case 0:
		return domain.Article{}, &domain.NotFoundError{Query: query}
	case 1:
		body, err := os.ReadFile(matches[0])
		if err != nil {
			return domain.Article{}, err
		}
		return domain.Article{Title: title(matches[0]), Body: string(body)}, nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = title(m)
		}
		return domain.Article{}, &domain.AmbiguousError{Query: query, Suggestions: names}
	}
}

// list walks the root and returns every file passing the include and
// exclude patterns.
func (s *FileSource) list() ([]string, error) {
	root, err := filepath.Abs(s.root)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if info.IsDir() {
			if s.matches(s.excludes, rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if s.matches(s.includes, rel) && !s.matches(s.excludes, rel) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func (s *FileSource) matches(patterns []string, path string) bool {
	for _, pattern := range patterns {
		ok, err := doublestar.Match(pattern, path)
		if err == nil && ok {
			return true
		}
	}
	return false
}

func title(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
