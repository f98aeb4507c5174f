package port

import (
	"context"

	"ipsum/internal/domain"
)

// ArticleSource resolves a query to a source article.
type ArticleSource interface {
	Fetch(ctx context.Context, query string) (domain.Article, error)
}
