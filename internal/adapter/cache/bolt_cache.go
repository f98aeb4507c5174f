// Package cache persists fetched articles so repeated queries skip the
// network.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"ipsum/internal/domain"
	"ipsum/internal/port"
)

var bucketArticles = []byte("articles")

// Store is a bbolt-backed article cache with TTL expiry.
type Store struct {
	db  *bbolt.DB
	ttl time.Duration
}

type entry struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	FetchedAt int64  `json:"fetched_at"`
}

// Open opens (or creates) the cache database at path.
func Open(path string, ttl time.Duration) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketArticles)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, ttl: ttl}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the cached article for query, if present and fresh.
func (s *Store) Get(query string) (domain.Article, bool) {
	var e entry
	found := false
	_ = s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketArticles).Get(key(query))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &e); err != nil {
			return nil
		}
		found = true
		return nil
	})
	if !found {
		return domain.Article{}, false
	}
	if s.ttl > 0 && time.Since(time.Unix(e.FetchedAt, 0)) > s.ttl {
		_ = s.Delete(query)
		return domain.Article{}, false
	}
	return domain.Article{Title: e.Title, Body: e.Body}, true
}

// Put stores an article under query.
func (s *Store) Put(query string, article domain.Article) error {
	data, err := json.Marshal(entry{
		Title:     article.Title,
		Body:      article.Body,
		FetchedAt: time.Now().Unix(),
	})
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketArticles).Put(key(query), data)
	})
}

// Delete removes the entry for query.
func (s *Store) Delete(query string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketArticles).Delete(key(query))
	})
}

func key(query string) []byte {
	return []byte(strings.ToLower(strings.TrimSpace(query)))
}

// CachedSource decorates an ArticleSource with the cache. Typed
// failures (not found, ambiguous) are not cached; only successful
// fetches are.
type CachedSource struct {
	source port.ArticleSource
	store  *Store
}

// NewCachedSource wraps source with store.
func NewCachedSource(source port.ArticleSource, store *Store) *CachedSource {
	return &CachedSource{source: source, store: store}
}

// Fetch serves from the cache when possible, falling back to the
// wrapped source.
func (c *CachedSource) Fetch(ctx context.Context, query string) (domain.Article, error) {
	if article, hit := c.store.Get(query); hit {
		return article, nil
	}
	article, err := c.source.Fetch(ctx, query)
	if err != nil {
		return domain.Article{}, err
	}
	_ = c.store.Put(query, article)
	return article, nil
}
