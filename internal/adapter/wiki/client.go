// Package wiki fetches article extracts from a MediaWiki API.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ipsum/internal/domain"
)

const defaultBaseURL = "https://en.wikipedia.org/w/api.php"

// Client resolves queries against a MediaWiki instance.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// New creates a Client. An empty baseURL selects English Wikipedia.
func New(baseURL, userAgent string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

type queryResponse struct {
	Continue map[string]string `json:"continue"`
	Query    queryResult       `json:"query"`
	Error    *apiError         `json:"error"`
}

type queryResult struct {
	Pages map[string]page `json:"pages"`
}

type page struct {
	Missing   *string   `json:"missing"`
	Title     string    `json:"title"`
	Extract   string    `json:"extract"`
	PageProps pageProps `json:"pageprops"`
	Links     []link    `json:"links"`
}

type pageProps struct {
	Disambiguation *string `json:"disambiguation"`
}

type link struct {
	Title string `json:"title"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

// Fetch resolves query to an article title and plain-text body. A
// missing page yields NotFoundError; a disambiguation page yields
// AmbiguousError carrying the page's outgoing links as suggestions.
func (c *Client) Fetch(ctx context.Context, query string) (domain.Article, error) {
	params := url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"redirects":   {"1"},
		"titles":      {query},
		"prop":        {"extracts|pageprops"},
		"explaintext": {"1"},
		"ppprop":      {"disambiguation"},
	}

	resp, err := c.do(ctx, params)
	if err != nil {
		return domain.Article{}, err
	}

	pg, ok := firstPage(resp)
	if !ok || pg.Missing != nil {
		return domain.Article{}, &domain.NotFoundError{Query: query}
	}
	if pg.PageProps.Disambiguation != nil {
		suggestions, err := c.links(ctx, pg.Title)
		if err != nil {
			return domain.Article{}, err
		}
		return domain.Article{}, &domain.AmbiguousError{Query: query, Suggestions: suggestions}
	}
	if strings.TrimSpace(pg.Extract) == "" {
		return domain.Article{}, &domain.NotFoundError{Query: query}
	}

	return domain.Article{Title: pg.Title, Body: pg.Extract}, nil
}

// links collects every article-namespace link on a page, following the
// API's continuation tokens until none remain. Link counts are bounded
// in practice but the loop assumes no upper bound.
func (c *Client) links(ctx context.Context, title string) ([]string, error) {
	params := url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"titles":      {title},
		"prop":        {"links"},
		"pllimit":     {"max"},
		"plnamespace": {"0"},
	}

	var titles []string
	for {
		resp, err := c.do(ctx, params)
		if err != nil {
			return nil, err
		}
		pg, ok := firstPage(resp)
		if !ok {
			break
		}
		for _, l := range pg.Links {
			titles = append(titles, l.Title)
		}
		token, more := resp.Continue["plcontinue"]
		if !more {
			break
		}
		params.Set("plcontinue", token)
	}
	return titles, nil
}

func (c *Client) do(ctx context.Context, params url.Values) (*queryResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var decoded queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if decoded.Error != nil {
		return nil, fmt.Errorf("API error %s: %s", decoded.Error.Code, decoded.Error.Info)
	}
	return &decoded, nil
}

func firstPage(resp *queryResponse) (page, bool) {
	for _, pg := range resp.Query.Pages {
		return pg, true
	}
	return page{}, false
}
