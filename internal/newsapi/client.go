// Package newsapi queries the NewsAPI /v2/everything endpoint for a
// single calendar day of headlines from a fixed source allowlist.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samachar-app/samachar/internal/models"
)

const baseURL = "https://newsapi.org/v2/everything"

// Client calls NewsAPI with a fixed source list.
type Client struct {
	httpClient *http.Client
	apiKey     string
	sources    []string
	base       string
}

// New creates a NewsAPI client with a 12-second timeout.
func New(apiKey string, sources []string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 12 * time.Second},
		apiKey:     apiKey,
		sources:    sources,
		base:       baseURL,
	}
}

// ArticlesForDay fetches headlines published on the given calendar day
// (YYYY-MM-DD). Links that route through an aggregator redirect are
// dropped because their pages cannot be extracted.
func (c *Client) ArticlesForDay(ctx context.Context, day string) ([]models.Article, error) {
	params := url.Values{
		"sources":  {strings.Join(c.sources, ",")},
		"from":     {day},
		"to":       {day},
		"sortBy":   {"publishedAt"},
		"pageSize": {"25"},
		"apiKey":   {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi everything: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi everything returned %d", resp.StatusCode)
	}

	var result struct {
		Articles []struct {
			Title string `json:"title"`
			URL   string `json:"url"`
		} `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode everything response: %w", err)
	}

	articles := make([]models.Article, 0, len(result.Articles))
	for _, a := range result.Articles {
		if a.Title == "" || a.URL == "" {
			continue
		}
		if strings.Contains(a.URL, "google.com") {
			continue
		}
		articles = append(articles, models.Article{Title: a.Title, Link: a.URL})
	}
	return articles, nil
}
