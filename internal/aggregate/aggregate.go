// Package aggregate gathers candidate articles for a calendar day from
// NewsAPI and a set of RSS feeds.
package aggregate

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/samachar-app/samachar/internal/dateutil"
	"github.com/samachar-app/samachar/internal/models"
)

// MaxCandidates caps how many articles a single run will consider.
const MaxCandidates = 150

// NewsSource returns headlines published on the given day.
type NewsSource interface {
	ArticlesForDay(ctx context.Context, day string) ([]models.Article, error)
}

// Aggregator merges NewsAPI results with RSS feed items for one day.
type Aggregator struct {
	news   NewsSource
	feeds  []string
	parser *gofeed.Parser
	loc    *time.Location
}

// New creates an aggregator over the given news source and feed URLs.
func New(news NewsSource, feeds []string, loc *time.Location) *Aggregator {
	parser := gofeed.NewParser()
	parser.UserAgent = "samachar/1.0"
	return &Aggregator{
		news:   news,
		feeds:  feeds,
		parser: parser,
		loc:    loc,
	}
}

// CollectForDay returns candidate articles published on day (YYYY-MM-DD),
// NewsAPI results first, then feed items in feed order. A failing source
// contributes nothing; the remaining sources still run.
func (a *Aggregator) CollectForDay(ctx context.Context, day string) []models.Article {
	var out []models.Article

	articles, err := a.news.ArticlesForDay(ctx, day)
	if err != nil {
		slog.Warn("news api fetch failed", "day", day, "error", err)
	} else {
		out = append(out, articles...)
	}

	for _, feedURL := range a.feeds {
		if len(out) >= MaxCandidates {
			break
		}
		items, err := a.fetchFeed(ctx, feedURL, day)
		if err != nil {
			slog.Warn("feed fetch failed", "feed", feedURL, "error", err)
			continue
		}
		out = append(out, items...)
	}

	if len(out) > MaxCandidates {
		out = out[:MaxCandidates]
	}
	return out
}

func (a *Aggregator) fetchFeed(ctx context.Context, feedURL, day string) ([]models.Article, error) {
	feed, err := a.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	var items []models.Article
	for _, item := range feed.Items {
		if item.PublishedParsed == nil {
			continue
		}
		if !dateutil.SameDay(*item.PublishedParsed, day, a.loc) {
			continue
		}
		if item.Title == "" || item.Link == "" {
			continue
		}
		items = append(items, models.Article{Title: item.Title, Link: item.Link})
	}
	return items, nil
}
