// Package extract fetches an article page and reduces it to plain text.
package extract

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/gocolly/colly/v2"
)

var whitespace = regexp.MustCompile(`\s+`)

// Content is the readable portion of a fetched page.
type Content struct {
	Title string
	Text  string
}

// Extractor downloads pages and strips them to article text.
type Extractor struct {
	userAgent      string
	requestTimeout time.Duration
}

// New creates an extractor with a 15-second request timeout.
func New() *Extractor {
	return &Extractor{
		userAgent:      "samachar/1.0 (daily news digest; +https://github.com/samachar-app/samachar)",
		requestTimeout: 15 * time.Second,
	}
}

// Extract fetches pageURL and returns its readable title and body text.
func (e *Extractor) Extract(pageURL string) (*Content, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}

	c := colly.NewCollector(
		colly.UserAgent(e.userAgent),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(e.requestTimeout)

	var body []byte
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	var fetchErr error
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("fetch %s: %w (status: %d)", pageURL, err, r.StatusCode)
	})

	if err := c.Visit(pageURL); err != nil {
		return nil, fmt.Errorf("visit %s: %w", pageURL, err)
	}
	c.Wait()

	if fetchErr != nil {
		return nil, fetchErr
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty response from %s", pageURL)
	}

	return FromHTML(string(body), parsed)
}

// FromHTML reduces raw page HTML to readable title and text.
func FromHTML(rawHTML string, pageURL *url.URL) (*Content, error) {
	article, err := readability.FromReader(strings.NewReader(rawHTML), pageURL)
	if err != nil {
		return nil, fmt.Errorf("readability: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil, fmt.Errorf("parse readable content: %w", err)
	}

	text := normalizeText(doc.Text())
	if text == "" {
		return nil, fmt.Errorf("no readable text at %s", pageURL)
	}

	return &Content{Title: strings.TrimSpace(article.Title), Text: text}, nil
}

func normalizeText(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}
