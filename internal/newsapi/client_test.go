package newsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestArticlesForDay(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"sources":  q.Get("sources"),
			"from":     q.Get("from"),
			"to":       q.Get("to"),
			"sortBy":   q.Get("sortBy"),
			"pageSize": q.Get("pageSize"),
			"apiKey":   q.Get("apiKey"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","articles":[
			{"title":"Cabinet clears new bill","url":"https://example.com/a"},
			{"title":"Redirected story","url":"https://news.google.com/rss/x"},
			{"title":"","url":"https://example.com/b"},
			{"title":"Monsoon update","url":"https://example.com/c"}
		]}`))
	}))
	defer srv.Close()

	c := New("test-key", []string{"the-hindu", "the-times-of-india"})
	c.base = srv.URL

	articles, err := c.ArticlesForDay(context.Background(), "2025-06-01")
	if err != nil {
		t.Fatalf("ArticlesForDay: %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d: %v", len(articles), articles)
	}
	if articles[0].Title != "Cabinet clears new bill" || articles[1].Link != "https://example.com/c" {
		t.Errorf("unexpected articles: %v", articles)
	}

	want := map[string]string{
		"sources":  "the-hindu,the-times-of-india",
		"from":     "2025-06-01",
		"to":       "2025-06-01",
		"sortBy":   "publishedAt",
		"pageSize": "25",
		"apiKey":   "test-key",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}
}

func TestArticlesForDayServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New("test-key", []string{"the-hindu"})
	c.base = srv.URL

	if _, err := c.ArticlesForDay(context.Background(), "2025-06-01"); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}
