package datasource

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>stock news</title>
    <item>
      <title>AAPL stock surges on earnings</title>
      <link>https://example.com/a</link>
      <pubDate>Mon, 02 Mar 2026 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>item without a link</title>
    </item>
    <item>
      <title>analysts weigh in</title>
      <link>https://example.com/b</link>
    </item>
  </channel>
</rss>`

func newFeedServer(t *testing.T) (*GoogleNews, *int) {
	t.Helper()
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if got := r.URL.Query().Get("q"); got != "AAPL" {
			t.Errorf("feed query = %q, want %q", got, "AAPL")
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssFeed)
	}))
	t.Cleanup(srv.Close)

	return NewGoogleNews(srv.URL+"/rss/search?q=%s", time.Minute), &hits
}

func TestGetCandidates(t *testing.T) {
	g, _ := newFeedServer(t)

	articles, err := g.GetCandidates(context.Background(), "aapl", 10)
	if err != nil {
		t.Fatalf("GetCandidates: %v", err)
	}
	// The link-less item is skipped.
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	first := articles[0]
	if first.Title != "AAPL stock surges on earnings" || first.URL != "https://example.com/a" {
		t.Errorf("unexpected first article: %+v", first)
	}
	want := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	if !first.PublishedAt.Equal(want) {
		t.Errorf("PublishedAt = %v, want %v", first.PublishedAt, want)
	}

	// No pubDate on the second kept item: retrieval time is substituted.
	if articles[1].PublishedAt.IsZero() {
		t.Error("expected fallback publication time, got zero value")
	}
}

func TestGetCandidatesLimit(t *testing.T) {
	g, _ := newFeedServer(t)

	// The limit applies to feed entries before filtering, so a window of 2
	// covering one link-less entry yields a single article.
	articles, err := g.GetCandidates(context.Background(), "AAPL", 2)
	if err != nil {
		t.Fatalf("GetCandidates: %v", err)
	}
	if len(articles) != 1 {
		t.Errorf("expected 1 article within limit window, got %d", len(articles))
	}
}

func TestGetCandidatesEmptyTicker(t *testing.T) {
	g, hits := newFeedServer(t)

	if _, err := g.GetCandidates(context.Background(), "  ", 5); err == nil {
		t.Error("expected error for empty ticker")
	}
	if *hits != 0 {
		t.Errorf("empty ticker must not hit the feed, got %d requests", *hits)
	}
}

func TestGetCandidatesCached(t *testing.T) {
	g, hits := newFeedServer(t)

	for i := 0; i < 3; i++ {
		if _, err := g.GetCandidates(context.Background(), "AAPL", 10); err != nil {
			t.Fatalf("GetCandidates: %v", err)
		}
	}
	if *hits != 1 {
		t.Errorf("expected 1 feed fetch with warm cache, got %d", *hits)
	}
}

func TestGetCandidatesFeedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := NewGoogleNews(srv.URL+"/rss/search?q=%s", time.Minute)
	if _, err := g.GetCandidates(context.Background(), "AAPL", 5); err == nil {
		t.Error("expected error for failing feed")
	}
}
