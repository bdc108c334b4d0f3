package datasource

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/apexlabs/apexanalysis/pkg/models"
	"github.com/apexlabs/apexanalysis/pkg/utils"
)

// GoogleNews implements NewsFeedSource using the Google News RSS search feed.
type GoogleNews struct {
	feedURL string // template with a single %s for the query
	limiter *RateLimiter
	cache   *Cache
	parser  *gofeed.Parser
	now     func() time.Time
}

// NewGoogleNews creates a Google News RSS source. feedURL must contain one %s
// placeholder for the URL-escaped search query; cacheTTL bounds feed re-fetches.
func NewGoogleNews(feedURL string, cacheTTL time.Duration) *GoogleNews {
	return &GoogleNews{
		feedURL: feedURL,
		limiter: NewRateLimiter(2, time.Second), // conservative: 2 req/s
		cache:   NewCache(cacheTTL),
		parser:  gofeed.NewParser(),
		now:     time.Now,
	}
}

// Name returns the news source name.
func (g *GoogleNews) Name() string { return "Google News RSS" }

// GetCandidates returns up to limit candidate articles for the ticker.
// Entries without a link are skipped; entries without a parseable publication
// time default to the retrieval time.
func (g *GoogleNews) GetCandidates(ctx context.Context, ticker string, limit int) ([]models.NewsArticle, error) {
	symbol := utils.NormalizeTicker(ticker)
	if symbol == "" {
		return nil, fmt.Errorf("empty ticker")
	}

	cacheKey := fmt.Sprintf("news:%s:%d", symbol, limit)
	if cached, ok := g.cache.Get(cacheKey); ok {
		return cached.([]models.NewsArticle), nil
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	feedURL := fmt.Sprintf(g.feedURL, url.QueryEscape(symbol))
	feed, err := g.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse RSS for %s: %w", symbol, err)
	}

	items := feed.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	articles := make([]models.NewsArticle, 0, len(items))
	for _, item := range items {
		if item.Link == "" {
			continue
		}
		a := models.NewsArticle{
			Title:       item.Title,
			URL:         item.Link,
			PublishedAt: g.now().UTC(),
		}
		if item.PublishedParsed != nil {
			a.PublishedAt = item.PublishedParsed.UTC()
		} else if item.UpdatedParsed != nil {
			a.PublishedAt = item.UpdatedParsed.UTC()
		}
		if item.Custom != nil {
			if src, ok := item.Custom["source"]; ok {
				a.Source = src
			}
		}
		articles = append(articles, a)
	}

	if len(articles) > 0 {
		g.cache.Set(cacheKey, articles)
	}
	return articles, nil
}
