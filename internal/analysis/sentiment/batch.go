package sentiment

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/apexlabs/apexanalysis/pkg/models"
)

// ContentFetcher retrieves the cleaned body text of one article URL.
// An empty return value means "no usable content" and is not an error.
type ContentFetcher interface {
	Fetch(ctx context.Context, url string) string
}

// Processor annotates a batch of candidate articles with sentiment.
//
// Articles are fetched with bounded concurrency; per-host politeness pacing
// lives inside the fetcher, so parallelism across hosts never violates the
// per-host request spacing.
type Processor struct {
	fetcher     ContentFetcher
	analyzer    *Analyzer
	concurrency int
	log         *logrus.Logger
	now         func() time.Time
}

// NewProcessor creates a batch processor. concurrency values below 1 are
// treated as 1 (strictly sequential).
func NewProcessor(fetcher ContentFetcher, analyzer *Analyzer, concurrency int, log *logrus.Logger) *Processor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Processor{
		fetcher:     fetcher,
		analyzer:    analyzer,
		concurrency: concurrency,
		log:         log,
		now:         time.Now,
	}
}

// Process fetches, scores and annotates each candidate article.
//
// Malformed entries (no URL and no title) are filtered out. When an article
// body cannot be fetched the title is used as the content source; articles
// with no usable content at all are dropped, not scored. The result is sorted
// by descending compound sentiment — consumers rely on most-positive-first
// ordering.
func (p *Processor) Process(ctx context.Context, articles []models.NewsArticle) []models.AnnotatedArticle {
	results := make([]*models.AnnotatedArticle, len(articles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, article := range articles {
		i, article := i, article
		g.Go(func() error {
			results[i] = p.processOne(gctx, article)
			return nil
		})
	}
	// Workers never return errors; failures degrade to skipped articles.
	_ = g.Wait()

	annotated := make([]models.AnnotatedArticle, 0, len(articles))
	for _, r := range results {
		if r != nil {
			annotated = append(annotated, *r)
		}
	}

	sort.SliceStable(annotated, func(i, j int) bool {
		return annotated[i].Sentiment.Compound > annotated[j].Sentiment.Compound
	})

	p.log.Infof("annotated %d of %d candidate articles", len(annotated), len(articles))
	return annotated
}

// processOne handles a single article; nil means the article was dropped.
func (p *Processor) processOne(ctx context.Context, article models.NewsArticle) *models.AnnotatedArticle {
	if article.URL == "" && article.Title == "" {
		return nil
	}

	content := article.Content
	if content == "" && article.URL != "" {
		content = p.fetcher.Fetch(ctx, article.URL)
	}
	if content == "" {
		// Unfetchable body: fall back to the headline text.
		content = article.Title
	}
	if content == "" {
		return nil
	}

	article.Content = content
	return &models.AnnotatedArticle{
		NewsArticle: article,
		Sentiment:   p.analyzer.Analyze(content),
		AnalyzedAt:  p.now().UTC(),
	}
}
