// Package aggregator orchestrates a full ticker analysis: price history,
// candidate news, batch sentiment scoring, and temporal correlation.
package aggregator

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/apexlabs/apexanalysis/internal/analysis/temporal"
	"github.com/apexlabs/apexanalysis/internal/datasource"
	"github.com/apexlabs/apexanalysis/pkg/models"
	"github.com/apexlabs/apexanalysis/pkg/utils"
)

// BatchProcessor annotates a batch of candidate articles with sentiment.
type BatchProcessor interface {
	Process(ctx context.Context, articles []models.NewsArticle) []models.AnnotatedArticle
}

// Aggregator wires the external collaborators and the sentiment engine into
// one analysis pipeline.
type Aggregator struct {
	market      datasource.MarketDataSource
	news        datasource.NewsFeedSource
	processor   BatchProcessor
	numArticles int
	log         *logrus.Logger
	now         func() time.Time
}

// New creates an aggregator over the given collaborators.
func New(market datasource.MarketDataSource, news datasource.NewsFeedSource, processor BatchProcessor, numArticles int, log *logrus.Logger) *Aggregator {
	return &Aggregator{
		market:      market,
		news:        news,
		processor:   processor,
		numArticles: numArticles,
		log:         log,
		now:         time.Now,
	}
}

// Market returns the market data collaborator.
func (a *Aggregator) Market() datasource.MarketDataSource { return a.market }

// News returns the news feed collaborator.
func (a *Aggregator) News() datasource.NewsFeedSource { return a.news }

// RunAnalysis produces the full analysis report for one ticker.
//
// The report is always a defined value: a failing collaborator degrades its
// section to empty data and records the first failure message, it never
// aborts the run.
func (a *Aggregator) RunAnalysis(ctx context.Context, ticker, period string) *models.Report {
	symbol := utils.NormalizeTicker(ticker)
	a.log.Infof("starting analysis for %s (%s)", symbol, period)

	report := &models.Report{
		Ticker:         symbol,
		Period:         period,
		Timestamp:      a.now().UTC(),
		News:           []models.AnnotatedArticle{},
		DailySentiment: models.DailySentiment{},
	}

	// 1. Price history and company metadata.
	candles, err := a.market.GetHistory(ctx, symbol, period)
	if err != nil {
		a.log.Errorf("price history for %s: %v", symbol, err)
		report.Error = "no price data available: " + err.Error()
	}
	report.Candles = candles

	info, err := a.market.GetInfo(ctx, symbol)
	if err != nil {
		// Metadata is decorative; its absence is not a reportable failure.
		a.log.Warnf("company info for %s: %v", symbol, err)
	}
	report.Info = info

	// 2. Candidate news, fetched and scored.
	candidates, err := a.news.GetCandidates(ctx, symbol, a.numArticles)
	if err != nil {
		a.log.Errorf("news candidates for %s: %v", symbol, err)
		if report.Error == "" {
			report.Error = "no news available: " + err.Error()
		}
	}
	report.News = a.processor.Process(ctx, candidates)
	report.Sentiment = sentimentMetrics(report.News)

	// 3. Temporal alignment and correlation.
	corr := temporal.Correlate(report.News, report.Candles)
	report.DailySentiment = corr.DailySentiment
	report.Correlation = corr.Correlation
	report.Volatility = corr.Volatility

	a.log.Infof("analysis complete for %s: %d articles, correlation=%.4f volatility=%.4f",
		symbol, len(report.News), report.Correlation, report.Volatility)
	return report
}

// sentimentMetrics summarises the label distribution, mean score, and the
// union of matched lexicon keywords across a batch.
func sentimentMetrics(articles []models.AnnotatedArticle) models.SentimentMetrics {
	m := models.SentimentMetrics{Count: len(articles)}
	if len(articles) == 0 {
		return m
	}

	keywords := make(map[string]struct{})
	sum := 0.0
	for _, a := range articles {
		sum += a.Sentiment.Compound
		switch a.Sentiment.Label {
		case models.StronglyPositive:
			m.StronglyPositive++
		case models.Positive:
			m.Positive++
		case models.Negative:
			m.Negative++
		case models.StronglyNegative:
			m.StronglyNegative++
		default:
			m.Neutral++
		}
		for _, kw := range a.Sentiment.Keywords {
			keywords[kw] = struct{}{}
		}
	}
	m.Average = sum / float64(len(articles))

	m.Keywords = make([]string, 0, len(keywords))
	for kw := range keywords {
		m.Keywords = append(m.Keywords, kw)
	}
	sort.Strings(m.Keywords)

	return m
}
