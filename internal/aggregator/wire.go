package aggregator

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/apexlabs/apexanalysis/internal/analysis/sentiment"
	"github.com/apexlabs/apexanalysis/internal/config"
	"github.com/apexlabs/apexanalysis/internal/datasource"
	"github.com/apexlabs/apexanalysis/internal/scrape"
)

// NewFromConfig assembles the full analysis pipeline from configuration:
// compliance gate → content fetcher → analyzer → batch processor, plus the
// Yahoo Finance and Google News collaborators.
func NewFromConfig(cfg *config.Config, log *logrus.Logger) *Aggregator {
	gate := scrape.NewGate(
		cfg.Scrape.RespectRobots,
		cfg.Scrape.UserAgent,
		time.Duration(cfg.Scrape.RequestTimeoutSec)*time.Second,
		log,
	)

	fetcher := scrape.NewFetcher(gate, scrape.FetcherOptions{
		UserAgent:      cfg.Scrape.UserAgent,
		Timeout:        time.Duration(cfg.Scrape.RequestTimeoutSec) * time.Second,
		Delay:          time.Duration(cfg.Scrape.RequestDelaySec) * time.Second,
		AllowPaywalled: cfg.Scrape.AllowPaywalled,
	}, log)

	analyzer := sentiment.NewAnalyzer(cfg.Sentiment.MinLength, log)
	processor := sentiment.NewProcessor(fetcher, analyzer, cfg.Analysis.ConcurrentFetches, log)

	market := datasource.NewYFinance(cfg.Scrape.UserAgent)
	news := datasource.NewGoogleNews(cfg.News.FeedURL, time.Duration(cfg.News.CacheTTLSec)*time.Second)

	return New(market, news, processor, cfg.News.NumArticles, log)
}
