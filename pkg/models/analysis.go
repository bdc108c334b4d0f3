package models

import "time"

// DailySentiment maps a calendar date (formatted as 2006-01-02) to the
// arithmetic mean of all compound sentiment scores published that date.
type DailySentiment map[string]float64

// CorrelationResult is the output of the temporal correlator.
//
// Correlation is the Pearson coefficient between daily mean sentiment and
// same-day price return, computed over the dates present in both series.
// It is defined as 0.0 when fewer than 2 overlapping dates exist or either
// joined series has zero variance.
type CorrelationResult struct {
	Correlation    float64        `json:"correlation"`
	Points         int            `json:"points"` // joined data points used
	Volatility     float64        `json:"volatility"` // population stddev of full daily-return series
	DailySentiment DailySentiment `json:"daily_sentiment"`
}

// SentimentMetrics summarises the sentiment distribution across a batch of
// annotated articles.
type SentimentMetrics struct {
	Average          float64  `json:"average"`
	Count            int      `json:"count"`
	StronglyPositive int      `json:"strongly_positive"`
	Positive         int      `json:"positive"`
	Neutral          int      `json:"neutral"`
	Negative         int      `json:"negative"`
	StronglyNegative int      `json:"strongly_negative"`
	Keywords         []string `json:"keywords,omitempty"` // union of matched lexicon phrases
}

// Report is the aggregated output of a full ticker analysis run.
// Every field is populated with a defined (possibly zero) value even when
// individual collaborators fail; Error carries the first failure message.
type Report struct {
	Ticker         string             `json:"ticker"`
	Period         string             `json:"period"`
	Timestamp      time.Time          `json:"timestamp"`
	Candles        []OHLCV            `json:"candles,omitempty"`
	Info           CompanyInfo        `json:"info,omitempty"`
	News           []AnnotatedArticle `json:"news"` // sorted most-positive-first
	Sentiment      SentimentMetrics   `json:"sentiment"`
	DailySentiment DailySentiment     `json:"daily_sentiment"`
	Correlation    float64            `json:"correlation"`
	Volatility     float64            `json:"volatility"`
	Error          string             `json:"error,omitempty"`
}
