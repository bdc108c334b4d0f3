package temporal

import (
	"math"
	"testing"
	"time"

	"github.com/apexlabs/apexanalysis/pkg/models"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 16, 0, 0, 0, time.UTC)
}

func candle(d int, close float64) models.OHLCV {
	return models.OHLCV{Timestamp: day(d), Open: close, High: close, Low: close, Close: close, Volume: 1000}
}

func article(d int, compound float64) models.AnnotatedArticle {
	return models.AnnotatedArticle{
		NewsArticle: models.NewsArticle{Title: "t", PublishedAt: day(d)},
		Sentiment:   models.SentimentResult{Compound: compound},
	}
}

func TestDailyReturns(t *testing.T) {
	candles := []models.OHLCV{candle(2, 100), candle(3, 101), candle(4, 98.98)}
	returns := DailyReturns(candles)

	if len(returns) != 2 {
		t.Fatalf("expected 2 returns (first day excluded), got %d", len(returns))
	}
	if _, ok := returns["2026-03-02"]; ok {
		t.Error("first day must not have a return")
	}
	if got := returns["2026-03-03"]; math.Abs(got-0.01) > 1e-9 {
		t.Errorf("day 3 return = %.6f, want 0.01", got)
	}
	if got := returns["2026-03-04"]; math.Abs(got-(-0.02)) > 1e-9 {
		t.Errorf("day 4 return = %.6f, want -0.02", got)
	}
}

func TestDailyReturnsSkipsNonPositivePrevClose(t *testing.T) {
	candles := []models.OHLCV{candle(2, 0), candle(3, 101), candle(4, 102)}
	returns := DailyReturns(candles)

	if _, ok := returns["2026-03-03"]; ok {
		t.Error("return after a zero close must be skipped")
	}
	if _, ok := returns["2026-03-04"]; !ok {
		t.Error("expected a return for day 4")
	}
}

func TestDailySentimentMean(t *testing.T) {
	daily := DailySentiment([]models.AnnotatedArticle{
		article(3, 0.4),
		article(3, 0.8),
		article(4, -0.2),
	})

	if len(daily) != 2 {
		t.Fatalf("expected 2 daily buckets, got %d", len(daily))
	}
	if got := daily["2026-03-03"]; math.Abs(got-0.6) > 1e-9 {
		t.Errorf("day 3 mean = %.4f, want 0.6", got)
	}
	if got := daily["2026-03-04"]; math.Abs(got-(-0.2)) > 1e-9 {
		t.Errorf("day 4 mean = %.4f, want -0.2", got)
	}
}

func TestCorrelatePositive(t *testing.T) {
	// Returns: +1%, -2%, +3% on days 3..5; sentiment tracks the sign.
	candles := []models.OHLCV{
		candle(2, 100),
		candle(3, 101),
		candle(4, 98.98),
		candle(5, 101.9494),
	}
	articles := []models.AnnotatedArticle{
		article(3, 0.5),
		article(4, -0.5),
		article(5, 0.5),
	}

	result := Correlate(articles, candles)
	if result.Points != 3 {
		t.Errorf("expected 3 joined points, got %d", result.Points)
	}
	if result.Correlation < 0.8 {
		t.Errorf("expected strong positive correlation, got %.4f", result.Correlation)
	}
	if result.Correlation > 1.0 {
		t.Errorf("correlation above 1.0: %.4f", result.Correlation)
	}

	// Population stddev of {0.01, -0.02, 0.03}.
	want := 0.020548
	if math.Abs(result.Volatility-want) > 1e-4 {
		t.Errorf("volatility = %.6f, want ~%.6f", result.Volatility, want)
	}
}

func TestCorrelateInsufficientOverlap(t *testing.T) {
	candles := []models.OHLCV{candle(2, 100), candle(3, 101)}
	articles := []models.AnnotatedArticle{
		article(3, 0.5),
		article(10, -0.5), // no candle on this date
	}

	result := Correlate(articles, candles)
	if result.Points != 1 {
		t.Errorf("expected 1 joined point, got %d", result.Points)
	}
	if result.Correlation != 0.0 {
		t.Errorf("expected exactly 0.0 correlation with <2 points, got %.4f", result.Correlation)
	}
}

func TestCorrelateZeroVariance(t *testing.T) {
	candles := []models.OHLCV{
		candle(2, 100),
		candle(3, 101),
		candle(4, 98.98),
	}
	articles := []models.AnnotatedArticle{
		article(3, 0.5),
		article(4, 0.5), // constant sentiment
	}

	result := Correlate(articles, candles)
	if result.Correlation != 0.0 {
		t.Errorf("expected 0.0 correlation for constant sentiment, got %.4f", result.Correlation)
	}
}

func TestCorrelateEmptyInputs(t *testing.T) {
	result := Correlate(nil, nil)
	if result.Correlation != 0.0 || result.Volatility != 0.0 || result.Points != 0 {
		t.Errorf("expected zero result for empty inputs, got %+v", result)
	}
	if result.DailySentiment == nil {
		t.Error("daily sentiment map must be non-nil")
	}
}

func TestVolatilityIndependentOfJoin(t *testing.T) {
	// No articles at all: correlation undefined (0.0) but volatility still
	// reflects the full return series.
	candles := []models.OHLCV{
		candle(2, 100),
		candle(3, 102),
		candle(4, 99),
	}

	result := Correlate(nil, candles)
	if result.Correlation != 0.0 {
		t.Errorf("expected 0.0 correlation without articles, got %.4f", result.Correlation)
	}
	if result.Volatility <= 0 {
		t.Errorf("expected positive volatility from price series alone, got %.6f", result.Volatility)
	}
}
