// Package temporal aligns per-article sentiment to trading days and measures
// its relationship with daily price returns.
package temporal

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/apexlabs/apexanalysis/pkg/models"
	"github.com/apexlabs/apexanalysis/pkg/utils"
)

// DailyReturns computes the percentage-change return series from daily
// candles, keyed by calendar date. The first day has no defined return and
// is excluded; days with a non-positive previous close are skipped.
func DailyReturns(candles []models.OHLCV) map[string]float64 {
	returns := make(map[string]float64)
	for i := 1; i < len(candles); i++ {
		prev := candles[i-1].Close
		if prev <= 0 {
			continue
		}
		returns[utils.DateKey(candles[i].Timestamp)] = (candles[i].Close - prev) / prev
	}
	return returns
}

// DailySentiment folds annotated articles into one mean compound score per
// publication date.
func DailySentiment(articles []models.AnnotatedArticle) models.DailySentiment {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, a := range articles {
		key := utils.DateKey(a.PublishedAt)
		sums[key] += a.Sentiment.Compound
		counts[key]++
	}

	daily := make(models.DailySentiment, len(sums))
	for key, sum := range sums {
		daily[key] = sum / float64(counts[key])
	}
	return daily
}

// Correlate computes the Pearson correlation between daily mean sentiment and
// same-day price return, inner-joined on date. The result is 0.0 — a defined
// value, not a failure — when fewer than 2 dates overlap or either joined
// series has zero variance. Volatility is the population standard deviation
// of the full daily-return series, independent of the join.
func Correlate(articles []models.AnnotatedArticle, candles []models.OHLCV) models.CorrelationResult {
	returns := DailyReturns(candles)
	daily := DailySentiment(articles)

	result := models.CorrelationResult{
		DailySentiment: daily,
		Volatility:     volatility(returns),
	}

	// Inner join on date, dropping non-finite values from either side.
	dates := make([]string, 0, len(daily))
	for date := range daily {
		if _, ok := returns[date]; ok {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)

	var sentSeries, retSeries []float64
	for _, date := range dates {
		s, r := daily[date], returns[date]
		if !isFinite(s) || !isFinite(r) {
			continue
		}
		sentSeries = append(sentSeries, s)
		retSeries = append(retSeries, r)
	}
	result.Points = len(sentSeries)

	if len(sentSeries) < 2 || isConstant(sentSeries) || isConstant(retSeries) {
		return result
	}

	r, err := stats.Pearson(sentSeries, retSeries)
	if err != nil || !isFinite(r) {
		return result
	}
	result.Correlation = r
	return result
}

// volatility is the population standard deviation of the return series.
func volatility(returns map[string]float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	series := make([]float64, 0, len(returns))
	for _, r := range returns {
		if isFinite(r) {
			series = append(series, r)
		}
	}
	if len(series) == 0 {
		return 0
	}
	sd, err := stats.StandardDeviationPopulation(series)
	if err != nil || !isFinite(sd) {
		return 0
	}
	return sd
}

func isConstant(series []float64) bool {
	for i := 1; i < len(series); i++ {
		if series[i] != series[0] {
			return false
		}
	}
	return true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
