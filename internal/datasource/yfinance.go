package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/apexlabs/apexanalysis/pkg/models"
	"github.com/apexlabs/apexanalysis/pkg/utils"
)

// YFinance implements MarketDataSource using the Yahoo Finance API.
type YFinance struct {
	baseURL   string
	userAgent string
	cache     *Cache
	limiter   *RateLimiter
}

// NewYFinance creates a new Yahoo Finance data source.
func NewYFinance(userAgent string) *YFinance {
	return &YFinance{
		baseURL:   "https://query1.finance.yahoo.com",
		userAgent: userAgent,
		cache:     NewCache(15 * time.Minute),
		limiter:   NewRateLimiter(5, time.Second), // 5 req/s
	}
}

// SetBaseURL overrides the API base URL. Used by tests.
func (y *YFinance) SetBaseURL(u string) { y.baseURL = u }

// Name returns the data source name.
func (y *YFinance) Name() string { return "Yahoo Finance" }

// --- Yahoo Finance API types ---

type yfChartResponse struct {
	Chart struct {
		Result []yfChartResult `json:"result"`
		Error  *yfError        `json:"error"`
	} `json:"chart"`
}

type yfChartResult struct {
	Meta       yfChartMeta  `json:"meta"`
	Timestamp  []int64      `json:"timestamp"`
	Indicators yfIndicators `json:"indicators"`
}

type yfChartMeta struct {
	Symbol             string  `json:"symbol"`
	Currency           string  `json:"currency"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
}

type yfIndicators struct {
	Quote    []yfOHLCV    `json:"quote"`
	AdjClose []yfAdjClose `json:"adjclose"`
}

type yfOHLCV struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

type yfAdjClose struct {
	AdjClose []*float64 `json:"adjclose"`
}

type yfQuoteResponse struct {
	QuoteResponse struct {
		Result []models.CompanyInfo `json:"result"`
		Error  *yfError             `json:"error"`
	} `json:"quoteResponse"`
}

type yfError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// --- Public methods ---

// GetHistory returns daily OHLCV candles from the Yahoo Finance chart API.
func (y *YFinance) GetHistory(ctx context.Context, ticker, period string) ([]models.OHLCV, error) {
	symbol := utils.NormalizeTicker(ticker)
	rng := yfRange(period)

	cacheKey := fmt.Sprintf("hist:%s:%s", symbol, rng)
	if cached, ok := y.cache.Get(cacheKey); ok {
		return cached.([]models.OHLCV), nil
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d", y.baseURL, symbol, rng)
	body, _, err := doGet(ctx, url, y.userAgent, map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("yfinance chart %s: %w", symbol, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp yfChartResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse yfinance chart: %w", err)
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("yfinance chart error: %s", resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}

	candles := parseYFCandles(resp.Chart.Result[0])

	y.cache.Set(cacheKey, candles)
	return candles, nil
}

// GetInfo returns company metadata from the Yahoo Finance quote API.
// Missing metadata is not an error; an empty map is a valid result.
func (y *YFinance) GetInfo(ctx context.Context, ticker string) (models.CompanyInfo, error) {
	symbol := utils.NormalizeTicker(ticker)

	cacheKey := "info:" + symbol
	if cached, ok := y.cache.Get(cacheKey); ok {
		return cached.(models.CompanyInfo), nil
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", y.baseURL, symbol)
	body, _, err := doGet(ctx, url, y.userAgent, map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("yfinance quote %s: %w", symbol, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp yfQuoteResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse yfinance quote: %w", err)
	}

	if resp.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("yfinance API error: %s", resp.QuoteResponse.Error.Description)
	}
	if len(resp.QuoteResponse.Result) == 0 {
		return models.CompanyInfo{}, nil
	}

	info := resp.QuoteResponse.Result[0]
	y.cache.SetWithTTL(cacheKey, info, 1*time.Hour)
	return info, nil
}

// --- Helpers ---

func parseYFCandles(result yfChartResult) []models.OHLCV {
	if len(result.Indicators.Quote) == 0 {
		return nil
	}

	q := result.Indicators.Quote[0]
	var adjCloses []*float64
	if len(result.Indicators.AdjClose) > 0 {
		adjCloses = result.Indicators.AdjClose[0].AdjClose
	}

	candles := make([]models.OHLCV, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		c := models.OHLCV{
			Timestamp: time.Unix(ts, 0).UTC(),
		}
		if i < len(q.Open) && q.Open[i] != nil {
			c.Open = *q.Open[i]
		}
		if i < len(q.High) && q.High[i] != nil {
			c.High = *q.High[i]
		}
		if i < len(q.Low) && q.Low[i] != nil {
			c.Low = *q.Low[i]
		}
		if i < len(q.Close) && q.Close[i] != nil {
			c.Close = *q.Close[i]
		}
		if i < len(q.Volume) && q.Volume[i] != nil {
			c.Volume = *q.Volume[i]
		}
		if i < len(adjCloses) && adjCloses[i] != nil {
			c.AdjClose = *adjCloses[i]
		}
		candles = append(candles, c)
	}
	return candles
}

// yfRange maps a user-facing period to a valid Yahoo Finance chart range.
func yfRange(period string) string {
	switch period {
	case "1d", "5d", "1mo", "3mo", "6mo", "1y", "2y", "5y", "10y", "ytd", "max":
		return period
	default:
		return "1y"
	}
}
