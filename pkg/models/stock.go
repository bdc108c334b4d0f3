package models

import "time"

// OHLCV represents a single daily candlestick bar of price data.
type OHLCV struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
	AdjClose  float64   `json:"adj_close,omitempty"`
}

// CompanyInfo holds loosely-typed company metadata as returned by the
// market data provider. May be empty when the provider has no profile data.
type CompanyInfo map[string]any

// Name returns the company name from the metadata, if present.
func (ci CompanyInfo) Name() string {
	for _, key := range []string{"longName", "shortName", "name"} {
		if v, ok := ci[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
