// Package report persists analysis results under a per-ticker directory:
// a JSON summary, the annotated news as JSON, and the price history as CSV.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/apexlabs/apexanalysis/pkg/models"
	"github.com/apexlabs/apexanalysis/pkg/utils"
)

// Writer saves report files beneath a base directory, one subdirectory per
// ticker, with timestamped filenames so successive runs never overwrite.
type Writer struct {
	dir string
	log *logrus.Logger
	now func() time.Time
}

// NewWriter creates a report writer rooted at dir.
func NewWriter(dir string, log *logrus.Logger) *Writer {
	return &Writer{dir: dir, log: log, now: time.Now}
}

// summary is the compact top-level report file; the bulky article and candle
// data live in their own files next to it.
type summary struct {
	Ticker          string                  `json:"ticker"`
	Period          string                  `json:"period"`
	Timestamp       time.Time               `json:"timestamp"`
	PriceDataPoints int                     `json:"price_data_points"`
	ArticlesScored  int                     `json:"articles_scored"`
	Sentiment       models.SentimentMetrics `json:"sentiment_summary"`
	DailySentiment  models.DailySentiment   `json:"daily_sentiment"`
	Correlation     float64                 `json:"correlation"`
	Volatility      float64                 `json:"volatility"`
	SavedFiles      []string                `json:"saved_files"`
	Error           string                  `json:"error,omitempty"`
}

// Write persists the report and returns the paths of every file created.
func (w *Writer) Write(report *models.Report) ([]string, error) {
	tickerDir := filepath.Join(w.dir, report.Ticker)
	if err := os.MkdirAll(tickerDir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}

	stamp := w.now().Format("20060102_150405")
	var saved []string

	if len(report.Candles) > 0 {
		path := filepath.Join(tickerDir, fmt.Sprintf("%s_price_data_%s.csv", report.Ticker, stamp))
		if err := writePriceCSV(path, report.Candles); err != nil {
			return saved, fmt.Errorf("save price data: %w", err)
		}
		w.log.Infof("saved price data to %s", path)
		saved = append(saved, path)
	}

	if len(report.News) > 0 {
		path := filepath.Join(tickerDir, fmt.Sprintf("%s_news_%s.json", report.Ticker, stamp))
		if err := writeJSON(path, report.News); err != nil {
			return saved, fmt.Errorf("save news data: %w", err)
		}
		w.log.Infof("saved news data to %s", path)
		saved = append(saved, path)
	}

	summaryPath := filepath.Join(tickerDir, fmt.Sprintf("%s_summary_%s.json", report.Ticker, stamp))
	s := summary{
		Ticker:          report.Ticker,
		Period:          report.Period,
		Timestamp:       report.Timestamp,
		PriceDataPoints: len(report.Candles),
		ArticlesScored:  len(report.News),
		Sentiment:       report.Sentiment,
		DailySentiment:  report.DailySentiment,
		Correlation:     report.Correlation,
		Volatility:      report.Volatility,
		SavedFiles:      saved,
		Error:           report.Error,
	}
	if err := writeJSON(summaryPath, s); err != nil {
		return saved, fmt.Errorf("save summary: %w", err)
	}
	w.log.Infof("saved summary to %s", summaryPath)
	saved = append(saved, summaryPath)

	return saved, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func writePriceCSV(path string, candles []models.OHLCV) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"date", "open", "high", "low", "close", "volume"}); err != nil {
		return err
	}
	for _, c := range candles {
		row := []string{
			utils.DateKey(c.Timestamp),
			formatFloat(c.Open),
			formatFloat(c.High),
			formatFloat(c.Low),
			formatFloat(c.Close),
			strconv.FormatInt(c.Volume, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
