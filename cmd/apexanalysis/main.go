// ApexAnalysis — news sentiment vs. price correlation for listed stocks.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/apexlabs/apexanalysis/api"
	"github.com/apexlabs/apexanalysis/internal/aggregator"
	"github.com/apexlabs/apexanalysis/internal/config"
	"github.com/apexlabs/apexanalysis/internal/report"
	"github.com/apexlabs/apexanalysis/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "apexanalysis",
	Short: "ApexAnalysis — news sentiment vs. price correlation for stocks",
	Long: `ApexAnalysis correlates public news sentiment about a listed stock
with that stock's price behavior: it collects recent headlines, scores each
article with a multi-signal sentiment engine, aligns scores to trading days,
and measures the correlation between daily sentiment and daily return.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ApexAnalysis %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Analyze Command ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze [ticker]",
	Short: "Run sentiment/price correlation analysis on a stock",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ticker := utils.NormalizeTicker(args[0])
		period, _ := cmd.Flags().GetString("period")
		asJSON, _ := cmd.Flags().GetBool("json")
		noReport, _ := cmd.Flags().GetBool("no-report")
		if period == "" {
			period = cfg.Analysis.DefaultPeriod
		}

		log := config.NewLogger(cfg.Logging)
		agg := aggregator.NewFromConfig(cfg, log)

		result := agg.RunAnalysis(cmd.Context(), ticker, period)

		if cfg.Report.Enabled && !noReport {
			writer := report.NewWriter(cfg.Report.Dir, log)
			if saved, err := writer.Write(result); err != nil {
				log.Errorf("failed to save report: %v", err)
			} else {
				log.Infof("generated %d report files for %s", len(saved), ticker)
			}
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		fmt.Printf("🔍 %s (%s)\n", result.Ticker, result.Period)
		if name := result.Info.Name(); name != "" {
			fmt.Printf("   Company:        %s\n", name)
		}
		fmt.Printf("   Price bars:     %d\n", len(result.Candles))
		fmt.Printf("   Articles:       %d\n", len(result.News))
		fmt.Printf("   Avg Sentiment:  %+.4f\n", result.Sentiment.Average)
		fmt.Printf("   Correlation:    %+.4f\n", result.Correlation)
		fmt.Printf("   Volatility:     %.4f\n", result.Volatility)
		if result.Error != "" {
			fmt.Printf("   ⚠️  %s\n", result.Error)
		}
		if len(result.News) > 0 {
			fmt.Println("\n   Top headlines by sentiment:")
			limit := len(result.News)
			if limit > 5 {
				limit = 5
			}
			for _, a := range result.News[:limit] {
				fmt.Printf("   %+0.3f  [%s]  %s\n", a.Sentiment.Compound, a.Sentiment.Label, a.Title)
			}
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().String("period", "", "price history period (e.g. 6mo, 1y)")
	analyzeCmd.Flags().Bool("json", false, "print the full report as JSON")
	analyzeCmd.Flags().Bool("no-report", false, "skip writing report files")
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := config.NewLogger(cfg.Logging)
		agg := aggregator.NewFromConfig(cfg, log)

		srv := api.NewServer(cfg, agg, agg.Market(), agg.News(), log)
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		log.Infof("starting ApexAnalysis API server on %s", addr)
		return srv.ListenAndServe(addr)
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  ApexAnalysis — System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:          %s (%s)\n", version, commit)
		fmt.Println()
		fmt.Println("  Configuration:")
		fmt.Printf("    Respect robots:   %v\n", cfg.Scrape.RespectRobots)
		fmt.Printf("    Allow paywalled:  %v\n", cfg.Scrape.AllowPaywalled)
		fmt.Printf("    Request timeout:  %ds\n", cfg.Scrape.RequestTimeoutSec)
		fmt.Printf("    Request delay:    %ds\n", cfg.Scrape.RequestDelaySec)
		fmt.Printf("    User agent:       %s\n", cfg.Scrape.UserAgent)
		fmt.Printf("    Articles per run: %d\n", cfg.News.NumArticles)
		fmt.Printf("    Default period:   %s\n", cfg.Analysis.DefaultPeriod)
		fmt.Printf("    Report dir:       %s (enabled: %v)\n", cfg.Report.Dir, cfg.Report.Enabled)
		fmt.Printf("    API Server:       %s:%d\n", cfg.API.Host, cfg.API.Port)
		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}
