package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/chartd/analysis"
	"github.com/rustyeddy/chartd/indicators"
	"github.com/rustyeddy/chartd/oanda"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Fetch candles from OANDA and print one analysis",
	Long: `Analyze fetches recent candles for an instrument and prints the full
indicator analysis as JSON. Default parameters are used unless a params
file is given.

Examples:
  chartd analyze -i EUR_USD -g H1 -n 200
  chartd analyze -i GBP_USD -g M15 --variant simplified
  chartd analyze -i EUR_USD --params my-params.json`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

var (
	anInstrument  string
	anGranularity string
	anCount       int
	anVariant     string
	anParamsFile  string
	anSummaryOnly bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&anInstrument, "instrument", "i", "EUR_USD", "instrument, e.g. EUR_USD")
	analyzeCmd.Flags().StringVarP(&anGranularity, "granularity", "g", "H1", "candle granularity (M1, M5, H1, D, ...)")
	analyzeCmd.Flags().IntVarP(&anCount, "count", "n", 200, "number of candles to fetch (max 5000)")
	analyzeCmd.Flags().StringVar(&anVariant, "variant", "", "indicator variant (standard or simplified)")
	analyzeCmd.Flags().StringVar(&anParamsFile, "params", "", "JSON file with indicator parameters")
	analyzeCmd.Flags().BoolVar(&anSummaryOnly, "summary", false, "print only the latest values, not full series")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	broker, err := newBroker(cfg)
	if err != nil {
		return fmt.Errorf("broker: %w", err)
	}
	if broker == nil {
		return fmt.Errorf("analyze requires an OANDA token (set OANDA_TOKEN or oanda.token in the config)")
	}

	var params analysis.Params
	if anParamsFile != "" {
		data, err := os.ReadFile(anParamsFile)
		if err != nil {
			return fmt.Errorf("read params file: %w", err)
		}
		if err := json.Unmarshal(data, &params); err != nil {
			return fmt.Errorf("parse params file: %w", err)
		}
	}
	if anVariant != "" {
		params.Variant = indicators.Variant(anVariant)
	} else if params.Variant == "" {
		params.Variant = indicators.Variant(cfg.Engine.Variant)
	}

	candles, err := broker.GetWireCandles(cmd.Context(), oanda.CandlesRequest{
		Instrument:  anInstrument,
		Granularity: oanda.Granularity(anGranularity),
		Count:       anCount,
	})
	if err != nil {
		return fmt.Errorf("fetch candles: %w", err)
	}

	res, err := analysis.Analyze(analysis.Request{
		Instrument:  anInstrument,
		Granularity: anGranularity,
		Candles:     candles,
		Params:      params,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if anSummaryOnly {
		return enc.Encode(res.Last)
	}
	return enc.Encode(res)
}
