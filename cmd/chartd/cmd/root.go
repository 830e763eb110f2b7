package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/chartd/config"
	"github.com/rustyeddy/chartd/journal"
	"github.com/rustyeddy/chartd/oanda"
)

var rootCmd = &cobra.Command{
	Use:   "chartd",
	Short: "Technical indicator engine and OANDA market-data proxy",
	Long: `Chartd computes technical indicators (EMA, RSI, MACD, Bollinger,
ATR, ADX, Stochastic, Ichimoku) over OHLC candle series and serves them
over HTTP, alongside a thin read-only proxy to OANDA's v20 REST API.

Commands:
  serve    Run the HTTP server
  analyze  Fetch candles from OANDA and print one analysis
  journal  Query the analysis journal`,
}

var (
	cfgFile string
	envFile string
	verbose bool
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file with OANDA credentials")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// loadConfig assembles the effective configuration: file, then .env,
// then process environment, in that order.
func loadConfig() (*config.Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	} else {
		// A .env in the working directory is optional.
		_ = godotenv.Load()
	}

	var cfg *config.Config
	if cfgFile != "" {
		loaded, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// newBroker builds the OANDA client, or returns nil when no token is
// configured. A nil broker is fine for serve (proxy answers 503) but
// an error for analyze, which cannot run without candles.
func newBroker(cfg *config.Config) (*oanda.Client, error) {
	if cfg.Oanda.Token == "" {
		return nil, nil
	}
	return oanda.NewClient(oanda.Config{
		BaseURL:   cfg.Oanda.BaseURL,
		Env:       cfg.Oanda.Env,
		Token:     cfg.Oanda.Token,
		AccountID: cfg.Oanda.AccountID,
	})
}

func openJournal(cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "", "none":
		return journal.Nop{}, nil
	case "csv":
		return journal.NewCSV(cfg.Journal.Path)
	case "sqlite":
		return journal.NewSQLite(cfg.Journal.Path)
	}
	return nil, fmt.Errorf("unknown journal type %q", cfg.Journal.Type)
}
