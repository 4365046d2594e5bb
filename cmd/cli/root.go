package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"place_sentiment/internal/adapters/observability"
	"place_sentiment/internal/adapters/places"
	"place_sentiment/internal/app"
	"place_sentiment/internal/sentiment"
	"place_sentiment/internal/shared"
)

var (
	envFile string
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:           "placesent",
	Short:         "placesent looks up a place's reviews and labels their sentiment.",
	Long:          `A command-line client for the review pipeline: resolve a place by name, fetch its reviews and classify each one as Positive, Neutral or Negative.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&envFile, "env-file", ".env", "dotenv file to read before the environment")
	pf.String("policy", "", "sentiment policy: ternary or binary")
	pf.Int("max-reviews", 0, "cap on reviews per place (0 = unbounded; unset keeps MAX_REVIEWS)")
	pf.String("language", "", "display language requested for reviews")
	pf.String("log-level", "", "log level (debug, info, warn, error)")

	for key, flag := range map[string]string{
		"SENTIMENT_POLICY": "policy",
		"MAX_REVIEWS":      "max-reviews",
		"PLACES_LANGUAGE":  "language",
		"LOG_LEVEL":        "log-level",
	} {
		if err := v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			fmt.Fprintf(os.Stderr, "binding flag %s: %v\n", flag, err)
			os.Exit(1)
		}
	}
}

// loadConfig reads config and installs the global logger on stderr so that
// stdout carries results only.
func loadConfig() (shared.Config, error) {
	cfg, err := shared.LoadFrom(v, envFile)
	if err != nil {
		return shared.Config{}, err
	}
	l := observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
	log.Logger = l.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	return cfg, nil
}

func newSearchService(cfg shared.Config) (*app.SearchService, error) {
	client, err := places.New(cfg.PlacesBase, cfg.PlacesKey, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize places client: %w", err)
	}
	classifier := sentiment.NewClassifier(sentiment.NewVader(), cfg.Policy)
	return app.NewSearchService(client, classifier, app.SearchOptions{
		Language:      cfg.Language,
		MaxReviews:    cfg.MaxReviews,
		ErrorsAsEmpty: cfg.ErrorsAsEmpty,
	}), nil
}
