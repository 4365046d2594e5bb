package main

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var outputJSON bool

var searchCmd = &cobra.Command{
	Use:   "search <place name or address>",
	Short: "Fetches a place's reviews and labels their sentiment",
	Args:  cobra.ArbitraryArgs,
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, err := newSearchService(cfg)
		if err != nil {
			return err
		}

		out := svc.Search(context.Background(), strings.Join(args, " "))
		if outputJSON {
			return writeJSON(os.Stdout, out)
		}
		return writeTable(os.Stdout, out)
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	searchCmd.Flags().BoolVar(&outputJSON, "json", false, "Output the outcome as JSON")
	rootCmd.AddCommand(searchCmd)
}
