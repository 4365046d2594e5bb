package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/semaphore"

	"place_sentiment/internal/domain"
)

var (
	batchFile    string
	batchWorkers int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Runs one search per line of a file and prints a summary per query",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, err := newSearchService(cfg)
		if err != nil {
			return err
		}

		in := io.Reader(os.Stdin)
		if batchFile != "-" {
			f, err := os.Open(batchFile)
			if err != nil {
				return fmt.Errorf("open queries: %w", err)
			}
			defer f.Close()
			in = f
		}
		queries, err := readQueries(in)
		if err != nil {
			return err
		}

		workers := batchWorkers
		if workers <= 0 {
			workers = cfg.BatchWorkers
		}
		log.Info().Int("queries", len(queries)).Int("workers", workers).Msg("batch starting")

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		err = runBatch(cmd.Context(), svc, queries, workers, func(o domain.SearchOutcome) {
			fmt.Fprintln(tw, summaryLine(o))
		})
		if ferr := tw.Flush(); err == nil {
			err = ferr
		}
		return err
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "-", "file with one query per line (- for stdin)")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "concurrent searches (default BATCH_WORKERS)")
	rootCmd.AddCommand(batchCmd)
}

// readQueries returns the non-blank lines of r, trimmed.
func readQueries(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if q := strings.TrimSpace(sc.Text()); q != "" {
			out = append(out, q)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read queries: %w", err)
	}
	return out, nil
}

type searcher interface {
	Search(ctx context.Context, query string) domain.SearchOutcome
}

type indexed struct {
	i   int
	out domain.SearchOutcome
}

// runBatch searches queries on at most workers goroutines and hands each
// outcome to emit on the calling goroutine, in input order. Cancelling ctx
// stops new searches from starting; started ones still finish.
func runBatch(ctx context.Context, s searcher, queries []string, workers int, emit func(domain.SearchOutcome)) error {
	if workers <= 0 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	results := make(chan indexed)

	var launchErr error
	go func() {
		var wg sync.WaitGroup
		defer close(results)
		defer wg.Wait()

		for i, q := range queries {
			// acquire before launching the goroutine; release inside it
			if err := sem.Acquire(ctx, 1); err != nil {
				launchErr = err
				return
			}
			wg.Add(1)
			go func(i int, q string) {
				defer wg.Done()
				defer sem.Release(1)
				results <- indexed{i: i, out: s.Search(ctx, q)}
			}(i, q)
		}
	}()

	pending := make(map[int]domain.SearchOutcome)
	next := 0
	for r := range results {
		pending[r.i] = r.out
		for {
			o, ok := pending[next]
			if !ok {
				break
			}
			emit(o)
			delete(pending, next)
			next++
		}
	}
	// launchErr is written before close(results), so reading it here is safe
	if launchErr != nil {
		return fmt.Errorf("batch interrupted after %d of %d queries: %w", next, len(queries), launchErr)
	}
	return nil
}
