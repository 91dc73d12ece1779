// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshintel/fedcorpus/internal/batch"
	"github.com/meshintel/fedcorpus/internal/cleaner"
	"github.com/meshintel/fedcorpus/internal/ledger"
	"github.com/meshintel/fedcorpus/internal/pipeline"
	"github.com/meshintel/fedcorpus/internal/sources"
	"github.com/meshintel/fedcorpus/pkg/types"
)

const (
	defaultBaseURL    = "https://www.federalreserve.gov/mediacenter/files/"
	defaultOutputDir  = "fed_press_conferences"
	defaultDatesFile  = "press_conference_dates.txt"
	defaultNamesFile  = "names.txt"
	defaultTimeout    = 30 * time.Second
	defaultDelay      = 1 * time.Second
	defaultMaxRetries = 3
	defaultRetryDelay = 2 * time.Second
	defaultUserAgent  = "fedcorpus/0.1"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Download and clean transcripts for the configured dates",
	Long: `Scrape processes the date list in order: for each date it downloads the
transcript PDF, extracts the page text, cleans it, and writes one text file.
Dates whose output file already exists are skipped without a download. A
fixed delay between dates throttles requests to the archive.`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().String("dates", "", "date list file (default "+defaultDatesFile+")")
	scrapeCmd.Flags().String("names", "", "name registry file (default "+defaultNamesFile+")")
	scrapeCmd.Flags().String("output-dir", "", "output directory (default "+defaultOutputDir+")")
	scrapeCmd.Flags().String("base-url", "", "archive base URL")
	scrapeCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	scrapeCmd.Flags().Duration("delay", 0, "delay between consecutive dates (default 1s)")
	scrapeCmd.Flags().Int("max-retries", 0, "download attempts per date (default 3)")
	scrapeCmd.Flags().Duration("retry-delay", 0, "pause between failed attempts (default 2s)")
	scrapeCmd.Flags().Bool("reclean", false, "re-clean all saved transcripts after scraping")
	scrapeCmd.Flags().Bool("no-ledger", false, "skip recording outcomes in the status ledger")

	rootCmd.AddCommand(scrapeCmd)
}

// setting resolves a config value: explicit flag first, then the config
// file or environment via viper, then the built-in default.
func setting[T comparable](flag T, key string, viperGet func(string) T, fallback T) T {
	var zero T
	if flag != zero {
		return flag
	}
	if v := viperGet(key); v != zero {
		return v
	}
	return fallback
}

func scrapeConfig(cmd *cobra.Command) types.PipelineConfig {
	baseURL, _ := cmd.Flags().GetString("base-url")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	maxRetries, _ := cmd.Flags().GetInt("max-retries")
	retryDelay, _ := cmd.Flags().GetDuration("retry-delay")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	delay, _ := cmd.Flags().GetDuration("delay")
	datesFile, _ := cmd.Flags().GetString("dates")
	namesFile, _ := cmd.Flags().GetString("names")

	return types.PipelineConfig{
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   setting(timeout, "fetch.timeout", viper.GetDuration, defaultTimeout),
				UserAgent: setting("", "fetch.user_agent", viper.GetString, defaultUserAgent),
			},
			BaseURL:    setting(baseURL, "fetch.base_url", viper.GetString, defaultBaseURL),
			MaxRetries: setting(maxRetries, "fetch.max_retries", viper.GetInt, defaultMaxRetries),
			RetryDelay: setting(retryDelay, "fetch.retry_delay", viper.GetDuration, defaultRetryDelay),
		},
		Corpus: types.CorpusConfig{
			OutputDir: setting(outputDir, "corpus.output_dir", viper.GetString, defaultOutputDir),
			Delay:     setting(delay, "corpus.delay", viper.GetDuration, defaultDelay),
			DatesFile: setting(datesFile, "corpus.dates_file", viper.GetString, defaultDatesFile),
			NamesFile: setting(namesFile, "corpus.names_file", viper.GetString, defaultNamesFile),
		},
	}
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg := scrapeConfig(cmd)
	reclean, _ := cmd.Flags().GetBool("reclean")
	noLedger, _ := cmd.Flags().GetBool("no-ledger")

	// An unreadable date list aborts before any date is attempted.
	dates, err := sources.Dates(cfg.Corpus.DatesFile)
	if err != nil {
		return err
	}
	if len(dates) == 0 {
		fmt.Fprintln(os.Stderr, "no dates loaded from file")
		return nil
	}

	names, err := sources.Names(cfg.Corpus.NamesFile, os.Stderr)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "loaded %d dates, %d names\n", len(dates), len(names))

	if err := os.MkdirAll(cfg.Corpus.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	c := cleaner.New(names)
	p := &pipeline.Pipeline{
		Client:    &http.Client{Timeout: cfg.Fetch.Timeout},
		Fetch:     cfg.Fetch,
		OutputDir: cfg.Corpus.OutputDir,
		Cleaner:   c,
	}
	runner := &batch.Runner{
		Pipeline: p,
		Delay:    cfg.Corpus.Delay,
	}

	if !noLedger {
		store, err := ledger.Open(cfg.Corpus.OutputDir)
		if err != nil {
			return err
		}
		defer store.Close()
		runner.Ledger = store
	}

	// Interrupts finish the current date and stop the batch between dates,
	// so no partially-written file is left under a final name.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, runErr := runner.Run(ctx, dates, os.Stdout)
	fmt.Fprintf(os.Stdout, "scrape completed: %d/%d successful\n", summary.Success(), len(dates))
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}

	if reclean && runErr == nil {
		if _, err := batch.Reclean(cfg.Corpus.OutputDir, c, os.Stdout); err != nil {
			return err
		}
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d date(s) failed", summary.Failed)
	}
	return nil
}
