// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshintel/fedcorpus/internal/ledger"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show recorded processing outcomes from the status ledger",
	Long: `Status lists the ledger of per-date outcomes recorded by previous scrape
runs: what was saved, skipped, missing from the archive, or failed, with
attempt and page counts. The ledger is informational only; the scrape
decides what to skip by output file existence alone.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().String("output-dir", "", "output directory (default "+defaultOutputDir+")")
	statusCmd.Flags().String("export", "", "write the ledger to the given YAML file")

	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	outputDir, _ := cmd.Flags().GetString("output-dir")
	outputDir = setting(outputDir, "corpus.output_dir", viper.GetString, defaultOutputDir)
	exportPath, _ := cmd.Flags().GetString("export")

	store, err := ledger.Open(outputDir)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()

	if exportPath != "" {
		if err := store.ExportYAML(ctx, exportPath); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "exported ledger to %s\n", exportPath)
		return nil
	}

	entries, err := store.Entries(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stdout, "ledger is empty")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-10s %-18s %8s %6s  %s\n", "DATE", "OUTCOME", "ATTEMPTS", "PAGES", "PROCESSED AT")
	for _, e := range entries {
		fmt.Fprintf(os.Stdout, "%-10s %-18s %8d %6d  %s\n",
			e.Date, e.Outcome, e.Attempts, e.Pages, e.ProcessedAt)
		if e.Error != "" {
			fmt.Fprintf(os.Stdout, "           error: %s\n", e.Error)
		}
	}
	return nil
}
