// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshintel/fedcorpus/internal/batch"
	"github.com/meshintel/fedcorpus/internal/cleaner"
	"github.com/meshintel/fedcorpus/internal/sources"
)

var recleanCmd = &cobra.Command{
	Use:   "reclean",
	Short: "Re-apply the cleaning pass to all saved transcripts",
	Long: `Reclean re-runs the boilerplate removal, whitespace normalization, and
name tagging over every transcript text file in the output directory,
overwriting each file in place. It never touches the network, so it can be
run whenever the name registry or cleaning rules change.

Name tagging is not idempotent: re-cleaning a transcript whose names are
already tagged wraps them in a second layer of tags.`,
	RunE: runReclean,
}

func init() {
	recleanCmd.Flags().String("names", "", "name registry file (default "+defaultNamesFile+")")
	recleanCmd.Flags().String("output-dir", "", "output directory (default "+defaultOutputDir+")")

	rootCmd.AddCommand(recleanCmd)
}

func runReclean(cmd *cobra.Command, args []string) error {
	outputDir, _ := cmd.Flags().GetString("output-dir")
	namesFile, _ := cmd.Flags().GetString("names")
	outputDir = setting(outputDir, "corpus.output_dir", viper.GetString, defaultOutputDir)
	namesFile = setting(namesFile, "corpus.names_file", viper.GetString, defaultNamesFile)

	names, err := sources.Names(namesFile, os.Stderr)
	if err != nil {
		return err
	}

	res, err := batch.Reclean(outputDir, cleaner.New(names), os.Stdout)
	if err != nil {
		return err
	}
	if res.Failed > 0 {
		return fmt.Errorf("%d file(s) failed cleaning", res.Failed)
	}
	return nil
}
