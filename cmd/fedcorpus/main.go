// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the fedcorpus CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the fedcorpus CLI.
var rootCmd = &cobra.Command{
	Use:   "fedcorpus",
	Short: "Build a clean text corpus of FOMC press conference transcripts",
	Long: `fedcorpus downloads dated press conference transcript PDFs from the
Federal Reserve archive, extracts their text, and normalizes it into a corpus
of one UTF-8 text file per date. Cleaning removes recurring boilerplate and
tags known personal names.

The scrape is idempotent: a date whose output file already exists is skipped
without touching the network. Each stage is a subcommand: scrape, reclean,
and status.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./fedcorpus.yaml or ~/.config/fedcorpus/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("fedcorpus")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "fedcorpus"))
		}
	}

	viper.SetEnvPrefix("FEDCORPUS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
