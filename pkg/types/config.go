// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the per-attempt HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "fedcorpus/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for retrieving transcript PDFs from the archive.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the archive prefix the document filename is appended to.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// MaxRetries is the total number of download attempts per date (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// RetryDelay is the constant pause between failed attempts (default 2s).
	// Constant rather than exponential: the archive is a static file host
	// and the attempt budget is small.
	RetryDelay time.Duration `json:"retry_delay" yaml:"retry_delay"`
}

// CorpusConfig holds settings for the batch scrape and the output corpus.
type CorpusConfig struct {
	// OutputDir is the directory transcript text files are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Delay is the politeness pause after each processed date (default 1s).
	Delay time.Duration `json:"delay" yaml:"delay"`

	// DatesFile is the newline-delimited list of YYYYMMDD dates to process.
	DatesFile string `json:"dates_file" yaml:"dates_file"`

	// NamesFile is the newline-delimited registry of names to tag in
	// cleaned transcripts. A missing file means no tagging.
	NamesFile string `json:"names_file" yaml:"names_file"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Fetch  FetchConfig  `json:"fetch" yaml:"fetch"`
	Corpus CorpusConfig `json:"corpus" yaml:"corpus"`
}
