// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline processes single dates end to end: idempotency check,
// fetch, extract, clean, persist.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/meshintel/fedcorpus/internal/cleaner"
	"github.com/meshintel/fedcorpus/internal/extract"
	"github.com/meshintel/fedcorpus/internal/fetch"
	"github.com/meshintel/fedcorpus/internal/fsutil"
	"github.com/meshintel/fedcorpus/pkg/types"
)

// Outcome classifies the result of processing one date.
type Outcome string

const (
	// OutcomeSaved means the cleaned transcript was written.
	OutcomeSaved Outcome = "saved"
	// OutcomeSkipped means the output file already existed; no network
	// activity took place.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeNotFound means the archive has no document for the date.
	OutcomeNotFound Outcome = "not-found"
	// OutcomeEmpty means the document was fetched but yielded no text.
	OutcomeEmpty Outcome = "empty-extraction"
	// OutcomeFailed covers every other failure: exhausted retries,
	// unparseable PDFs, and write errors.
	OutcomeFailed Outcome = "failed"
)

// Result holds the outcome of processing one date.
type Result struct {
	Date     string
	Outcome  Outcome
	Attempts int
	Pages    int
	Err      error
}

// Pipeline processes dates against one archive and one output directory.
type Pipeline struct {
	Client    *http.Client
	Fetch     types.FetchConfig
	OutputDir string
	Cleaner   *cleaner.Cleaner
}

// TextPath returns the output file path for a date. The file's existence is
// the durable record that the date has been processed.
func (p *Pipeline) TextPath(date string) string {
	return filepath.Join(p.OutputDir, types.TextName(date))
}

// Process handles one date: skip if the output file exists, otherwise
// fetch, extract, clean, and persist. It never returns an error; every
// failure is folded into the Result so one date cannot abort a batch.
// Per-date status lines and warnings go to w.
func (p *Pipeline) Process(ctx context.Context, date string, w io.Writer) Result {
	outPath := p.TextPath(date)
	if _, err := os.Stat(outPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", date)
		return Result{Date: date, Outcome: OutcomeSkipped}
	}

	fr := fetch.Fetch(ctx, p.Client, date, p.Fetch, w)
	switch fr.Status {
	case fetch.NotFound:
		fmt.Fprintf(w, "not found: %s\n", date)
		return Result{Date: date, Outcome: OutcomeNotFound, Attempts: fr.Attempts}
	case fetch.Exhausted:
		fmt.Fprintf(w, "failed:  %s (%v)\n", date, fr.Err)
		return Result{Date: date, Outcome: OutcomeFailed, Attempts: fr.Attempts, Err: fr.Err}
	}

	pages, err := extract.Pages(fr.Body, w)
	if err != nil {
		if errors.Is(err, extract.ErrNoText) {
			fmt.Fprintf(w, "empty:   %s (no text extracted)\n", date)
			return Result{Date: date, Outcome: OutcomeEmpty, Attempts: fr.Attempts, Err: err}
		}
		fmt.Fprintf(w, "failed:  %s (%v)\n", date, err)
		return Result{Date: date, Outcome: OutcomeFailed, Attempts: fr.Attempts, Err: err}
	}

	text := p.Cleaner.Clean(strings.Join(pages, "\n"))
	if text == "" {
		fmt.Fprintf(w, "empty:   %s (nothing left after cleaning)\n", date)
		return Result{Date: date, Outcome: OutcomeEmpty, Attempts: fr.Attempts, Pages: len(pages)}
	}

	if err := fsutil.WriteFileAtomic(outPath, []byte(text)); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", date, err)
		return Result{Date: date, Outcome: OutcomeFailed, Attempts: fr.Attempts, Pages: len(pages), Err: err}
	}

	fmt.Fprintf(w, "saved:   %s (%d pages)\n", date, len(pages))
	return Result{Date: date, Outcome: OutcomeSaved, Attempts: fr.Attempts, Pages: len(pages)}
}
