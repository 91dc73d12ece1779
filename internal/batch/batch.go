// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch drives the per-date pipeline over an ordered date list with
// a politeness throttle, and offers a bulk re-clean pass over saved
// transcripts.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/meshintel/fedcorpus/internal/cleaner"
	"github.com/meshintel/fedcorpus/internal/fsutil"
	"github.com/meshintel/fedcorpus/internal/pipeline"
	"github.com/meshintel/fedcorpus/pkg/types"
)

// sleep implements the politeness throttle. Tests override it to count
// pauses without waiting.
var sleep = time.Sleep

// Recorder receives per-date results as the batch progresses. The status
// ledger implements it; a nil Recorder disables recording.
type Recorder interface {
	Record(ctx context.Context, res pipeline.Result) error
}

// Summary holds aggregate counts for a batch run.
type Summary struct {
	Saved    int
	Skipped  int
	NotFound int
	Empty    int
	Failed   int
}

// Success counts dates whose output file exists after the run: newly saved
// plus already present.
func (s Summary) Success() int {
	return s.Saved + s.Skipped
}

// Total returns the number of dates processed.
func (s Summary) Total() int {
	return s.Saved + s.Skipped + s.NotFound + s.Empty + s.Failed
}

// Runner sequences the pipeline across dates. Processing is strictly
// sequential: one date finishes before the next begins.
type Runner struct {
	Pipeline *pipeline.Pipeline

	// Delay is the pause after each processed date, applied regardless of
	// outcome, including after the last date.
	Delay time.Duration

	// Ledger, when non-nil, records every per-date result.
	Ledger Recorder
}

// Run processes dates in the given order, printing per-date status to w and
// returning aggregate counts. Individual failures never stop the batch; the
// only early exit is context cancellation, which is honored between dates
// so the current date always completes or fails cleanly.
func (r *Runner) Run(ctx context.Context, dates []string, w io.Writer) (Summary, error) {
	var s Summary
	for _, date := range dates {
		if err := ctx.Err(); err != nil {
			fmt.Fprintf(w, "\ninterrupted after %d of %d dates\n", s.Total(), len(dates))
			return s, err
		}

		res := r.Pipeline.Process(ctx, date, w)
		switch res.Outcome {
		case pipeline.OutcomeSaved:
			s.Saved++
		case pipeline.OutcomeSkipped:
			s.Skipped++
		case pipeline.OutcomeNotFound:
			s.NotFound++
		case pipeline.OutcomeEmpty:
			s.Empty++
		default:
			s.Failed++
		}

		if r.Ledger != nil {
			if err := r.Ledger.Record(ctx, res); err != nil {
				fmt.Fprintf(w, "warning: ledger: %v\n", err)
			}
		}

		if r.Delay > 0 {
			sleep(r.Delay)
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d saved, %d skipped, %d not found, %d empty, %d failed (total: %d)\n",
		s.Saved, s.Skipped, s.NotFound, s.Empty, s.Failed, s.Total())
	return s, nil
}

// RecleanResult holds counts from a bulk re-clean pass.
type RecleanResult struct {
	Cleaned int
	Failed  int
}

// Reclean re-applies c to every saved transcript in dir, treating the
// current file content as raw input and overwriting in place. It is
// decoupled from fetching and may run any time after transcripts exist.
// A failure on one file is logged to w and does not block the rest.
func Reclean(dir string, c *cleaner.Cleaner, w io.Writer) (RecleanResult, error) {
	matches, err := filepath.Glob(filepath.Join(dir, types.FilePrefix+"*.txt"))
	if err != nil {
		return RecleanResult{}, fmt.Errorf("scanning %s: %w", dir, err)
	}
	if len(matches) == 0 {
		fmt.Fprintln(w, "no transcript files found to clean")
		return RecleanResult{}, nil
	}

	var res RecleanResult
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", filepath.Base(path), err)
			res.Failed++
			continue
		}
		cleaned := c.Clean(string(data))
		if err := fsutil.WriteFileAtomic(path, []byte(cleaned)); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", filepath.Base(path), err)
			res.Failed++
			continue
		}
		res.Cleaned++
	}

	fmt.Fprintf(w, "\nReclean summary: %d cleaned, %d failed (total: %d)\n",
		res.Cleaned, res.Failed, res.Cleaned+res.Failed)
	return res, nil
}
