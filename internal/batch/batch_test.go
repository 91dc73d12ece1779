// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/meshintel/fedcorpus/internal/cleaner"
	"github.com/meshintel/fedcorpus/internal/pdftest"
	"github.com/meshintel/fedcorpus/internal/pipeline"
	"github.com/meshintel/fedcorpus/pkg/types"
)

// countSleeps replaces the politeness sleep and returns a counter.
func countSleeps(t *testing.T) *int {
	t.Helper()
	var n int
	orig := sleep
	sleep = func(time.Duration) { n++ }
	t.Cleanup(func() { sleep = orig })
	return &n
}

func newRunner(ts *httptest.Server, dir string) *Runner {
	return &Runner{
		Pipeline: &pipeline.Pipeline{
			Client: ts.Client(),
			Fetch: types.FetchConfig{
				HTTPConfig: types.HTTPConfig{
					Timeout:   5 * time.Second,
					UserAgent: "fedcorpus-test/0.1",
				},
				BaseURL:    ts.URL + "/files/",
				MaxRetries: 2,
				RetryDelay: 1 * time.Millisecond,
			},
			OutputDir: dir,
			Cleaner:   cleaner.New(nil),
		},
		Delay: 1 * time.Second,
	}
}

// fakeRecorder collects recorded results.
type fakeRecorder struct {
	results []pipeline.Result
}

func (f *fakeRecorder) Record(_ context.Context, res pipeline.Result) error {
	f.results = append(f.results, res)
	return nil
}

func TestRunAggregatesAndThrottles(t *testing.T) {
	goodDoc := pdftest.Document("some transcript text")
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "20240131"),
			strings.Contains(r.URL.Path, "20240320"),
			strings.Contains(r.URL.Path, "20240501"):
			w.Write(goodDoc)
		case strings.Contains(r.URL.Path, "19990101"):
			http.NotFound(w, r)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer ts.Close()

	sleeps := countSleeps(t)
	dir := t.TempDir()
	runner := newRunner(ts, dir)
	rec := &fakeRecorder{}
	runner.Ledger = rec

	dates := []string{"20240131", "20240320", "20240501", "19990101", "20240612"}
	var buf bytes.Buffer
	summary, err := runner.Run(context.Background(), dates, &buf)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Saved != 3 {
		t.Errorf("Saved = %d, want 3", summary.Saved)
	}
	if summary.NotFound != 1 {
		t.Errorf("NotFound = %d, want 1", summary.NotFound)
	}
	if summary.Failed != 1 {
		t.Errorf("Failed = %d, want 1", summary.Failed)
	}
	if summary.Success() != 3 {
		t.Errorf("Success = %d, want 3", summary.Success())
	}
	if summary.Total() != 5 {
		t.Errorf("Total = %d, want 5", summary.Total())
	}
	// The throttle fires after every date, including the last.
	if *sleeps != 5 {
		t.Errorf("sleeps = %d, want 5", *sleeps)
	}
	if len(rec.results) != 5 {
		t.Errorf("recorded results = %d, want 5", len(rec.results))
	}
	if !strings.Contains(buf.String(), "Batch summary:") {
		t.Error("output should contain batch summary")
	}
}

func TestRunCountsSkippedAsSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no network call expected for an existing transcript")
	}))
	defer ts.Close()

	countSleeps(t)
	dir := t.TempDir()
	runner := newRunner(ts, dir)

	path := filepath.Join(dir, types.TextName("20240131"))
	if err := os.WriteFile(path, []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	summary, err := runner.Run(context.Background(), []string{"20240131"}, &buf)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", summary.Skipped)
	}
	if summary.Success() != 1 {
		t.Errorf("Success = %d, want 1", summary.Success())
	}
}

func TestRunPreservesDateOrder(t *testing.T) {
	goodDoc := pdftest.Document("text")
	var mu sync.Mutex
	var order []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		order = append(order, filepath.Base(r.URL.Path))
		mu.Unlock()
		w.Write(goodDoc)
	}))
	defer ts.Close()

	countSleeps(t)
	runner := newRunner(ts, t.TempDir())

	dates := []string{"20240612", "20240131", "20240320"}
	var buf bytes.Buffer
	if _, err := runner.Run(context.Background(), dates, &buf); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{
		types.PDFName("20240612"),
		types.PDFName("20240131"),
		types.PDFName("20240320"),
	}
	if len(order) != len(want) {
		t.Fatalf("requests = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("request[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestRunStopsCleanlyOnCancel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pdftest.Document("text"))
	}))
	defer ts.Close()

	countSleeps(t)
	runner := newRunner(ts, t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	summary, err := runner.Run(ctx, []string{"20240131", "20240320"}, &buf)
	if err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if summary.Total() != 0 {
		t.Errorf("Total = %d, want 0 (cancelled before first date)", summary.Total())
	}
}

func TestRecleanRewritesInPlace(t *testing.T) {
	dir := t.TempDir()
	raw := "Page 1 of 9 opening remarks by Powell"
	for _, date := range []string{"20240131", "20240320"} {
		path := filepath.Join(dir, types.TextName(date))
		if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	res, err := Reclean(dir, cleaner.New([]string{"Powell"}), &buf)
	if err != nil {
		t.Fatalf("Reclean: %v", err)
	}
	if res.Cleaned != 2 {
		t.Errorf("Cleaned = %d, want 2", res.Cleaned)
	}
	if res.Failed != 0 {
		t.Errorf("Failed = %d, want 0", res.Failed)
	}

	data, err := os.ReadFile(filepath.Join(dir, types.TextName("20240131")))
	if err != nil {
		t.Fatal(err)
	}
	want := "opening remarks by <NAME>Powell</NAME>"
	if string(data) != want {
		t.Errorf("cleaned content = %q, want %q", data, want)
	}
}

func TestRecleanFailureDoesNotBlockRest(t *testing.T) {
	dir := t.TempDir()

	// A directory with a transcript name makes the read fail for that entry.
	if err := os.Mkdir(filepath.Join(dir, types.TextName("19990101")), 0o755); err != nil {
		t.Fatal(err)
	}
	good := filepath.Join(dir, types.TextName("20240131"))
	if err := os.WriteFile(good, []byte("Page 1 of 2 hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	res, err := Reclean(dir, cleaner.New(nil), &buf)
	if err != nil {
		t.Fatalf("Reclean: %v", err)
	}
	if res.Failed != 1 {
		t.Errorf("Failed = %d, want 1", res.Failed)
	}
	if res.Cleaned != 1 {
		t.Errorf("Cleaned = %d, want 1", res.Cleaned)
	}

	data, _ := os.ReadFile(good)
	if string(data) != "hello" {
		t.Errorf("good file content = %q, want %q", data, "hello")
	}
}

func TestRecleanEmptyDirectory(t *testing.T) {
	var buf bytes.Buffer
	res, err := Reclean(t.TempDir(), cleaner.New(nil), &buf)
	if err != nil {
		t.Fatalf("Reclean: %v", err)
	}
	if res.Cleaned != 0 || res.Failed != 0 {
		t.Errorf("result = %+v, want zero counts", res)
	}
	if !strings.Contains(buf.String(), "no transcript files") {
		t.Errorf("output = %q, want note about no files", buf.String())
	}
}
