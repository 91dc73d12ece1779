// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sources loads the line-oriented input files that drive a scrape:
// the ordered date list and the name registry. Both are plain newline-
// delimited text; blank lines and surrounding whitespace are ignored.
package sources

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// lines reads path and returns its non-blank lines, trimmed, in file order.
func lines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out, nil
}

// Dates loads the ordered list of YYYYMMDD date strings. The dates are used
// verbatim as document keys; no validation beyond non-blankness is applied.
// An unreadable date file is fatal for the run.
func Dates(path string) ([]string, error) {
	dates, err := lines(path)
	if err != nil {
		return nil, fmt.Errorf("reading date file %s: %w", path, err)
	}
	return dates, nil
}

// Names loads the ordered name registry for tagging. A missing file is not
// an error: it yields an empty registry with a warning on w, and no names
// are tagged. Any other read failure is fatal.
func Names(path string, w io.Writer) ([]string, error) {
	names, err := lines(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(w, "warning: names file %s not found, no names will be tagged\n", path)
			return nil, nil
		}
		return nil, fmt.Errorf("reading names file %s: %w", path, err)
	}
	return names, nil
}
