// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract converts raw PDF bytes into per-page text.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText reports that no page of the document yielded any text. Partial
// extraction is fine; total failure is fatal for the document.
var ErrNoText = errors.New("no text could be extracted from any page")

// extractPage is swapped out by tests to simulate per-page failures.
var extractPage = pageText

// Pages parses data as a PDF and returns the text of every page that yields
// any, in document order. A page that fails to extract, or yields nothing,
// is skipped with a warning on w; a single bad page never aborts the
// document. If every page comes up empty the result is ErrNoText.
func Pages(data []byte, w io.Writer) ([]string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		text, err := extractPage(r.Page(i))
		if err != nil {
			fmt.Fprintf(w, "warning: page %d: %v\n", i, err)
			continue
		}
		if text == "" {
			fmt.Fprintf(w, "warning: no text extracted from page %d\n", i)
			continue
		}
		pages = append(pages, text)
	}

	if len(pages) == 0 {
		return nil, ErrNoText
	}
	return pages, nil
}

// pageText extracts one page's text. A parser panic is converted into an
// error so a malformed page is isolated like any other per-page failure.
func pageText(p pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF parser panic: %v", r)
		}
	}()
	if p.V.IsNull() {
		return "", nil
	}
	text, err = p.GetPlainText(nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
