// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cleaner normalizes extracted transcript text: it strips the
// archive's recurring boilerplate, collapses whitespace, and tags known
// personal names.
package cleaner

import (
	"regexp"
	"strings"
)

// dateGrammar matches the header date as rendered by the source PDF layout:
// month name, day, comma, then the four-digit year split into three digits
// and one digit by a stray space (e.g. "January 31, 202 4").
const dateGrammar = `[A-Za-z]+\s+\d{1,2}\s*,\s*\d{3}\s*\d`

// possessiveTitle matches "Chair Powell's" with the apostrophe rendered as
// either an ASCII quote, a right single quote, or dropped entirely.
const possessiveTitle = `Chair\s+Powell\s*['` + "’" + `\s]*s\s+Press\s+Conference`

// Cleaner holds the compiled boilerplate patterns and the name registry.
// It is immutable after New and shared read-only across documents.
type Cleaner struct {
	pageMarker    *regexp.Regexp
	header        *regexp.Regexp
	titleWithDate *regexp.Regexp
	title         *regexp.Regexp
	whitespace    *regexp.Regexp
	names         []string
	namePatterns  []*regexp.Regexp
}

// New compiles the boilerplate patterns and one whole-word pattern per
// registry name. Registry order is preserved; it determines substitution
// order in Clean.
func New(names []string) *Cleaner {
	c := &Cleaner{
		pageMarker:    regexp.MustCompile(`Page \d+ of \d+`),
		// The header often carries a bare page number between the date and
		// the title; consume it so the whole span goes at once.
		header:        regexp.MustCompile(dateGrammar + `(?:\s+\d{1,2})?\s+` + possessiveTitle + `\s+FINAL`),
		titleWithDate: regexp.MustCompile(`Transcript\s+of\s+` + possessiveTitle + `\s+` + dateGrammar),
		title:         regexp.MustCompile(`Transcript\s+of\s+` + possessiveTitle),
		whitespace:    regexp.MustCompile(`\s+`),
		names:         append([]string(nil), names...),
	}
	for _, name := range c.names {
		c.namePatterns = append(c.namePatterns,
			regexp.MustCompile(`\b`+regexp.QuoteMeta(name)+`\b`))
	}
	return c
}

// Names returns the registry the Cleaner was built with, in order.
func (c *Cleaner) Names() []string {
	return append([]string(nil), c.names...)
}

// Clean applies the full transform chain, each step operating on the output
// of the previous one: page-number markers, dated headers, the transcript
// title with and then without a trailing date, whitespace collapse, name
// tagging, and a final trim. The structural steps are fixed points of their
// own output; name tagging is not (see tagNames).
func (c *Cleaner) Clean(text string) string {
	if text == "" {
		return text
	}
	text = c.pageMarker.ReplaceAllString(text, "")
	text = c.header.ReplaceAllString(text, "")
	text = c.titleWithDate.ReplaceAllString(text, "")
	text = c.title.ReplaceAllString(text, "")
	text = c.whitespace.ReplaceAllString(text, " ")
	text = c.tagNames(text)
	return strings.TrimSpace(text)
}

// tagNames wraps whole-word occurrences of each registry name in
// <NAME>...</NAME> tags, one name at a time in registry order. Each
// substitution runs against the output of the previous one, so a name that
// overlaps text inserted for an earlier name can produce nested or garbled
// tags, and re-tagging already-tagged text double-wraps. That cumulative
// behavior is deliberate and asserted by tests.
func (c *Cleaner) tagNames(text string) string {
	for i, name := range c.names {
		if !strings.Contains(text, name) {
			continue
		}
		text = c.namePatterns[i].ReplaceAllLiteralString(text, "<NAME>"+name+"</NAME>")
	}
	return text
}
