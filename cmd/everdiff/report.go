package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/everdiff/everdiff"
	"github.com/everdiff/everdiff/internal/change"
	"github.com/everdiff/everdiff/internal/document"
	"github.com/everdiff/everdiff/internal/path"
	"github.com/everdiff/everdiff/internal/render"
)

// printReport renders a Report the way spec.md §6 specifies identity
// captions and path rendering: each matched pair is captioned by its
// identity key, each change by its rendered path plus the byte-accurate
// source span it cites (SPEC_FULL.md §4.8).
func printReport(w io.Writer, report *everdiff.Report) {
	for _, warn := range report.Warnings {
		fmt.Fprintln(w, "warning:", warn)
	}

	for _, pr := range report.Matched {
		if len(pr.Changes) == 0 {
			continue
		}
		printCaption(w, pr.Left)
		for _, c := range pr.Changes {
			printChange(w, pr.Left, pr.Right, c)
		}
	}

	for _, d := range report.Missing {
		fmt.Fprint(w, "missing ")
		printCaption(w, d)
	}
	for _, d := range report.Extra {
		fmt.Fprint(w, "extra ")
		printCaption(w, d)
	}
}

func printCaption(w io.Writer, d *document.Document) {
	id, ok := d.Identity()
	if !ok {
		fmt.Fprintln(w, "document:")
		return
	}
	for _, line := range id.Caption() {
		fmt.Fprintln(w, line)
	}
}

// printChange renders one change and, where a span resolves, the source
// snippet it cites: the right-hand snippet for Added, the left-hand
// snippet for Removed, an inline diff of both for Modified, and the
// moved element's current snippet for Moved.
func printChange(w io.Writer, left, right *document.Document, c change.Change) {
	switch c.Kind {
	case change.KindAdded:
		fmt.Fprintf(w, "  + %s\n", c.Path)
		printSnippet(w, right, c.Path)
	case change.KindRemoved:
		fmt.Fprintf(w, "  - %s\n", c.Path)
		printSnippet(w, left, c.Path)
	case change.KindModified:
		fmt.Fprintf(w, "  ~ %s\n", c.Path)
		printInlineDiff(w, left, right, c.Path)
	case change.KindMoved:
		fmt.Fprintf(w, "  → %s moved %d→%d\n", c.Path, c.From, c.To)
		printSnippet(w, right, c.Path.Index(c.To))
	}
}

// printSnippet cites the source lines a path resolves to in d, indented
// under the change line it follows.
func printSnippet(w io.Writer, d *document.Document, p path.Path) {
	snip, ok := render.AtPath(d, p)
	if !ok || snip.Text == "" {
		return
	}
	fmt.Fprintf(w, "    lines %d-%d:\n", snip.StartLine, snip.EndLine)
	for _, line := range strings.Split(snip.Text, "\n") {
		fmt.Fprintf(w, "      %s\n", line)
	}
}

// printInlineDiff renders the unified diff between a Modified change's
// left and right snippets; it prints nothing when either side has no
// resolvable span.
func printInlineDiff(w io.Writer, left, right *document.Document, p path.Path) {
	leftSnip, leftOK := render.AtPath(left, p)
	rightSnip, rightOK := render.AtPath(right, p)
	if !leftOK || !rightOK {
		return
	}
	diffText, err := render.InlineDiff(leftSnip, rightSnip)
	if err != nil || diffText == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(diffText, "\n"), "\n") {
		fmt.Fprintf(w, "    %s\n", line)
	}
}
