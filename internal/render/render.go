// Package render implements the line-accurate snippet extraction and
// inline diff described in SPEC_FULL.md §4.8 — explicitly an
// interface-only expansion per spec.md §1 ("rendering colour and
// side-by-side layout are out of scope"): it slices verbatim source
// text, it does not re-serialise a Value.
package render

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/everdiff/everdiff/internal/document"
	"github.com/everdiff/everdiff/internal/path"
	"github.com/everdiff/everdiff/internal/value"
)

// Snippet is a verbatim slice of a Document's source text, with the
// 1-based inclusive line range it came from.
type Snippet struct {
	StartLine int
	EndLine   int
	Text      string
}

// AtPath walks p from doc's root and slices the Span it resolves to out
// of the document's original source text. Grounded on the teacher's
// bounds_deep.go line-offset walk, adapted to read from a value.Value
// tree's Span instead of re-scanning raw bytes.
func AtPath(doc *document.Document, p path.Path) (Snippet, bool) {
	v := doc.Root
	for _, seg := range p.Segments() {
		if v == nil {
			return Snippet{}, false
		}
		if seg.IsIndex() {
			if v.Kind != value.KindSequence || seg.IndexValue() < 0 || seg.IndexValue() >= len(v.Items) {
				return Snippet{}, false
			}
			v = v.Items[seg.IndexValue()]
			continue
		}
		child, ok := v.Get(seg.Field())
		if !ok {
			return Snippet{}, false
		}
		v = child
	}
	if v == nil {
		return Snippet{}, false
	}
	return sliceLines(doc.Source, v.Span), true
}

func sliceLines(source string, span value.Span) Snippet {
	if span.StartLine <= 0 {
		return Snippet{}
	}
	lines := strings.Split(source, "\n")
	start := span.StartLine
	end := span.EndLine
	if end < start {
		end = start
	}
	if start > len(lines) {
		return Snippet{StartLine: start, EndLine: end}
	}
	if end > len(lines) {
		end = len(lines)
	}
	text := strings.Join(lines[start-1:end], "\n")
	return Snippet{StartLine: start, EndLine: end, Text: text}
}

// InlineDiff renders a unified diff between a Modified change's left
// and right snippets, for terminal display. Uses
// github.com/pmezard/go-difflib, already present in the teacher's
// dependency graph via testify's require/assert internals, promoted
// here to a direct, exercised dependency.
func InlineDiff(left, right Snippet) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(left.Text),
		B:        difflib.SplitLines(right.Text),
		FromFile: "left",
		ToFile:   "right",
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}
