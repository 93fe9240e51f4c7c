// Package everdiff composes the core pipeline (spec.md §2: Parser →
// Pre-patcher → Identifier → Pairer → Differ → Filter) into the single
// entry point a caller actually uses, mirroring the teacher package's
// own top-level Parse/Marshal/ApplyJSONPatch surface over its internal
// state (SPEC_FULL.md §6).
package everdiff

import (
	"github.com/everdiff/everdiff/internal/change"
	"github.com/everdiff/everdiff/internal/diff"
	"github.com/everdiff/everdiff/internal/document"
	"github.com/everdiff/everdiff/internal/filter"
	"github.com/everdiff/everdiff/internal/identity"
	"github.com/everdiff/everdiff/internal/pairing"
	"github.com/everdiff/everdiff/internal/prepatch"
	"github.com/everdiff/everdiff/internal/yamlparse"
)

// Config is the subset of everdiff.yaml (internal/config.Config) that
// the core pipeline needs to run a single comparison.
type Config struct {
	Identity       document.Mode
	IgnoreMoved    bool
	IgnorePatterns []filter.Pattern
	Rules          []prepatch.Rule
	MaxDepth       int // 0 uses diff.DefaultMaxDepth
}

// PairReport is the filtered change list for one matched document pair.
type PairReport struct {
	Left    *document.Document
	Right   *document.Document
	Changes []change.Change
}

// Report is the full result of one Run: matched pairs with their
// filtered changes, plus the documents present on only one side
// (spec.md §4.4) and any non-fatal identity warnings (spec.md §9).
type Report struct {
	Matched  []PairReport
	Missing  []*document.Document // present on left, absent on right
	Extra    []*document.Document // present on right, absent on left
	Warnings []string
}

// HasChanges reports whether there is anything to show: a filtered
// change in some matched pair, or a document present on only one side.
// The CLI exit code (spec.md §6) is 0 when this is false, 1 when true.
func (r *Report) HasChanges() bool {
	if len(r.Missing) > 0 || len(r.Extra) > 0 {
		return true
	}
	for _, pr := range r.Matched {
		if len(pr.Changes) > 0 {
			return true
		}
	}
	return false
}

// Run parses leftBytes and rightBytes as YAML document streams and
// runs the full pipeline over them under cfg, returning a Report. Any
// ParseError, PrePatchError or DuplicateKey aborts the run entirely
// (spec.md §6 exit code 2); the core itself never logs (spec.md §7).
func Run(leftBytes, rightBytes []byte, cfg Config) (*Report, error) {
	leftDocs, err := yamlparse.Parse(leftBytes, "left")
	if err != nil {
		return nil, err
	}
	rightDocs, err := yamlparse.Parse(rightBytes, "right")
	if err != nil {
		return nil, err
	}

	leftDocs, err = applyRules(leftDocs, cfg.Rules)
	if err != nil {
		return nil, err
	}
	rightDocs, err = applyRules(rightDocs, cfg.Rules)
	if err != nil {
		return nil, err
	}

	var leftWarnings, rightWarnings []string
	leftDocs, leftWarnings = identity.IdentifyAll(leftDocs, cfg.Identity)
	rightDocs, rightWarnings = identity.IdentifyAll(rightDocs, cfg.Identity)

	paired, err := pairing.Pair(leftDocs, rightDocs)
	if err != nil {
		return nil, err
	}

	opts := diff.Options{MaxDepth: cfg.MaxDepth}
	matched := make([]PairReport, 0, len(paired.Matched))
	for _, p := range paired.Matched {
		changes, err := diff.Diff(p.Left, p.Right, opts)
		if err != nil {
			return nil, err
		}
		changes = filter.Filter(changes, cfg.IgnorePatterns, cfg.IgnoreMoved)
		matched = append(matched, PairReport{Left: p.Left, Right: p.Right, Changes: changes})
	}

	warnings := append(leftWarnings, rightWarnings...)
	return &Report{Matched: matched, Missing: paired.Missing, Extra: paired.Extra, Warnings: warnings}, nil
}

func applyRules(docs []*document.Document, rules []prepatch.Rule) ([]*document.Document, error) {
	if len(rules) == 0 {
		return docs, nil
	}
	out := make([]*document.Document, len(docs))
	for i, d := range docs {
		patched, err := prepatch.Apply(d, rules)
		if err != nil {
			return nil, err
		}
		out[i] = patched
	}
	return out, nil
}
