// Package pairing joins left and right document sets by identity key
// (spec.md §4.4).
package pairing

import (
	"github.com/everdiff/everdiff/internal/document"
	"github.com/everdiff/everdiff/internal/errs"
)

// PairEntry is one matched (left, right) document pair.
type PairEntry struct {
	Left  *document.Document
	Right *document.Document
}

// Result is the three-way partition produced by Pair (spec.md §4.4).
type Result struct {
	Matched []PairEntry
	Missing []*document.Document // present on left, absent on right
	Extra   []*document.Document // present on right, absent on left
}

// Pair joins left and right by identity key. Matched pairs are emitted
// in left-appearance order; Missing in left order; Extra in right
// order. A duplicate identity key within one side is fatal
// (errs.DuplicateKey).
func Pair(left, right []*document.Document) (Result, error) {
	rightByKey := make(map[string]*document.Document, len(right))
	for _, d := range right {
		id, _ := d.Identity()
		key := id.Key()
		if _, exists := rightByKey[key]; exists {
			return Result{}, &errs.DuplicateKey{Side: "right", Key: key}
		}
		rightByKey[key] = d
	}

	var res Result
	seenLeft := make(map[string]bool, len(left))
	for _, d := range left {
		id, _ := d.Identity()
		key := id.Key()
		if seenLeft[key] {
			return Result{}, &errs.DuplicateKey{Side: "left", Key: key}
		}
		seenLeft[key] = true

		if r, ok := rightByKey[key]; ok {
			res.Matched = append(res.Matched, PairEntry{Left: d, Right: r})
		} else {
			res.Missing = append(res.Missing, d)
		}
	}

	for _, d := range right {
		id, _ := d.Identity()
		key := id.Key()
		if !seenLeft[key] {
			res.Extra = append(res.Extra, d)
		}
	}
	return res, nil
}
