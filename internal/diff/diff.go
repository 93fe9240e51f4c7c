// Package diff implements the recursive structural comparison and array
// alignment described in spec.md §4.5 — the heart of everdiff.
package diff

import (
	"sort"

	"github.com/everdiff/everdiff/internal/change"
	"github.com/everdiff/everdiff/internal/document"
	"github.com/everdiff/everdiff/internal/errs"
	"github.com/everdiff/everdiff/internal/path"
	"github.com/everdiff/everdiff/internal/value"
)

// DefaultMaxDepth is the recursion guard's default (spec.md §5).
const DefaultMaxDepth = 256

// Options configures a Diff run.
type Options struct {
	// MaxDepth bounds recursion; 0 selects DefaultMaxDepth.
	MaxDepth int
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

// Diff compares the two documents' values and returns the flat,
// deterministically-ordered list of changes between them (spec.md §6
// `diff`).
func Diff(left, right *document.Document, opts Options) ([]change.Change, error) {
	return compare(path.Root(), left.Root, right.Root, 0, opts.maxDepth())
}

func compare(p path.Path, left, right *value.Value, depth, maxDepth int) ([]change.Change, error) {
	if depth > maxDepth {
		return nil, &errs.DepthExceeded{MaxDepth: maxDepth}
	}

	leftEmpty, rightEmpty := value.IsEmpty(left), value.IsEmpty(right)
	if leftEmpty && rightEmpty {
		return nil, nil
	}
	if leftEmpty != rightEmpty {
		if leftEmpty {
			return []change.Change{change.Added(p, right)}, nil
		}
		return []change.Change{change.Removed(p, left)}, nil
	}

	if left.Kind != right.Kind {
		return []change.Change{change.Modified(p, left, right)}, nil
	}

	switch left.Kind {
	case value.KindScalar:
		if value.Equal(left, right) {
			return nil, nil
		}
		return []change.Change{change.Modified(p, left, right)}, nil
	case value.KindMapping:
		return compareMapping(p, left, right, depth, maxDepth)
	case value.KindSequence:
		return compareSequence(p, left, right, depth, maxDepth)
	}
	return nil, nil
}

// compareMapping recurses per key, visiting left-order keys first then
// new right-order keys (spec.md §4.5 "Mapping recursion").
func compareMapping(p path.Path, left, right *value.Value, depth, maxDepth int) ([]change.Change, error) {
	var out []change.Change
	seen := make(map[string]bool, len(left.Entries))

	for _, e := range left.Entries {
		key, ok := e.Key.GetRawString()
		if !ok {
			continue
		}
		seen[key] = true
		childPath := p.Field(key)
		if rv, ok := right.Get(key); ok {
			cs, err := compare(childPath, e.Value, rv, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			out = append(out, cs...)
		} else {
			out = append(out, change.Removed(childPath, e.Value))
		}
	}
	for _, e := range right.Entries {
		key, ok := e.Key.GetRawString()
		if !ok || seen[key] {
			continue
		}
		out = append(out, change.Added(p.Field(key), e.Value))
	}
	return out, nil
}

// compareSequence implements the array alignment of spec.md §4.5 steps 1-4.
func compareSequence(p path.Path, left, right *value.Value, depth, maxDepth int) ([]change.Change, error) {
	m, n := len(left.Items), len(right.Items)

	a := align(m, n, func(i, j int) int {
		return distance(left.Items[i], right.Items[j])
	})

	var out []change.Change
	for i := 0; i < m; i++ {
		j, ok := a.pairs[i]
		if !ok {
			continue
		}
		d := distance(left.Items[i], right.Items[j])
		if d == 0 {
			if i != j {
				out = append(out, change.Moved(p, i, j))
			}
			continue
		}
		childPath := p.Index(j)
		cs, cerr := compare(childPath, left.Items[i], right.Items[j], depth+1, maxDepth)
		if cerr != nil {
			return nil, cerr
		}
		out = append(out, cs...)
	}

	for i := 0; i < m; i++ {
		if _, ok := a.pairs[i]; !ok {
			out = append(out, change.Removed(p.Index(i), left.Items[i]))
		}
	}
	for j := 0; j < n; j++ {
		if _, ok := a.byRight[j]; !ok {
			out = append(out, change.Added(p.Index(j), right.Items[j]))
		}
	}

	sortSequenceChanges(p, out)
	return out, nil
}

// sortSequenceChanges orders a sequence's emitted changes by the index
// segment at the sequence's own depth (Moved by its "to" index), not by
// each change's deepest segment — a change recursed into a mapping
// element (e.g. ".xs[1].a") must still sort by its element index (1),
// not by whatever its last field segment happens to be. This keeps the
// list deterministic on top of compareSequence's own deterministic
// iteration order.
func sortSequenceChanges(p path.Path, cs []change.Change) {
	depth := p.Len()
	key := func(c change.Change) int {
		if c.Kind == change.KindMoved {
			return c.To
		}
		segs := c.Path.Segments()
		if len(segs) <= depth {
			return 0
		}
		seg := segs[depth]
		if seg.IsIndex() {
			return seg.IndexValue()
		}
		return 0
	}
	sort.SliceStable(cs, func(i, j int) bool { return key(cs[i]) < key(cs[j]) })
}
