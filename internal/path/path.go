// Package path implements the structural paths that tag every Change:
// a sequence of field and index segments from a document root to a
// subvalue, rendered as ".a.b[3]".
package path

import (
	"strconv"
	"strings"
)

// Segment is one step in a Path: either a mapping field or a sequence index.
type Segment struct {
	field   string
	index   int
	isIndex bool
}

// Field builds a field segment.
func Field(name string) Segment { return Segment{field: name} }

// Index builds an index segment.
func Index(n int) Segment { return Segment{index: n, isIndex: true} }

// IsIndex reports whether the segment addresses a sequence element.
func (s Segment) IsIndex() bool { return s.isIndex }

// Field returns the field name; only meaningful when !IsIndex().
func (s Segment) Field() string { return s.field }

// IndexValue returns the index; only meaningful when IsIndex().
func (s Segment) IndexValue() int { return s.index }

func (s Segment) String() string {
	if s.isIndex {
		return "[" + strconv.Itoa(s.index) + "]"
	}
	return "." + s.field
}

// Equal reports whether two segments address the same location.
func (s Segment) Equal(o Segment) bool {
	if s.isIndex != o.isIndex {
		return false
	}
	if s.isIndex {
		return s.index == o.index
	}
	return s.field == o.field
}

// Path is an ordered sequence of Segments from a document root. The empty
// Path denotes the root and renders as ".".
type Path struct {
	segs []Segment
}

// Root is the empty path.
func Root() Path { return Path{} }

// Push returns a new Path with seg appended.
func (p Path) Push(seg Segment) Path {
	out := make([]Segment, len(p.segs)+1)
	copy(out, p.segs)
	out[len(p.segs)] = seg
	return Path{segs: out}
}

// Field returns a new Path with a field segment appended.
func (p Path) Field(name string) Path { return p.Push(Field(name)) }

// Index returns a new Path with an index segment appended.
func (p Path) Index(n int) Path { return p.Push(Index(n)) }

// Segments returns the path's segments, in root-to-leaf order. Callers
// must not mutate the returned slice.
func (p Path) Segments() []Segment { return p.segs }

// Len returns the number of segments.
func (p Path) Len() int { return len(p.segs) }

// String renders the path as ".a.b[3].c"; the root renders as ".".
func (p Path) String() string {
	if len(p.segs) == 0 {
		return "."
	}
	var b strings.Builder
	for _, s := range p.segs {
		b.WriteString(s.String())
	}
	return b.String()
}

// Equal reports whether two paths address the same location.
func (p Path) Equal(o Path) bool {
	if len(p.segs) != len(o.segs) {
		return false
	}
	for i := range p.segs {
		if !p.segs[i].Equal(o.segs[i]) {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is a prefix of p (or equal to p).
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix.segs) > len(p.segs) {
		return false
	}
	for i := range prefix.segs {
		if !p.segs[i].Equal(prefix.segs[i]) {
			return false
		}
	}
	return true
}
