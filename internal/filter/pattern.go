// Package filter implements ignore-pattern based change filtering
// (spec.md §4.6).
package filter

import (
	"strconv"
	"strings"

	"github.com/everdiff/everdiff/internal/errs"
	"github.com/everdiff/everdiff/internal/path"
)

// patternSeg is one segment of a compiled Pattern: a literal field name,
// a literal index, or a `*` wildcard matching either.
type patternSeg struct {
	wildcard bool
	field    string
	index    int
	isIndex  bool
}

// Pattern is a compiled ignore path expression, using the same grammar
// as rendered paths (".a.b[3].c") with "*" matching a single segment.
type Pattern struct {
	raw              string
	segs             []patternSeg
	endsWithWildcard bool
}

// Parse compiles an ignore pattern, returning IgnorePatternSyntax on a
// malformed expression (spec.md §7).
func Parse(raw string) (Pattern, error) {
	s := raw
	if s == "" || s == "." {
		return Pattern{raw: raw}, nil
	}
	if s[0] != '.' {
		return Pattern{}, &errs.IgnorePatternSyntax{Pattern: raw, Reason: "pattern must start with '.'"}
	}

	var segs []patternSeg
	i := 0
	for i < len(s) {
		switch s[i] {
		case '.':
			i++
			start := i
			for i < len(s) && s[i] != '.' && s[i] != '[' {
				i++
			}
			name := s[start:i]
			if name == "" {
				return Pattern{}, &errs.IgnorePatternSyntax{Pattern: raw, Reason: "empty field segment"}
			}
			if name == "*" {
				segs = append(segs, patternSeg{wildcard: true})
			} else {
				segs = append(segs, patternSeg{field: name})
			}
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return Pattern{}, &errs.IgnorePatternSyntax{Pattern: raw, Reason: "unterminated '['"}
			}
			inner := s[i+1 : i+end]
			i += end + 1
			if inner == "*" {
				segs = append(segs, patternSeg{wildcard: true})
				continue
			}
			n, err := strconv.Atoi(inner)
			if err != nil {
				return Pattern{}, &errs.IgnorePatternSyntax{Pattern: raw, Reason: "invalid index segment " + strconv.Quote(inner)}
			}
			segs = append(segs, patternSeg{index: n, isIndex: true})
		default:
			return Pattern{}, &errs.IgnorePatternSyntax{Pattern: raw, Reason: "unexpected character " + strconv.QuoteRune(rune(s[i]))}
		}
	}
	return Pattern{raw: raw, segs: segs, endsWithWildcard: segs[len(segs)-1].wildcard}, nil
}

func (p patternSeg) matches(seg path.Segment) bool {
	if p.wildcard {
		return true
	}
	if p.isIndex != seg.IsIndex() {
		return false
	}
	if p.isIndex {
		return p.index == seg.IndexValue()
	}
	return p.field == seg.Field()
}

// MatchesExact reports whether pat equals p exactly, segment for segment.
func (pat Pattern) MatchesExact(p path.Path) bool {
	segs := p.Segments()
	if len(segs) != len(pat.segs) {
		return false
	}
	for i, ps := range pat.segs {
		if !ps.matches(segs[i]) {
			return false
		}
	}
	return true
}

// MatchesPrefix reports whether pat is a prefix of p (pat's segments
// match p's leading segments). A pattern ending in "*" is bounded to its
// own depth instead: spec.md §4.6's example has ".metadata.labels.*"
// drop one level under labels but not deeper, so a trailing wildcard
// never extends into a prefix match over anything past it.
func (pat Pattern) MatchesPrefix(p path.Path) bool {
	if pat.endsWithWildcard {
		return false
	}
	segs := p.Segments()
	if len(pat.segs) > len(segs) {
		return false
	}
	for i, ps := range pat.segs {
		if !ps.matches(segs[i]) {
			return false
		}
	}
	return true
}

// String returns the pattern's original text.
func (pat Pattern) String() string { return pat.raw }
