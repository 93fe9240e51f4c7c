// Package value implements the recursive tagged Value that everything
// else in everdiff is built on: the parsed shape of one YAML document,
// annotated with the source Span it came from.
package value

import (
	"strconv"
	"strings"
)

// Kind discriminates the Value variants described in spec.md §3.
type Kind int

const (
	// KindEmpty represents an explicitly null document (spec.md §3 "Empty").
	KindEmpty Kind = iota
	KindScalar
	KindSequence
	KindMapping
)

// Scalar tags, matching the YAML 1.2 core schema tags the parser resolves.
const (
	TagNull   = "!!null"
	TagBool   = "!!bool"
	TagInt    = "!!int"
	TagFloat  = "!!float"
	TagString = "!!str"
)

// Span is the inclusive, 1-based line range a Value occupies in its
// document's original source text.
type Span struct {
	StartLine int
	EndLine   int
}

// MappingEntry is one (key, value) pair of a Mapping, in source order.
type MappingEntry struct {
	Key   *Value
	Value *Value
}

// Value is the recursive tagged value described in spec.md §3.
type Value struct {
	Kind Kind
	Span Span

	// Scalar fields. Raw is the literal source text (used for string
	// equality and for !!str values); Tag is the resolved YAML tag.
	Tag string
	Raw string

	// Sequence fields.
	Items []*Value

	// Mapping fields. index is built lazily on first lookup and gives
	// O(1) access by rendered key while Entries preserves declaration
	// order for iteration and rendering (spec.md §9).
	Entries []MappingEntry
	index   map[string]int
}

// NewEmpty builds an Empty value.
func NewEmpty(span Span) *Value { return &Value{Kind: KindEmpty, Span: span} }

// NewScalar builds a Scalar value with a resolved tag.
func NewScalar(tag, raw string, span Span) *Value {
	return &Value{Kind: KindScalar, Tag: tag, Raw: raw, Span: span}
}

// NewSequence builds a Sequence value.
func NewSequence(items []*Value, span Span) *Value {
	return &Value{Kind: KindSequence, Items: items, Span: span}
}

// NewMapping builds a Mapping value from entries in declaration order.
func NewMapping(entries []MappingEntry, span Span) *Value {
	return &Value{Kind: KindMapping, Entries: entries, Span: span}
}

// IsEmpty reports whether v is nil or an explicit Empty/null value.
func IsEmpty(v *Value) bool {
	return v == nil || v.Kind == KindEmpty
}

// keyString renders a mapping key for the O(1) lookup index. Only
// scalar keys participate; scalar keys tagged other than !!str are
// found by Get's linear scan, and non-scalar keys are never found by Get.
func keyString(k *Value) (string, bool) {
	if k == nil || k.Kind != KindScalar {
		return "", false
	}
	return k.Tag + "\x00" + k.Raw, true
}

func (v *Value) buildIndex() {
	if v.index != nil {
		return
	}
	v.index = make(map[string]int, len(v.Entries))
	for i, e := range v.Entries {
		if ks, ok := keyString(e.Key); ok {
			if _, exists := v.index[ks]; !exists {
				v.index[ks] = i
			}
		}
	}
}

// Get looks up a mapping entry by a plain string key (matching a
// !!str-tagged key, which is how everdiff's own path segments and
// pre-patch JSON Pointer tokens address mappings). Returns nil, false
// when absent or when v is not a Mapping.
func (v *Value) Get(key string) (*Value, bool) {
	if v == nil || v.Kind != KindMapping {
		return nil, false
	}
	v.buildIndex()
	if i, ok := v.index[TagString+"\x00"+key]; ok {
		return v.Entries[i].Value, true
	}
	// Fall back to a linear scan for non-canonically-tagged keys
	// (e.g. a bare numeric-looking key resolved to !!int).
	for _, e := range v.Entries {
		if e.Key != nil && e.Key.Kind == KindScalar && e.Key.Raw == key {
			return e.Value, true
		}
	}
	return nil, false
}

// GetString is a convenience for reading a string-scalar field, used by
// the Kubernetes identifier.
func (v *Value) GetString(key string) (string, bool) {
	child, ok := v.Get(key)
	if !ok || child == nil || child.Kind != KindScalar {
		return "", false
	}
	return child.Raw, true
}

// Size returns the number of nodes in the subtree rooted at v, used to
// cap array-alignment distances (spec.md §4.5 step 1).
func Size(v *Value) int {
	if v == nil {
		return 0
	}
	switch v.Kind {
	case KindScalar, KindEmpty:
		return 1
	case KindSequence:
		n := 1
		for _, it := range v.Items {
			n += Size(it)
		}
		return n
	case KindMapping:
		n := 1
		for _, e := range v.Entries {
			n += Size(e.Value)
		}
		return n
	}
	return 1
}

// Equal implements the tag-aware deep equality from spec.md §3 and §8
// property 6: "1" (string) and 1 (int) are not equal; True and true are.
func Equal(a, b *Value) bool {
	aEmpty, bEmpty := IsEmpty(a), IsEmpty(b)
	if aEmpty || bEmpty {
		return aEmpty == bEmpty
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindScalar:
		return scalarEqual(a, b)
	case KindSequence:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(a.Entries) != len(b.Entries) {
			return false
		}
		for _, ea := range a.Entries {
			key, ok := ea.Key.GetRawString()
			if !ok {
				return false
			}
			bv, ok := b.Get(key)
			if !ok || !Equal(ea.Value, bv) {
				return false
			}
		}
		return true
	}
	return true
}

// GetRawString returns a scalar's raw text, used when a mapping key
// must be re-rendered as a plain string for lookup.
func (v *Value) GetRawString() (string, bool) {
	if v == nil || v.Kind != KindScalar {
		return "", false
	}
	return v.Raw, true
}

func scalarEqual(a, b *Value) bool {
	aClass, bClass := tagClass(a.Tag), tagClass(b.Tag)
	if aClass != bClass {
		return false
	}
	switch aClass {
	case TagNull:
		return true
	case TagBool:
		av, aok := parseBool(a.Raw)
		bv, bok := parseBool(b.Raw)
		return aok && bok && av == bv
	case TagInt:
		av, aok := parseInt(a.Raw)
		bv, bok := parseInt(b.Raw)
		if aok && bok {
			return av == bv
		}
		return a.Raw == b.Raw
	case TagFloat:
		av, aerr := strconv.ParseFloat(a.Raw, 64)
		bv, berr := strconv.ParseFloat(b.Raw, 64)
		if aerr == nil && berr == nil {
			return av == bv
		}
		return a.Raw == b.Raw
	default: // string
		return a.Raw == b.Raw
	}
}

// tagClass normalises a resolved tag to one of the four scalar classes;
// unrecognised tags are treated as strings.
func tagClass(tag string) string {
	switch tag {
	case TagNull, TagBool, TagInt, TagFloat, TagString:
		return tag
	default:
		return TagString
	}
}

func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(raw) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

func parseInt(raw string) (int64, bool) {
	n, err := strconv.ParseInt(raw, 0, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
