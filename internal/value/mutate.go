package value

import "errors"

// withSpan returns child carrying span, copying only when its own span
// differs, so patched subtrees inherit the span of the node they
// replaced and inserted nodes inherit their enclosing container's span
// (spec.md §3), rather than the empty Span a config-literal value
// arrives with.
func withSpan(child *Value, span Span) *Value {
	if child.Span == span {
		return child
	}
	out := *child
	out.Span = span
	return &out
}

// SetMapEntry finds the mapping entry for key and overwrites its value,
// or appends a new string-keyed entry when absent, keeping the lookup
// index consistent. Used by the pre-patcher's "add" and "replace" ops
// (spec.md §4.2).
func (v *Value) SetMapEntry(key string, child *Value) {
	v.buildIndex()
	ks := TagString + "\x00" + key
	if i, ok := v.index[ks]; ok {
		v.Entries[i].Value = withSpan(child, v.Entries[i].Value.Span)
		return
	}
	v.Entries = append(v.Entries, MappingEntry{
		Key:   NewScalar(TagString, key, v.Span),
		Value: withSpan(child, v.Span),
	})
	v.index[ks] = len(v.Entries) - 1
}

// SetItem replaces the sequence element at idx.
func (v *Value) SetItem(idx int, child *Value) error {
	if idx < 0 || idx >= len(v.Items) {
		return errors.New("index out of range")
	}
	v.Items[idx] = withSpan(child, v.Items[idx].Span)
	return nil
}

// InsertItem inserts child before position idx ("add" with a numeric
// index per spec.md §4.2). idx == len(v.Items) is a valid append.
func (v *Value) InsertItem(idx int, child *Value) error {
	if idx < 0 || idx > len(v.Items) {
		return errors.New("index out of range")
	}
	v.Items = append(v.Items, nil)
	copy(v.Items[idx+1:], v.Items[idx:])
	v.Items[idx] = withSpan(child, v.Span)
	return nil
}

// AppendItem appends child, implementing JSON Pointer's "-" token.
func (v *Value) AppendItem(child *Value) {
	v.Items = append(v.Items, withSpan(child, v.Span))
}
