package value

// Clone deep-copies v. Pre-patching must never mutate a shared subtree
// (spec.md §3: "Documents are immutable after pre-patching"), so every
// patch application starts from a fresh clone.
func Clone(v *Value) *Value {
	if v == nil {
		return nil
	}
	out := &Value{Kind: v.Kind, Span: v.Span, Tag: v.Tag, Raw: v.Raw}
	if v.Items != nil {
		out.Items = make([]*Value, len(v.Items))
		for i, it := range v.Items {
			out.Items[i] = Clone(it)
		}
	}
	if v.Entries != nil {
		out.Entries = make([]MappingEntry, len(v.Entries))
		for i, e := range v.Entries {
			out.Entries[i] = MappingEntry{Key: Clone(e.Key), Value: Clone(e.Value)}
		}
	}
	return out
}
