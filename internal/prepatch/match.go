package prepatch

import "github.com/everdiff/everdiff/internal/value"

// Matches reports whether doc matches a document-like pattern
// (spec.md §4.2): every mapping key in pattern must exist in doc with
// a value that matches by these same rules, every sequence element in
// pattern must match the element at the same position in doc, and
// every scalar must equal.
// Extra fields in doc are allowed; extra fields in pattern are not.
// Grounded on original_source/src/prepatch.rs's document_matches.
func Matches(pattern, doc *value.Value) bool {
	if value.IsEmpty(pattern) {
		return value.IsEmpty(doc)
	}
	if doc == nil {
		return false
	}
	switch pattern.Kind {
	case value.KindScalar:
		return doc.Kind == value.KindScalar && value.Equal(pattern, doc)
	case value.KindMapping:
		if doc.Kind != value.KindMapping {
			return false
		}
		for _, e := range pattern.Entries {
			key, ok := e.Key.GetRawString()
			if !ok {
				return false
			}
			dv, ok := doc.Get(key)
			if !ok {
				return false
			}
			if !Matches(e.Value, dv) {
				return false
			}
		}
		return true
	case value.KindSequence:
		if doc.Kind != value.KindSequence || len(pattern.Items) > len(doc.Items) {
			return false
		}
		for i, pi := range pattern.Items {
			if !Matches(pi, doc.Items[i]) {
				return false
			}
		}
		return true
	}
	return false
}
