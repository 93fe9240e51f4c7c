// Package identity computes the identity key used to pair documents
// across left and right streams (spec.md §4.3).
package identity

import (
	"strconv"

	"github.com/everdiff/everdiff/internal/document"
)

// Identify computes doc's identity under mode, returning a copy of doc
// carrying it. For ModeKubernetes, a document missing apiVersion, kind
// or metadata.name falls back to a positional key scoped to missingSeq
// (the running count of documents on this side that are also missing
// at least one of those fields) and returns warn=true, per the
// clarification in spec.md §9.
func Identify(doc *document.Document, mode document.Mode, missingSeq int) (out *document.Document, warn bool) {
	switch mode {
	case document.ModeKubernetes:
		apiVersion, okA := doc.Root.GetString("apiVersion")
		kind, okK := doc.Root.GetString("kind")
		var name string
		var okN bool
		if meta, ok := doc.Root.Get("metadata"); ok {
			name, okN = meta.GetString("name")
		}
		if okA && okK && okN {
			return doc.WithIdentity(document.Kubernetes(apiVersion, kind, name)), false
		}
		return doc.WithIdentity(document.Positional(missingSeq)), true
	default:
		return doc.WithIdentity(document.Positional(doc.Index)), false
	}
}

// IdentifyAll identifies every document in docs under mode, returning
// the identified documents and the list of warnings (one per document
// that fell back to positional identity under ModeKubernetes).
func IdentifyAll(docs []*document.Document, mode document.Mode) ([]*document.Document, []string) {
	out := make([]*document.Document, len(docs))
	var warnings []string
	missingSeq := 0
	for i, d := range docs {
		id, warn := Identify(d, mode, missingSeq)
		out[i] = id
		if warn {
			warnings = append(warnings, warningText(d.Index))
			missingSeq++
		}
	}
	return out, warnings
}

func warningText(index int) string {
	return "document at index " + strconv.Itoa(index) + " is missing apiVersion/kind/metadata.name; falling back to positional identity"
}
