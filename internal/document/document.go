// Package document implements the Document type: a parsed Value plus
// the bookkeeping (source text, stream index, identity key) spec.md §3
// attaches to it.
package document

import (
	"strconv"

	"github.com/everdiff/everdiff/internal/value"
)

// Document is one YAML document from a stream.
type Document struct {
	Root   *value.Value
	Source string // original text of the whole stream this document came from; Span lines index into it
	Index  int    // 0-based index within its stream

	identity    Identity
	hasIdentity bool
}

// New builds a Document before identity has been computed.
func New(root *value.Value, source string, index int) *Document {
	return &Document{Root: root, Source: source, Index: index}
}

// WithIdentity returns a copy of d carrying the given identity.
func (d *Document) WithIdentity(id Identity) *Document {
	out := *d
	out.identity = id
	out.hasIdentity = true
	return &out
}

// Identity returns the document's identity key, if computed.
func (d *Document) Identity() (Identity, bool) { return d.identity, d.hasIdentity }

// WithRoot returns a copy of d with a different root Value, used after
// pre-patching produces a new immutable tree.
func (d *Document) WithRoot(root *value.Value) *Document {
	out := *d
	out.Root = root
	return &out
}

// Mode selects how Identity is computed (spec.md §4.3).
type Mode int

const (
	ModePositional Mode = iota
	ModeKubernetes
)

// Identity is the key used to pair left and right documents (spec.md §4.3, §6).
type Identity struct {
	mode Mode

	// Positional
	index int

	// Kubernetes
	apiVersion string
	kind       string
	name       string
	hasAll     bool
}

// Positional builds a positional identity.
func Positional(index int) Identity {
	return Identity{mode: ModePositional, index: index}
}

// Kubernetes builds a Kubernetes GVK+name identity. hasAll is false when
// one of the three fields was missing from the document, in which case
// the caller (internal/identity) has already chosen a positional key
// scoped to the missing-field subset instead of calling this directly.
func Kubernetes(apiVersion, kind, name string) Identity {
	return Identity{mode: ModeKubernetes, apiVersion: apiVersion, kind: kind, name: name, hasAll: true}
}

// Mode reports which mode produced this identity.
func (id Identity) Mode() Mode { return id.mode }

// Key returns a string unique within one side's document set, suitable
// as a map key for pairing.
func (id Identity) Key() string {
	if id.mode == ModeKubernetes {
		return "k8s\x00" + id.apiVersion + "\x00" + id.kind + "\x00" + id.name
	}
	return "idx\x00" + strconv.Itoa(id.index)
}

// Caption renders the identity the way spec.md §6 specifies for
// captioning a document pair's change block.
func (id Identity) Caption() []string {
	if id.mode == ModeKubernetes {
		return []string{
			"api_version → " + id.apiVersion,
			"kind → " + id.kind,
			"metadata.name → " + id.name,
		}
	}
	return []string{"idx → " + strconv.Itoa(id.index)}
}
