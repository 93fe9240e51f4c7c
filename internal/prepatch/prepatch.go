// Package prepatch implements the Pre-patcher component of spec.md
// §4.2: a list of named rules, each guarded by an optional document-like
// match and carrying a list of RFC 6901 JSON Pointer patch operations,
// applied in declaration order against an immutable clone of the
// document's value tree. Adapted from the teacher's node-mutating
// jsonpatch.go onto value.Value's clone-then-mutate discipline, since
// everdiff's Value trees are shared and must stay safe to re-diff.
package prepatch

import (
	"errors"
	"strconv"
	"strings"

	"github.com/everdiff/everdiff/internal/document"
	"github.com/everdiff/everdiff/internal/errs"
	"github.com/everdiff/everdiff/internal/value"
)

// PatchOp is one RFC 6901-flavored patch operation. Only "add" and
// "replace" are supported (spec.md §4.2); Value is nil for ops that
// don't carry one, which is not the case for either supported op.
type PatchOp struct {
	Op    string
	Path  string
	Value *value.Value
}

// Rule is one pre-patch rule: Patches apply only when DocumentLike is
// nil or matches the document's current value tree.
type Rule struct {
	Name         string
	DocumentLike *value.Value
	Patches      []PatchOp
}

// Apply runs rules against doc in declaration order. Each rule sees the
// document as already patched by prior rules, so DocumentLike matches
// can depend on earlier rules having run.
func Apply(doc *document.Document, rules []Rule) (*document.Document, error) {
	cur := doc
	identity := docIdentity(doc)
	for _, rule := range rules {
		if rule.DocumentLike != nil && !Matches(rule.DocumentLike, cur.Root) {
			continue
		}
		newRoot, err := applyPatches(cur.Root, rule, identity)
		if err != nil {
			return nil, err
		}
		cur = cur.WithRoot(newRoot)
	}
	return cur, nil
}

// docIdentity renders a document reference for error messages. The
// pre-patcher runs before the Identifier (spec.md §2), so only the
// document's stream index is available.
func docIdentity(doc *document.Document) string {
	return "document #" + strconv.Itoa(doc.Index)
}

func applyPatches(root *value.Value, rule Rule, identity string) (*value.Value, error) {
	clone := value.Clone(root)
	for _, op := range rule.Patches {
		tokens, err := parseJSONPointer(op.Path)
		if err != nil {
			return nil, prepatchErr(rule.Name, identity, op.Path, err)
		}

		switch op.Op {
		case "replace":
			if len(tokens) == 0 {
				clone = value.Clone(op.Value)
				continue
			}
			if err := applyReplace(clone, tokens, op.Value); err != nil {
				return nil, prepatchErr(rule.Name, identity, op.Path, err)
			}
		case "add":
			if len(tokens) == 0 {
				return nil, prepatchErr(rule.Name, identity, op.Path, errors.New("add requires a non-root path"))
			}
			if err := applyAdd(clone, tokens, op.Value); err != nil {
				return nil, prepatchErr(rule.Name, identity, op.Path, err)
			}
		default:
			return nil, prepatchErr(rule.Name, identity, op.Path, errors.New("unsupported op "+op.Op))
		}
	}
	return clone, nil
}

func prepatchErr(ruleName, identity, path string, cause error) error {
	reason := strings.Join([]string{path, cause.Error()}, ": ")
	return &errs.PrePatchError{RuleName: ruleName, DocIdentity: identity, Reason: reason, Cause: cause}
}

// navigate walks tokens down from root, following mapping keys and
// sequence indices. It never mutates root.
func navigate(root *value.Value, tokens []ptrToken) (*value.Value, error) {
	cur := root
	for _, t := range tokens {
		if t.isIndex {
			if t.append {
				return nil, errors.New("'-' is not valid except as the final path segment")
			}
			if cur.Kind != value.KindSequence {
				return nil, errors.New("path segment expects a sequence")
			}
			if t.index < 0 || t.index >= len(cur.Items) {
				return nil, errors.New("sequence index out of range")
			}
			cur = cur.Items[t.index]
			continue
		}
		if cur.Kind != value.KindMapping {
			return nil, errors.New("path segment expects a mapping")
		}
		v, ok := cur.Get(t.key)
		if !ok {
			return nil, errors.New("mapping key not found: " + t.key)
		}
		cur = v
	}
	return cur, nil
}

func applyReplace(root *value.Value, tokens []ptrToken, val *value.Value) error {
	parent, err := navigate(root, tokens[:len(tokens)-1])
	if err != nil {
		return err
	}
	last := tokens[len(tokens)-1]
	newVal := value.Clone(val)

	if last.isIndex {
		if last.append {
			return errors.New("'-' is not valid for replace")
		}
		if parent.Kind != value.KindSequence {
			return errors.New("path segment expects a sequence")
		}
		return parent.SetItem(last.index, newVal)
	}
	if parent.Kind != value.KindMapping {
		return errors.New("path segment expects a mapping")
	}
	if _, ok := parent.Get(last.key); !ok {
		return errors.New("replace target does not exist: " + last.key)
	}
	parent.SetMapEntry(last.key, newVal)
	return nil
}

func applyAdd(root *value.Value, tokens []ptrToken, val *value.Value) error {
	parent, err := navigate(root, tokens[:len(tokens)-1])
	if err != nil {
		return err
	}
	last := tokens[len(tokens)-1]
	newVal := value.Clone(val)

	if last.isIndex {
		if parent.Kind != value.KindSequence {
			return errors.New("path segment expects a sequence")
		}
		if last.append {
			parent.AppendItem(newVal)
			return nil
		}
		return parent.InsertItem(last.index, newVal)
	}
	if parent.Kind != value.KindMapping {
		return errors.New("path segment expects a mapping")
	}
	parent.SetMapEntry(last.key, newVal)
	return nil
}
