// Package yamlparse implements the Parser component of spec.md §4.1:
// it splits a byte stream into Documents and converts each one's
// gopkg.in/yaml.v3 node tree into a span-annotated value.Value, the
// way the teacher library's parse.go/bounds_deep.go derive spans from
// yaml.v3 node positions rather than re-implementing a YAML scanner.
package yamlparse

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/everdiff/everdiff/internal/document"
	"github.com/everdiff/everdiff/internal/errs"
	"github.com/everdiff/everdiff/internal/value"
)

// Parse splits data into documents at YAML document markers and
// produces a Document per entry, each carrying a span-annotated Value
// tree and the full input text for later snippet rendering. sourceName
// is used only to attribute ParseErrors.
func Parse(data []byte, sourceName string) ([]*document.Document, error) {
	source := string(data)
	dec := yaml.NewDecoder(strings.NewReader(source))

	var docs []*document.Document
	for idx := 0; ; idx++ {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapParseError(sourceName, err)
		}

		root, perr := convert(&node, sourceName)
		if perr != nil {
			return nil, perr
		}
		docs = append(docs, document.New(root, source, idx))
	}
	return docs, nil
}

func wrapParseError(sourceName string, err error) error {
	var te *yaml.TypeError
	if errors.As(err, &te) {
		return &errs.ParseError{Source: sourceName, Detail: strings.Join(te.Errors, "; ")}
	}
	line, col, detail := extractLineCol(err.Error())
	return &errs.ParseError{Source: sourceName, Line: line, Col: col, Detail: detail}
}

// extractLineCol pulls a "line N: ..." prefix out of yaml.v3's error
// text when present; yaml.v3 does not expose a structured position for
// scanner errors, only this formatted string.
func extractLineCol(msg string) (line, col int, detail string) {
	const marker = "line "
	if i := strings.Index(msg, marker); i >= 0 {
		rest := msg[i+len(marker):]
		n := 0
		j := 0
		for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
			n = n*10 + int(rest[j]-'0')
			j++
		}
		if j > 0 {
			return n, 0, msg
		}
	}
	return 0, 0, msg
}

func convert(n *yaml.Node, sourceName string) (*value.Value, error) {
	if n == nil {
		return value.NewEmpty(value.Span{}), nil
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value.NewEmpty(value.Span{}), nil
		}
		return convert(n.Content[0], sourceName)
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, &errs.ParseError{Source: sourceName, Line: n.Line, Col: n.Column, Detail: "unresolvable alias"}
		}
		return convert(n.Alias, sourceName)
	case yaml.ScalarNode:
		return convertScalar(n), nil
	case yaml.SequenceNode:
		return convertSequence(n, sourceName)
	case yaml.MappingNode:
		return convertMapping(n, sourceName)
	default:
		return nil, &errs.ParseError{Source: sourceName, Line: n.Line, Col: n.Column, Detail: "unsupported node kind"}
	}
}

func convertScalar(n *yaml.Node) *value.Value {
	if n.Tag == "!!null" && n.Value == "" {
		return value.NewEmpty(scalarSpan(n))
	}
	return value.NewScalar(n.Tag, n.Value, scalarSpan(n))
}

func scalarSpan(n *yaml.Node) value.Span {
	end := n.Line + strings.Count(n.Value, "\n")
	return value.Span{StartLine: n.Line, EndLine: end}
}

func convertSequence(n *yaml.Node, sourceName string) (*value.Value, error) {
	items := make([]*value.Value, 0, len(n.Content))
	endLine := n.Line
	for _, c := range n.Content {
		cv, err := convert(c, sourceName)
		if err != nil {
			return nil, err
		}
		items = append(items, cv)
		if cv.Span.EndLine > endLine {
			endLine = cv.Span.EndLine
		}
	}
	return value.NewSequence(items, value.Span{StartLine: n.Line, EndLine: endLine}), nil
}

func convertMapping(n *yaml.Node, sourceName string) (*value.Value, error) {
	entries := make([]value.MappingEntry, 0, len(n.Content)/2)
	seen := make(map[string]bool, len(n.Content)/2)
	endLine := n.Line

	for i := 0; i+1 < len(n.Content); i += 2 {
		kn, vn := n.Content[i], n.Content[i+1]
		kv, err := convert(kn, sourceName)
		if err != nil {
			return nil, err
		}
		dupKey := kn.Tag + "\x00" + kn.Value
		if seen[dupKey] {
			return nil, &errs.ParseError{
				Source: sourceName, Line: kn.Line, Col: kn.Column,
				Detail: fmt.Sprintf("duplicate mapping key %q", kn.Value),
			}
		}
		seen[dupKey] = true

		vv, err := convert(vn, sourceName)
		if err != nil {
			return nil, err
		}
		entries = append(entries, value.MappingEntry{Key: kv, Value: vv})
		if vv.Span.EndLine > endLine {
			endLine = vv.Span.EndLine
		}
	}
	return value.NewMapping(entries, value.Span{StartLine: n.Line, EndLine: endLine}), nil
}
