package prepatch

import (
	"fmt"
	"strconv"
	"strings"
)

// ptrToken is one JSON Pointer segment (RFC 6901 subset, spec.md §6):
// either a mapping key or a sequence index/append marker. Grounded on
// the teacher's parseJSONPointer/ptrToken in jsonpatch.go, adapted to
// address value.Value trees instead of *yaml.Node.
type ptrToken struct {
	key     string
	index   int
	isIndex bool
	append  bool
}

func parseJSONPointer(p string) ([]ptrToken, error) {
	if p == "" {
		return nil, nil
	}
	if !strings.HasPrefix(p, "/") {
		return nil, fmt.Errorf("everdiff: JSON Pointer must start with '/': %q", p)
	}
	parts := strings.Split(p, "/")[1:]
	toks := make([]ptrToken, 0, len(parts))
	for _, s := range parts {
		seg := strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
		if seg == "-" {
			toks = append(toks, ptrToken{isIndex: true, append: true})
			continue
		}
		if i, err := strconv.Atoi(seg); err == nil && (seg == "0" || seg[0] != '0') {
			toks = append(toks, ptrToken{isIndex: true, index: i})
			continue
		}
		toks = append(toks, ptrToken{key: seg})
	}
	return toks, nil
}
