// Package config implements the everdiff.yaml schema (spec.md §6, §7
// and SPEC_FULL.md §4.7): identity mode, ignore patterns and pre-patch
// rules, decoded ahead of any document parse so malformed config fails
// fast (a structured IgnorePatternSyntax for a bad ignore pattern, a
// wrapped error for a bad identity mode or patch op) rather than
// surfacing mid-run.
package config

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/goccy/go-yaml"

	"github.com/everdiff/everdiff/internal/document"
	"github.com/everdiff/everdiff/internal/filter"
	"github.com/everdiff/everdiff/internal/prepatch"
)

// Config is the loaded, validated form of everdiff.yaml.
type Config struct {
	Identity       document.Mode
	IgnoreMoved    bool
	IgnorePatterns []filter.Pattern
	Rules          []prepatch.Rule
}

// rawConfig mirrors the YAML schema literally; Value fields decode as
// generic Go values (ordered maps via yaml.MapSlice, courtesy of
// yaml.UseOrderedMap) so prepatch literals keep their declared order,
// matching the teacher's use of gyaml.MapSlice for order-preserving
// decode.
type rawConfig struct {
	Identity string    `yaml:"identity"`
	Ignore   rawIgnore `yaml:"ignore"`
	Prepatch []rawRule `yaml:"prepatches"`
}

type rawIgnore struct {
	Moved    bool     `yaml:"moved"`
	Patterns []string `yaml:"patterns"`
}

type rawRule struct {
	Name         string       `yaml:"name"`
	DocumentLike interface{}  `yaml:"documentLike"`
	Patches      []rawPatchOp `yaml:"patches"`
}

type rawPatchOp struct {
	Op    string      `yaml:"op"`
	Path  string      `yaml:"path"`
	Value interface{} `yaml:"value"`
}

// Load decodes and validates raw everdiff.yaml bytes into a Config.
func Load(data []byte) (Config, error) {
	var raw rawConfig
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap()); err != nil {
		return Config{}, fmt.Errorf("everdiff: config: %w", err)
	}

	cfg := Config{IgnoreMoved: raw.Ignore.Moved}

	switch raw.Identity {
	case "", "positional":
		cfg.Identity = document.ModePositional
	case "kubernetes":
		cfg.Identity = document.ModeKubernetes
	default:
		return Config{}, fmt.Errorf("everdiff: config: unknown identity mode %q", raw.Identity)
	}

	for _, p := range raw.Ignore.Patterns {
		pat, err := filter.Parse(p)
		if err != nil {
			return Config{}, err
		}
		cfg.IgnorePatterns = append(cfg.IgnorePatterns, pat)
	}

	for _, rr := range raw.Prepatch {
		rule, err := convertRule(rr)
		if err != nil {
			return Config{}, err
		}
		cfg.Rules = append(cfg.Rules, rule)
	}

	return cfg, nil
}

func convertRule(rr rawRule) (prepatch.Rule, error) {
	rule := prepatch.Rule{Name: rr.Name}
	if rr.DocumentLike != nil {
		rule.DocumentLike = fromGoccyValue(rr.DocumentLike)
	}

	for _, rp := range rr.Patches {
		op, opPath, err := validateOp(rp.Op, rp.Path)
		if err != nil {
			return prepatch.Rule{}, fmt.Errorf("everdiff: config: rule %q: %w", rr.Name, err)
		}
		rule.Patches = append(rule.Patches, prepatch.PatchOp{
			Op:    op,
			Path:  opPath,
			Value: fromGoccyValue(rp.Value),
		})
	}
	return rule, nil
}

// validateOp types and validates a patch's op/path through
// github.com/evanphx/json-patch/v5's Operation decoder, the same
// library the teacher uses to apply JSON Patch documents, restricting
// the accepted op set to replace/add per spec.md §4.2. The value
// literal is decoded separately (see fromGoccyValue) to keep its
// mapping-key order, which round-tripping through encoding/json would
// lose. The decoder rejects an add/replace operation that has no value
// field, so a placeholder value goes along with the op/path; it is never
// used.
func validateOp(op, path string) (string, string, error) {
	raw, err := json.Marshal([]map[string]interface{}{{"op": op, "path": path, "value": true}})
	if err != nil {
		return "", "", err
	}
	patch, err := jsonpatch.DecodePatch(raw)
	if err != nil {
		return "", "", err
	}
	if len(patch) != 1 {
		return "", "", fmt.Errorf("expected exactly one patch operation, got %d", len(patch))
	}
	kind := patch[0].Kind()
	if kind != "replace" && kind != "add" {
		return "", "", fmt.Errorf("unsupported patch op %q (only replace/add)", kind)
	}
	p, err := patch[0].Path()
	if err != nil {
		return "", "", err
	}
	return kind, p, nil
}
