package config

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"

	"github.com/everdiff/everdiff/internal/value"
)

// fromGoccyValue converts a goccy/go-yaml UseOrderedMap-decoded value
// (yaml.MapSlice for mappings, []interface{} for sequences, plain Go
// scalars otherwise) into a value.Value, inferring the YAML 1.2
// core-schema tag from the decoded Go type the way the parser resolves
// it from yaml.v3 nodes.
func fromGoccyValue(v interface{}) *value.Value {
	switch t := v.(type) {
	case nil:
		return value.NewEmpty(value.Span{})
	case bool:
		return value.NewScalar(value.TagBool, strconv.FormatBool(t), value.Span{})
	case int:
		return value.NewScalar(value.TagInt, strconv.Itoa(t), value.Span{})
	case int64:
		return value.NewScalar(value.TagInt, strconv.FormatInt(t, 10), value.Span{})
	case uint64:
		return value.NewScalar(value.TagInt, strconv.FormatUint(t, 10), value.Span{})
	case float64:
		return value.NewScalar(value.TagFloat, strconv.FormatFloat(t, 'g', -1, 64), value.Span{})
	case string:
		return value.NewScalar(value.TagString, t, value.Span{})
	case []interface{}:
		items := make([]*value.Value, 0, len(t))
		for _, e := range t {
			items = append(items, fromGoccyValue(e))
		}
		return value.NewSequence(items, value.Span{})
	case yaml.MapSlice:
		entries := make([]value.MappingEntry, 0, len(t))
		for _, item := range t {
			entries = append(entries, value.MappingEntry{
				Key:   fromGoccyValue(mapKeyString(item.Key)),
				Value: fromGoccyValue(item.Value),
			})
		}
		return value.NewMapping(entries, value.Span{})
	default:
		return value.NewScalar(value.TagString, fmt.Sprint(t), value.Span{})
	}
}

// mapKeyString renders a decoded mapping key as a string; config keys
// are always field names, never numeric index-like structures.
func mapKeyString(k interface{}) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}
