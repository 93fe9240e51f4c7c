package filter

import "github.com/everdiff/everdiff/internal/change"

// Filter drops changes whose path matches any ignore pattern (by exact
// match or by prefix match of the pattern over the path), and,
// independently, all Moved changes when ignoreMoved is set
// (spec.md §4.6). Order of the surviving changes is preserved.
func Filter(changes []change.Change, patterns []Pattern, ignoreMoved bool) []change.Change {
	if len(patterns) == 0 && !ignoreMoved {
		return changes
	}
	out := make([]change.Change, 0, len(changes))
	for _, c := range changes {
		if ignoreMoved && c.Kind == change.KindMoved {
			continue
		}
		if matchesAny(c, patterns) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matchesAny(c change.Change, patterns []Pattern) bool {
	for _, p := range patterns {
		if p.MatchesExact(c.Path) || p.MatchesPrefix(c.Path) {
			return true
		}
	}
	return false
}
