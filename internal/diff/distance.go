package diff

import "github.com/everdiff/everdiff/internal/value"

// distance measures how different a and b are, per spec.md §4.5 step 1:
// 0 for equal scalars, 1 for differing scalars, and for containers
// 1 plus the sum of child distances, with one-sided children each
// contributing 1. The result is capped at size(a)+size(b) so the
// array aligner stays cheap to run over a full distance matrix.
func distance(a, b *value.Value) int {
	d := rawDistance(a, b)
	if bound := value.Size(a) + value.Size(b); d > bound {
		return bound
	}
	return d
}

func rawDistance(a, b *value.Value) int {
	if value.Equal(a, b) {
		return 0
	}
	aEmpty, bEmpty := value.IsEmpty(a), value.IsEmpty(b)
	if aEmpty != bEmpty {
		if aEmpty {
			return 1 + value.Size(b)
		}
		return 1 + value.Size(a)
	}
	if aEmpty && bEmpty {
		return 0
	}
	if a.Kind != b.Kind {
		return value.Size(a) + value.Size(b)
	}
	switch a.Kind {
	case value.KindScalar:
		return 1
	case value.KindSequence:
		d := 1
		n := len(a.Items)
		if len(b.Items) < n {
			n = len(b.Items)
		}
		for i := 0; i < n; i++ {
			d += distance(a.Items[i], b.Items[i])
		}
		if len(a.Items) > len(b.Items) {
			d += len(a.Items) - n
		} else {
			d += len(b.Items) - n
		}
		return d
	case value.KindMapping:
		d := 1
		seen := make(map[string]bool, len(a.Entries))
		for _, e := range a.Entries {
			key, ok := e.Key.GetRawString()
			if !ok {
				d++
				continue
			}
			seen[key] = true
			if bv, ok := b.Get(key); ok {
				d += distance(e.Value, bv)
			} else {
				d++
			}
		}
		for _, e := range b.Entries {
			key, ok := e.Key.GetRawString()
			if ok && seen[key] {
				continue
			}
			d++
		}
		return d
	}
	return value.Size(a) + value.Size(b)
}
