package usecase

import (
	"slices"
	"strings"
)

// PlanDiff computes which values must be disabled (present remotely but not
// desired) and which must be added (desired but absent remotely). Both
// results are sorted so that logs and tests are deterministic; the order has
// no meaning for the remote field.
func PlanDiff(current, desired []string) (toDisable, toAdd []string) {
	currentSet := toSet(current)
	desiredSet := toSet(desired)

	for value := range currentSet {
		if _, ok := desiredSet[value]; !ok {
			toDisable = append(toDisable, value)
		}
	}
	for value := range desiredSet {
		if _, ok := currentSet[value]; !ok {
			toAdd = append(toAdd, value)
		}
	}

	slices.Sort(toDisable)
	slices.Sort(toAdd)
	return toDisable, toAdd
}

// MergeDesired builds the desired list: the static tail first, then the
// externally supplied values. Values are trimmed, blanks dropped and
// duplicates removed keeping the first occurrence. The second return value
// counts values that came from external input and are not static.
func MergeDesired(staticTail, external []string) ([]string, int) {
	seen := make(map[string]struct{})
	var merged []string

	for _, value := range normalize(staticTail) {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		merged = append(merged, value)
	}

	staticCount := len(merged)
	for _, value := range normalize(external) {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		merged = append(merged, value)
	}

	return merged, len(merged) - staticCount
}

// NormalizeStaticTail trims and deduplicates static values keeping the
// declared order
func NormalizeStaticTail(values []string) []string {
	tail, _ := MergeDesired(values, nil)
	return tail
}

func normalize(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
