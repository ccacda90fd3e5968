package model

import (
	"sort"
	"strconv"
)

// PositionMap maps option identifiers to 1-based display positions. The
// remote API expects positions as decimal strings.
type PositionMap map[OptionID]string

// Ordered returns identifiers sorted by their assigned position
func (m PositionMap) Ordered() []OptionID {
	ids := make([]OptionID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		pi, _ := strconv.Atoi(m[ids[i]])
		pj, _ := strconv.Atoi(m[ids[j]])
		return pi < pj
	})
	return ids
}

// Contiguous reports whether positions form the sequence 1..len(m) without
// gaps or duplicates
func (m PositionMap) Contiguous() bool {
	seen := make(map[int]bool, len(m))
	for _, pos := range m {
		n, err := strconv.Atoi(pos)
		if err != nil || n < 1 || n > len(m) || seen[n] {
			return false
		}
		seen[n] = true
	}
	return true
}
