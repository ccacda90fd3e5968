package usecase

import (
	"sort"
	"strconv"

	"github.com/secmon-lab/optsync/pkg/domain/model"
)

// BuildPositions computes the final display order. Enabled options whose
// value is not static are sorted by value and numbered from 1; static values
// follow in their declared order. Disabled options take no position. Static
// values that cannot be resolved in the snapshot are returned in missing.
func BuildPositions(snapshot *model.Snapshot, staticTail []string) (positions model.PositionMap, order []string, missing []string) {
	static := toSet(staticTail)

	var nonStatic model.Options
	for _, opt := range snapshot.Options() {
		if opt == nil || opt.Disabled {
			continue
		}
		if _, ok := static[opt.Value]; ok {
			continue
		}
		nonStatic = append(nonStatic, opt)
	}

	sort.SliceStable(nonStatic, func(i, j int) bool {
		if nonStatic[i].Value != nonStatic[j].Value {
			return nonStatic[i].Value < nonStatic[j].Value
		}
		return nonStatic[i].ID < nonStatic[j].ID
	})

	positions = make(model.PositionMap, len(nonStatic)+len(staticTail))
	for _, opt := range nonStatic {
		order = append(order, opt.Value)
		positions[opt.ID] = strconv.Itoa(len(positions) + 1)
	}

	for _, value := range staticTail {
		opt, ok := snapshot.Lookup(value)
		if !ok {
			missing = append(missing, value)
			continue
		}
		order = append(order, value)
		positions[opt.ID] = strconv.Itoa(len(positions) + 1)
	}

	return positions, order, missing
}
