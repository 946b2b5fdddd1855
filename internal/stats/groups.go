package stats

import (
	"slices"
	"strings"

	"shiplate/internal/shipment"
)

// UnknownGroup labels rows whose grouping field is missing or blank.
const UnknownGroup = "Unknown"

// GroupCount is one bottleneck candidate and how many late shipments it holds.
type GroupCount struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// CountBy tallies rows by the named field, largest group first.
// Groups with equal counts keep the order in which they were first seen.
func CountBy(rows []shipment.Row, key string) []GroupCount {
	index := make(map[string]int)
	groups := make([]GroupCount, 0)

	for _, r := range rows {
		label := strings.TrimSpace(r.Get(key))
		if label == "" {
			label = UnknownGroup
		}
		if i, ok := index[label]; ok {
			groups[i].Count++
			continue
		}
		index[label] = len(groups)
		groups = append(groups, GroupCount{Key: label, Count: 1})
	}

	slices.SortStableFunc(groups, func(a, b GroupCount) int {
		return b.Count - a.Count
	})
	return groups
}
