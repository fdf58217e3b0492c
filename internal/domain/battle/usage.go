package battle

import "sort"

type KnightUsage struct {
	KnightID string
	Count    int
}

// CountKnightUsage counts appearances of each knight across winner and loser
// teams. Results are sorted by count descending; equal counts keep the order
// in which knights were first seen.
func CountKnightUsage(battles []Battle) []KnightUsage {
	position := make(map[string]int)
	var usage []KnightUsage
	for _, b := range battles {
		for _, id := range b.KnightIDs() {
			if i, ok := position[id]; ok {
				usage[i].Count++
				continue
			}
			position[id] = len(usage)
			usage = append(usage, KnightUsage{KnightID: id, Count: 1})
		}
	}

	sort.SliceStable(usage, func(i, j int) bool {
		return usage[i].Count > usage[j].Count
	})
	return usage
}

// TopKnights returns the n most used knights.
func TopKnights(battles []Battle, n int) []KnightUsage {
	usage := CountKnightUsage(battles)
	if n >= 0 && len(usage) > n {
		usage = usage[:n]
	}
	return usage
}
