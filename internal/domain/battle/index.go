package battle

import "github.com/riskibarqy/knight-arena/internal/domain/knight"

// KnightIndex resolves knight ids in constant time.
type KnightIndex map[string]knight.Knight

func NewKnightIndex(knights []knight.Knight) KnightIndex {
	idx := make(KnightIndex, len(knights))
	for _, k := range knights {
		idx[k.ID] = k
	}
	return idx
}

func (idx KnightIndex) Names() map[string]string {
	names := make(map[string]string, len(idx))
	for id, k := range idx {
		names[id] = k.Name
	}
	return names
}

// Resolve maps ids to knights in order, skipping unknown ids.
func (idx KnightIndex) Resolve(ids []string) []knight.Knight {
	out := make([]knight.Knight, 0, len(ids))
	for _, id := range ids {
		if k, ok := idx[id]; ok {
			out = append(out, k)
		}
	}
	return out
}

// CollectKnightIDs returns the distinct knight ids of battles in first-seen order.
func CollectKnightIDs(battles ...Battle) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, b := range battles {
		for _, id := range b.KnightIDs() {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// CollectStigmaIDs returns the distinct non-empty stigma ids of battles.
func CollectStigmaIDs(battles ...Battle) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, b := range battles {
		for _, id := range []string{b.WinnerStigmaID, b.LoserStigmaID} {
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
