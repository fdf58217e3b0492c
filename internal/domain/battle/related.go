package battle

import "sort"

// Related picks candidates sharing at least one knight between target's
// winning team and either of the candidate's teams, newest first, at most
// limit entries. The target itself is never returned.
func Related(target Battle, candidates []Battle, limit int) []Battle {
	if limit <= 0 || len(target.WinnerTeam) == 0 {
		return nil
	}

	winners := make(map[string]struct{}, len(target.WinnerTeam))
	for _, id := range target.WinnerTeam {
		winners[id] = struct{}{}
	}

	var out []Battle
	for _, c := range candidates {
		if c.ID == target.ID {
			continue
		}
		for _, id := range c.KnightIDs() {
			if _, ok := winners[id]; ok {
				out = append(out, c)
				break
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
