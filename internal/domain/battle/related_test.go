package battle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelated(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	target := Battle{ID: "t", WinnerTeam: []string{"seiya", "shiryu"}, LoserTeam: []string{"ikki"}, CreatedAt: base}

	candidates := []Battle{
		target,
		{ID: "c1", WinnerTeam: []string{"hyoga"}, LoserTeam: []string{"seiya"}, CreatedAt: base.Add(1 * time.Hour)},
		{ID: "c2", WinnerTeam: []string{"shiryu"}, LoserTeam: []string{"shun"}, CreatedAt: base.Add(3 * time.Hour)},
		{ID: "c3", WinnerTeam: []string{"ikki"}, LoserTeam: []string{"shun"}, CreatedAt: base.Add(5 * time.Hour)},
		{ID: "c4", WinnerTeam: []string{"seiya"}, LoserTeam: []string{"hyoga"}, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "c5", WinnerTeam: []string{"seiya"}, LoserTeam: []string{"ikki"}, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "c6", WinnerTeam: []string{"june"}, LoserTeam: []string{"shiryu"}, CreatedAt: base.Add(-time.Hour)},
	}

	got := Related(target, candidates, RelatedLimit)
	ids := make([]string, 0, len(got))
	for _, b := range got {
		ids = append(ids, b.ID)
	}

	// c3 only shares a loser-side knight with the target and is excluded.
	assert.Equal(t, []string{"c2", "c5", "c4", "c1"}, ids)
}

func TestRelated_Limits(t *testing.T) {
	t.Parallel()

	target := Battle{ID: "t", WinnerTeam: []string{"a"}}
	candidates := []Battle{{ID: "x", WinnerTeam: []string{"a"}}}

	assert.Empty(t, Related(target, candidates, 0))
	assert.Empty(t, Related(Battle{ID: "t"}, candidates, 4))
	assert.Len(t, Related(target, candidates, 4), 1)
}
