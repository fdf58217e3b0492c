package stigma

import (
	"fmt"
	"strings"
	"time"
)

// Stigma is a team-wide modifier picked for each side of a battle.
type Stigma struct {
	ID        string
	Name      string
	ImageURL  string
	CreatedAt time.Time
}

func (s Stigma) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("stigma id is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("stigma name is required")
	}
	return nil
}

type Index map[string]Stigma

func NewIndex(items []Stigma) Index {
	idx := make(Index, len(items))
	for _, s := range items {
		idx[s.ID] = s
	}
	return idx
}
