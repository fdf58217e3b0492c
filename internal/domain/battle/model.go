package battle

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/riskibarqy/knight-arena/internal/platform/slug"
)

var (
	ErrEmptyTeam       = errors.New("team must have at least one knight")
	ErrDuplicateKnight = errors.New("knight repeated within a team")
	ErrMissingStigma   = errors.New("both teams need a stigma")
	ErrMissingCategory = errors.New("category is required")
	ErrTeamTooLarge    = errors.New("team exceeds maximum size")
)

const (
	MaxTeamSize     = 5
	MaxCategoryLen  = 40
	DefaultPageSize = 12
	MaxPageSize     = 50
	RelatedLimit    = 4
)

// Battle records one fight between two ordered teams of knight ids.
type Battle struct {
	ID             string
	WinnerTeam     []string
	LoserTeam      []string
	WinnerStigmaID string
	LoserStigmaID  string
	Category       string
	Meta           bool
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// KnightIDs lists winner ids followed by loser ids, duplicates included.
func (b Battle) KnightIDs() []string {
	out := make([]string, 0, len(b.WinnerTeam)+len(b.LoserTeam))
	out = append(out, b.WinnerTeam...)
	return append(out, b.LoserTeam...)
}

func (b Battle) Involves(knightID string) bool {
	for _, id := range b.KnightIDs() {
		if id == knightID {
			return true
		}
	}
	return false
}

func (b Battle) URL(idx KnightIndex) string {
	return slug.BattleURL(b.WinnerTeam, b.LoserTeam, idx.Names())
}

// Validate applies the creation rules. Disjointness of the two teams is not
// checked.
func (b Battle) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("battle id is required")
	}
	if err := validateTeam("winner", b.WinnerTeam); err != nil {
		return err
	}
	if err := validateTeam("loser", b.LoserTeam); err != nil {
		return err
	}
	if b.WinnerStigmaID == "" || b.LoserStigmaID == "" {
		return ErrMissingStigma
	}
	category := strings.TrimSpace(b.Category)
	if category == "" {
		return ErrMissingCategory
	}
	if utf8.RuneCountInString(category) > MaxCategoryLen {
		return fmt.Errorf("category must have at most %d characters", MaxCategoryLen)
	}
	return nil
}

func validateTeam(side string, team []string) error {
	if len(team) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyTeam, side)
	}
	if len(team) > MaxTeamSize {
		return fmt.Errorf("%w: %s has %d, max %d", ErrTeamTooLarge, side, len(team), MaxTeamSize)
	}
	seen := make(map[string]struct{}, len(team))
	for _, id := range team {
		if id == "" {
			return fmt.Errorf("%w: %s", ErrEmptyTeam, side)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s knight=%s", ErrDuplicateKnight, side, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

type Sort string

const (
	SortRecent Sort = "recent"
	SortOldest Sort = "oldest"
)

// Filter drives paginated battle listings. Zero values mean "any".
type Filter struct {
	Category  string
	Meta      *bool
	KnightID  string
	CreatedBy string
	Sort      Sort
	Page      int
	PageSize  int
}

// Normalize fills defaults and clamps the page size.
func (f Filter) Normalize() Filter {
	f.Category = strings.TrimSpace(f.Category)
	f.KnightID = strings.TrimSpace(f.KnightID)
	f.CreatedBy = strings.TrimSpace(f.CreatedBy)
	if f.Sort != SortOldest {
		f.Sort = SortRecent
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	return f
}

type Page struct {
	Items    []Battle
	Total    int
	Page     int
	PageSize int
}
