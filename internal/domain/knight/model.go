package knight

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/riskibarqy/knight-arena/internal/platform/slug"
)

const MaxNameLen = 80

// Knight is a selectable character that takes part in battles.
type Knight struct {
	ID        string
	Name      string
	ImageURL  string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (k Knight) Validate() error {
	if k.ID == "" {
		return fmt.Errorf("knight id is required")
	}
	return ValidateName(k.Name)
}

func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("knight name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		return fmt.Errorf("knight name must have at most %d characters", MaxNameLen)
	}
	if slug.Slugify(name) == "" {
		return fmt.Errorf("knight name must contain letters or digits")
	}
	return nil
}

func (k Knight) Slug() string {
	return slug.Slugify(k.Name)
}

func (k Knight) URL() string {
	return slug.KnightURL(k.ID, k.Name)
}

type Filter struct {
	Search string
}
