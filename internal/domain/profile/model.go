package profile

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/riskibarqy/knight-arena/internal/platform/slug"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

const (
	MinDisplayNameLen = 3
	MaxDisplayNameLen = 32
)

// Profile is the public side of an account. UserID equals the account id.
type Profile struct {
	UserID           string
	DisplayName      string
	Active           bool
	FavoriteKnightID string
	Role             Role
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (p Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Profile) URL() string {
	return slug.MemberURL(p.UserID, p.DisplayName)
}

func (p Profile) Validate() error {
	if p.UserID == "" {
		return fmt.Errorf("profile user id is required")
	}
	if err := ValidateDisplayName(p.DisplayName); err != nil {
		return err
	}
	if !p.Role.Valid() {
		return fmt.Errorf("invalid profile role: %q", p.Role)
	}
	return nil
}

func ValidateDisplayName(name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n < MinDisplayNameLen || n > MaxDisplayNameLen {
		return fmt.Errorf("display name must have between %d and %d characters", MinDisplayNameLen, MaxDisplayNameLen)
	}
	return nil
}

// Filter narrows member listings.
type Filter struct {
	Search     string
	ActiveOnly bool
}
