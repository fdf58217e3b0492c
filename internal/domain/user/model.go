package user

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/riskibarqy/knight-arena/internal/domain/profile"
)

const MinPasswordLen = 8

// Account is the authentication identity behind a profile.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID    string
	SessionID string
	Role      profile.Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == profile.RoleAdmin
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must have at least %d characters", MinPasswordLen)
	}
	return nil
}
