package userknight

import (
	"context"
	"time"
)

// UserKnight marks whether a member owns a knight.
type UserKnight struct {
	UserID    string
	KnightID  string
	Owned     bool
	UpdatedAt time.Time
}

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]UserKnight, error)
	// Upsert is keyed by (user, knight).
	Upsert(ctx context.Context, uk UserKnight) error
}
