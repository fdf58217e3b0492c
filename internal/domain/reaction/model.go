package reaction

import (
	"fmt"
	"time"
)

type Type string

const (
	TypeLike    Type = "like"
	TypeDislike Type = "dislike"
)

func ParseType(v string) (Type, error) {
	switch Type(v) {
	case TypeLike, TypeDislike:
		return Type(v), nil
	default:
		return "", fmt.Errorf("invalid reaction type: %q", v)
	}
}

// State is the caller's reaction on one battle.
type State string

const (
	StateNone     State = "none"
	StateLiked    State = "liked"
	StateDisliked State = "disliked"
)

func StateOf(t Type) State {
	switch t {
	case TypeLike:
		return StateLiked
	case TypeDislike:
		return StateDisliked
	default:
		return StateNone
	}
}

// Type returns the reaction type stored for s; false for StateNone.
func (s State) Type() (Type, bool) {
	switch s {
	case StateLiked:
		return TypeLike, true
	case StateDisliked:
		return TypeDislike, true
	default:
		return "", false
	}
}

// Next applies a click on selected. Clicking the active type clears it;
// clicking the other type switches directly.
func Next(current State, selected Type) State {
	if StateOf(selected) == current {
		return StateNone
	}
	return StateOf(selected)
}

// Reaction is one user's vote on a battle; at most one per (battle, user).
type Reaction struct {
	ID        string
	BattleID  string
	UserID    string
	Type      Type
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Summary struct {
	Likes    int
	Dislikes int
	Mine     State
}

// Summarize counts reactions; Mine reflects userID's reaction when given.
func Summarize(list []Reaction, userID string) Summary {
	s := Summary{Mine: StateNone}
	for _, r := range list {
		switch r.Type {
		case TypeLike:
			s.Likes++
		case TypeDislike:
			s.Dislikes++
		}
		if userID != "" && r.UserID == userID {
			s.Mine = StateOf(r.Type)
		}
	}
	return s
}
