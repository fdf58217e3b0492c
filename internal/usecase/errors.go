package usecase

import (
	"errors"
	"strings"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrConflict              = errors.New("resource already exists")
	ErrAccountInactive       = errors.New("account is inactive")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

type sqlStateError interface {
	SQLState() string
}

const uniqueViolation = "23505"

func isDuplicateConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var state sqlStateError
	if errors.As(err, &state) && state.SQLState() == uniqueViolation {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value violates unique constraint")
}
