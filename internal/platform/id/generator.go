package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates public identifiers for stored records and sessions.
type Generator interface {
	NewID() (string, error)
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return v.String(), nil
}

// Valid reports whether v parses as a uuid.
func Valid(v string) bool {
	_, err := uuid.Parse(v)
	return err == nil
}
