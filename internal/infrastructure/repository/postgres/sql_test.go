package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(sql.ErrNoRows))
	assert.True(t, isNotFound(fmt.Errorf("get knight: %w", sql.ErrNoRows)))
	assert.False(t, isNotFound(fmt.Errorf("pq: relation knights does not exist")))
}

func TestNullStringRoundTrip(t *testing.T) {
	t.Run("blank becomes null", func(t *testing.T) {
		got := toNullString("  ")
		assert.False(t, got.Valid)
		assert.Equal(t, "", fromNullString(got))
	})

	t.Run("value is trimmed", func(t *testing.T) {
		got := toNullString(" abc ")
		assert.True(t, got.Valid)
		assert.Equal(t, "abc", fromNullString(got))
	})
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, dedupe([]string{"a", " ", "b", "a"}))
	assert.Empty(t, dedupe(nil))
}
