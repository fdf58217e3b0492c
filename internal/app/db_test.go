package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostgresDSN(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		disable bool
		want    string
	}{
		{
			name:    "adds flag",
			raw:     "postgres://arena:secret@db:5432/knight_arena?sslmode=disable",
			disable: true,
			want:    "postgres://arena:secret@db:5432/knight_arena?disable_prepared_binary_result=yes&sslmode=disable",
		},
		{
			name:    "explicit value wins",
			raw:     "postgres://arena:secret@db:5432/knight_arena?disable_prepared_binary_result=no",
			disable: true,
			want:    "postgres://arena:secret@db:5432/knight_arena?disable_prepared_binary_result=no",
		},
		{
			name: "flag off",
			raw:  " postgres://arena:secret@db:5432/knight_arena ",
			want: "postgres://arena:secret@db:5432/knight_arena",
		},
		{
			name:    "keyword dsn untouched",
			raw:     "host=db user=arena dbname=knight_arena",
			disable: true,
			want:    "host=db user=arena dbname=knight_arena",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, postgresDSN(tt.raw, tt.disable))
		})
	}
}

func TestDatabaseName(t *testing.T) {
	assert.Equal(t, "knight_arena", databaseName("postgres://arena@db:5432/knight_arena?sslmode=disable"))
	assert.Equal(t, "knight_arena", databaseName("host=db user=arena dbname='knight_arena' sslmode=disable"))
	assert.Empty(t, databaseName("host=db user=arena"))
}

func TestTraceQuery(t *testing.T) {
	got := traceQuery(" SELECT   *\nFROM battles \t WHERE category = 'Arena' AND public_id = $1 ")
	assert.Equal(t, "SELECT * FROM battles WHERE category = '?' AND public_id = $1", got)

	assert.Equal(t, "INSERT INTO comments (content) VALUES ('?')", traceQuery("INSERT INTO comments (content) VALUES ('it''s over')"))
	assert.Empty(t, traceQuery("   "))

	long := traceQuery("SELECT " + strings.Repeat("ã", tracedQueryLimit))
	assert.True(t, strings.HasSuffix(long, "..."))
	assert.LessOrEqual(t, len(long), tracedQueryLimit+3)
}
