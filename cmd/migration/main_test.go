package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/knight-arena/internal/platform/logging"
)

type fakeMigrator struct {
	upErr      error
	steps      []int
	target     uint
	forced     int
	version    uint
	dirty      bool
	versionErr error
}

func (f *fakeMigrator) Up() error { return f.upErr }

func (f *fakeMigrator) Steps(n int) error {
	f.steps = append(f.steps, n)
	return nil
}

func (f *fakeMigrator) Migrate(version uint) error {
	f.target = version
	return migrate.ErrNoChange
}

func (f *fakeMigrator) Force(version int) error {
	f.forced = version
	return nil
}

func (f *fakeMigrator) Version() (uint, bool, error) {
	return f.version, f.dirty, f.versionErr
}

func TestRun(t *testing.T) {
	logger := logging.NewNop()

	t.Run("up ignores no change", func(t *testing.T) {
		m := &fakeMigrator{upErr: migrate.ErrNoChange}
		require.NoError(t, run(m, []string{"up"}, &bytes.Buffer{}, logger))
	})

	t.Run("up surfaces failures", func(t *testing.T) {
		m := &fakeMigrator{upErr: errors.New("boom")}
		require.Error(t, run(m, []string{"UP"}, &bytes.Buffer{}, logger))
	})

	t.Run("down defaults to one step", func(t *testing.T) {
		m := &fakeMigrator{}
		require.NoError(t, run(m, []string{"down"}, &bytes.Buffer{}, logger))
		require.NoError(t, run(m, []string{"down", "3"}, &bytes.Buffer{}, logger))
		assert.Equal(t, []int{-1, -3}, m.steps)
	})

	t.Run("down rejects zero", func(t *testing.T) {
		require.Error(t, run(&fakeMigrator{}, []string{"down", "0"}, &bytes.Buffer{}, logger))
	})

	t.Run("version prints state", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run(&fakeMigrator{version: 1, dirty: true}, []string{"version"}, &out, logger))
		assert.Equal(t, "version: 1\ndirty: true\n", out.String())
	})

	t.Run("version none", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run(&fakeMigrator{versionErr: migrate.ErrNilVersion}, []string{"version"}, &out, logger))
		assert.Equal(t, "version: none\ndirty: false\n", out.String())
	})

	t.Run("force and goto", func(t *testing.T) {
		m := &fakeMigrator{}
		require.NoError(t, run(m, []string{"force", "2"}, &bytes.Buffer{}, logger))
		require.NoError(t, run(m, []string{"goto", "1"}, &bytes.Buffer{}, logger))
		assert.Equal(t, 2, m.forced)
		assert.Equal(t, uint(1), m.target)
	})

	t.Run("missing arguments", func(t *testing.T) {
		require.Error(t, run(&fakeMigrator{}, []string{"force"}, &bytes.Buffer{}, logger))
		require.Error(t, run(&fakeMigrator{}, []string{"goto", "x"}, &bytes.Buffer{}, logger))
	})

	t.Run("unknown command", func(t *testing.T) {
		require.ErrorIs(t, run(&fakeMigrator{}, []string{"sideways"}, &bytes.Buffer{}, logger), errUsage)
		require.ErrorIs(t, run(&fakeMigrator{}, nil, &bytes.Buffer{}, logger), errUsage)
	})
}

func TestParseVersion(t *testing.T) {
	v, err := parseVersion(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, 12, v)

	_, err = parseVersion("-1")
	require.Error(t, err)
}

func TestNormalizeDBURL(t *testing.T) {
	got := normalizeDBURL("postgres://u:p@localhost:5432/knight_arena?sslmode=disable", true)
	assert.Contains(t, got, "disable_prepared_binary_result=yes")

	in := "postgres://u:p@localhost:5432/knight_arena?sslmode=disable"
	assert.Equal(t, in, normalizeDBURL(in, false))
}

func TestEnvBool(t *testing.T) {
	t.Setenv("MIGRATION_FLAG", "")
	assert.True(t, envBool("MIGRATION_FLAG", true))

	t.Setenv("MIGRATION_FLAG", "false")
	assert.False(t, envBool("MIGRATION_FLAG", true))

	t.Setenv("MIGRATION_FLAG", "nope")
	assert.False(t, envBool("MIGRATION_FLAG", false))
}
