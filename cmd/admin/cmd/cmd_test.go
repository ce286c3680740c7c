package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/contacts/internal/testutil"
)

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_CONNECTION", testutil.SQLiteDSN(t))
}

func run(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	c.SetOut(out)
	c.SetErr(out)
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

func TestCategoryCmd(t *testing.T) {
	setupEnv(t)

	out, err := run(t, CategoryCmd(), "add", "Friends")
	require.NoError(t, err)
	assert.Contains(t, out, `created category 1 "Friends"`)

	out, err = run(t, CategoryCmd(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Friends")

	out, err = run(t, CategoryCmd(), "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted category 1")

	_, err = run(t, CategoryCmd(), "delete", "1")
	assert.ErrorContains(t, err, "category 1 not found")

	_, err = run(t, CategoryCmd(), "delete", "one")
	assert.ErrorContains(t, err, "invalid category id")
}

func TestUserCmd_UnknownUser(t *testing.T) {
	setupEnv(t)

	_, err := run(t, UserCmd(), "delete", "nobody")

	assert.ErrorContains(t, err, `user "nobody" not found`)
}

func TestMigrateCmd(t *testing.T) {
	setupEnv(t)

	out, err := run(t, MigrateCmd(), "up")
	require.NoError(t, err)
	assert.Contains(t, out, "schema version 3")

	out, err = run(t, MigrateCmd(), "down")
	require.NoError(t, err)
	assert.Contains(t, out, "schema version 2")
}
