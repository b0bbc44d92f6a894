package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.CloseHandle() })
	return d
}

func TestGrantPermissionIdempotent(t *testing.T) {
	d := openTestDB(t)

	created, err := d.GrantPermission("g1", "r1", "timeout")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = d.GrantPermission("g1", "r1", "timeout")
	require.NoError(t, err)
	assert.False(t, created, "second grant should report already existed")

	cmds, err := d.PermissionsForRole("g1", "r1")
	require.NoError(t, err)
	assert.Equal(t, []string{"timeout"}, cmds)
}

func TestRevokePermission(t *testing.T) {
	d := openTestDB(t)

	_, err := d.GrantPermission("g1", "r1", "ban")
	require.NoError(t, err)
	_, err = d.GrantPermission("g1", "r1", "kick")
	require.NoError(t, err)

	require.NoError(t, d.RevokePermission("g1", "r1", "ban"))

	cmds, err := d.PermissionsForRole("g1", "r1")
	require.NoError(t, err)
	assert.Equal(t, []string{"kick"}, cmds)
}

func TestSetConstraintRequiresGrant(t *testing.T) {
	d := openTestDB(t)

	err := d.SetPermissionConstraint("g1", "r1", "timeout", ConstraintMaxDuration, 500)
	assert.ErrorIs(t, err, ErrNoBaseGrant)

	_, found, err := d.PermissionConstraint("r1", "timeout", ConstraintMaxDuration)
	require.NoError(t, err)
	assert.False(t, found, "rejected constraint must not be stored")
}

func TestSetConstraintLastWriteWins(t *testing.T) {
	d := openTestDB(t)

	_, err := d.GrantPermission("g1", "r1", "timeout")
	require.NoError(t, err)

	require.NoError(t, d.SetPermissionConstraint("g1", "r1", "timeout", ConstraintMaxDuration, 500))
	require.NoError(t, d.SetPermissionConstraint("g1", "r1", "timeout", ConstraintMaxDuration, 900))

	value, found, err := d.PermissionConstraint("r1", "timeout", ConstraintMaxDuration)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(900), value)
}

func TestRevokeCascadesConstraints(t *testing.T) {
	d := openTestDB(t)

	_, err := d.GrantPermission("g1", "r1", "timeout")
	require.NoError(t, err)
	require.NoError(t, d.SetPermissionConstraint("g1", "r1", "timeout", ConstraintMaxDuration, 500))

	require.NoError(t, d.RevokePermission("g1", "r1", "timeout"))

	_, found, err := d.PermissionConstraint("r1", "timeout", ConstraintMaxDuration)
	require.NoError(t, err)
	assert.False(t, found, "constraint must not survive its grant")
}
