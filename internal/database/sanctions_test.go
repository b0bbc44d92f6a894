package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-modguard/internal/models"
)

func TestAddAndListSanctions(t *testing.T) {
	d := openTestDB(t)

	id, err := d.AddSanction("g1", "u1", "mod1", models.SanctionWarn, "spamming", 0, "")
	require.NoError(t, err)
	assert.Positive(t, id)

	list, err := d.SanctionsForUser("g1", "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.SanctionWarn, list[0].Type)
	assert.True(t, list[0].Active)
	assert.True(t, list[0].EndTime.IsZero(), "permanent sanction has no end time")
}

func TestExpiredSanctions(t *testing.T) {
	d := openTestDB(t)

	_, err := d.AddSanction("g1", "u1", "mod1", models.SanctionTimeout, "", time.Second, "")
	require.NoError(t, err)
	_, err = d.AddSanction("g1", "u2", "mod1", models.SanctionBan, "", time.Hour, "")
	require.NoError(t, err)
	_, err = d.AddSanction("g1", "u3", "mod1", models.SanctionWarn, "", 0, "")
	require.NoError(t, err)

	expired, err := d.ExpiredSanctions(time.Now().Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "u1", expired[0].UserID)
}

func TestDeactivateMostRecentMatch(t *testing.T) {
	d := openTestDB(t)

	first, err := d.AddSanction("g1", "u1", "mod1", models.SanctionBan, "old", 0, "")
	require.NoError(t, err)
	require.NoError(t, d.MarkSanctionInactive(first))

	second, err := d.AddSanction("g1", "u1", "mod1", models.SanctionBan, "new", 0, "")
	require.NoError(t, err)

	require.NoError(t, d.DeactivateSanction("g1", "u1", models.SanctionBan))

	s, err := d.GetSanction(second)
	require.NoError(t, err)
	assert.False(t, s.Active)

	// Deactivating again with no active match is a no-op, not an error.
	require.NoError(t, d.DeactivateSanction("g1", "u1", models.SanctionBan))
}

func TestMarkInactiveIdempotent(t *testing.T) {
	d := openTestDB(t)

	id, err := d.AddSanction("g1", "u1", "mod1", models.SanctionTimeout, "", time.Second, "")
	require.NoError(t, err)

	require.NoError(t, d.MarkSanctionInactive(id))
	require.NoError(t, d.MarkSanctionInactive(id))

	s, err := d.GetSanction(id)
	require.NoError(t, err)
	assert.False(t, s.Active)
}

func TestDeleteSanction(t *testing.T) {
	d := openTestDB(t)

	id, err := d.AddSanction("g1", "u1", "mod1", models.SanctionWarn, "", 0, "")
	require.NoError(t, err)
	require.NoError(t, d.DeleteSanction(id))

	list, err := d.SanctionsForUser("g1", "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPrisonRoleStash(t *testing.T) {
	d := openTestDB(t)

	require.NoError(t, d.StoreUserRoles("g1", "u1", []string{"r1", "r2"}))

	roles, err := d.RestoreUserRoles("g1", "u1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"r1", "r2"}, roles)

	// Stash is cleared on restore.
	roles, err = d.RestoreUserRoles("g1", "u1")
	require.NoError(t, err)
	assert.Empty(t, roles)
}
