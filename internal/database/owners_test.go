package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBotOwnerLifecycle(t *testing.T) {
	d := openTestDB(t)

	ok, err := d.IsBotOwner("u1")
	require.NoError(t, err)
	assert.False(t, ok)

	added, err := d.AddBotOwner("u1")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = d.AddBotOwner("u1")
	require.NoError(t, err)
	assert.False(t, added, "adding an existing owner must be a no-op")

	ok, err = d.IsBotOwner("u1")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = d.AddBotOwner("u2")
	require.NoError(t, err)
	owners, err := d.BotOwners()
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, owners)

	require.NoError(t, d.RemoveBotOwner("u1"))
	ok, err = d.IsBotOwner("u1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBlacklistLifecycle(t *testing.T) {
	d := openTestDB(t)

	added, err := d.AddToBlacklist("u1", "raided a partner server")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = d.AddToBlacklist("u1", "again")
	require.NoError(t, err)
	assert.False(t, added, "blacklisting twice must be a no-op")

	barred, err := d.IsBlacklisted("u1")
	require.NoError(t, err)
	assert.True(t, barred)

	require.NoError(t, d.RemoveFromBlacklist("u1"))
	barred, err = d.IsBlacklisted("u1")
	require.NoError(t, err)
	assert.False(t, barred)
}
