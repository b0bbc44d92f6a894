package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-modguard/internal/models"
)

func TestSecurityConfigDefaults(t *testing.T) {
	d := openTestDB(t)
	require.NoError(t, d.EnsureGuildSettings("g1"))

	cfg, err := d.SecurityConfig("g1", models.CategoryBan)
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 3, cfg.Limit)
	assert.Equal(t, 10*time.Second, cfg.Window)
	assert.Equal(t, models.PunishBan, cfg.Punishment)
}

func TestSecurityConfigAbsentGuild(t *testing.T) {
	d := openTestDB(t)

	// No settings row at all: detection disabled, documented defaults.
	cfg, err := d.SecurityConfig("nope", models.CategoryChannel)
	require.NoError(t, err)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, models.DefaultLimit, cfg.Limit)
	assert.Equal(t, models.DefaultWindow, cfg.Window)
}

func TestSecurityConfigRoundTrip(t *testing.T) {
	d := openTestDB(t)

	require.NoError(t, d.SetCategoryEnabled("g1", models.CategoryBan, true))
	require.NoError(t, d.SetCategorySensitivity("g1", models.CategoryBan, "5/30s"))
	require.NoError(t, d.SetCategoryPunishment("g1", models.CategoryBan, models.PunishDerank))

	cfg, err := d.SecurityConfig("g1", models.CategoryBan)
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 5, cfg.Limit)
	assert.Equal(t, 30*time.Second, cfg.Window)
	assert.Equal(t, models.PunishDerank, cfg.Punishment)
}

func TestSecurityConfigMalformedSensitivity(t *testing.T) {
	d := openTestDB(t)

	require.NoError(t, d.SetCategorySensitivity("g1", models.CategoryEveryone, "garbage"))

	cfg, err := d.SecurityConfig("g1", models.CategoryEveryone)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultLimit, cfg.Limit)
	assert.Equal(t, models.DefaultWindow, cfg.Window)
}

func TestUnknownCategoryRejected(t *testing.T) {
	d := openTestDB(t)

	_, err := d.SecurityConfig("g1", models.Category("antihax"))
	assert.Error(t, err)

	assert.Error(t, d.SetCategoryEnabled("g1", models.Category("antihax"), true))
	assert.Error(t, d.SetCategoryPunishment("g1", models.CategoryBan, models.Punishment("explode")))
}

func TestSetAllCategoriesEnabled(t *testing.T) {
	d := openTestDB(t)

	require.NoError(t, d.SetAllCategoriesEnabled("g1", true))
	for _, cat := range models.AllCategories {
		cfg, err := d.SecurityConfig("g1", cat)
		require.NoError(t, err)
		assert.True(t, cfg.Enabled, "category %s should be on", cat)
	}
}

func TestWhitelistMembership(t *testing.T) {
	d := openTestDB(t)

	added, err := d.AddToWhitelist("g1", "u1")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = d.AddToWhitelist("g1", "u1")
	require.NoError(t, err)
	assert.False(t, added)

	ok, err := d.IsWhitelisted("g1", "u1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, d.RemoveFromWhitelist("g1", "u1"))
	ok, err = d.IsWhitelisted("g1", "u1")
	require.NoError(t, err)
	assert.False(t, ok)
}
