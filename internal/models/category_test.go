package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseSensitivity(t *testing.T) {
	cases := []struct {
		in     string
		limit  int
		window time.Duration
	}{
		{"3/10s", 3, 10 * time.Second},
		{"1/5s", 1, 5 * time.Second},
		{" 7 / 30s ", 7, 30 * time.Second},
		{"5/10", 5, 10 * time.Second}, // trailing 's' optional
		// malformed inputs fall back to defaults
		{"", DefaultLimit, DefaultWindow},
		{"garbage", DefaultLimit, DefaultWindow},
		{"0/10s", DefaultLimit, DefaultWindow},
		{"3/-1s", DefaultLimit, DefaultWindow},
		{"x/10s", DefaultLimit, DefaultWindow},
	}

	for _, tc := range cases {
		limit, window := ParseSensitivity(tc.in)
		assert.Equal(t, tc.limit, limit, "limit for %q", tc.in)
		assert.Equal(t, tc.window, window, "window for %q", tc.in)
	}
}

func TestFormatSensitivityRoundTrip(t *testing.T) {
	s := FormatSensitivity(4, 20*time.Second)
	assert.Equal(t, "4/20s", s)

	limit, window := ParseSensitivity(s)
	assert.Equal(t, 4, limit)
	assert.Equal(t, 20*time.Second, window)
}

func TestCategoryValid(t *testing.T) {
	for _, cat := range AllCategories {
		assert.True(t, cat.Valid())
	}
	assert.False(t, Category("antinothing").Valid())
	assert.False(t, Category("antiban; DROP TABLE guild_settings").Valid())
}

func TestSanctionExpired(t *testing.T) {
	now := time.Unix(1000, 0)

	permanent := Sanction{Active: true}
	assert.False(t, permanent.Expired(now))

	open := Sanction{Active: true, EndTime: now.Add(time.Minute)}
	assert.False(t, open.Expired(now))

	past := Sanction{Active: true, EndTime: now.Add(-time.Minute)}
	assert.True(t, past.Expired(now))

	closed := Sanction{Active: false, EndTime: now.Add(-time.Minute)}
	assert.False(t, closed.Expired(now))
}
