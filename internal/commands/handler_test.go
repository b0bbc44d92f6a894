package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseUserDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"30s", 30 * time.Second},
		{"10m", 10 * time.Minute},
		{"1h", time.Hour},
		{"7d", 7 * 24 * time.Hour},
		{" 2H ", 2 * time.Hour},
	}
	for _, tc := range cases {
		got, err := parseUserDuration(tc.in)
		assert.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}

	for _, bad := range []string{"", "abc", "-5m", "0d", "1w"} {
		_, err := parseUserDuration(bad)
		assert.Error(t, err, "input %q should be rejected", bad)
	}
}

func TestFormatUserDuration(t *testing.T) {
	assert.Equal(t, "7d", formatUserDuration(7*24*time.Hour))
	assert.Equal(t, "1h0m0s", formatUserDuration(time.Hour))
	assert.Equal(t, "10m0s", formatUserDuration(10*time.Minute))
}
