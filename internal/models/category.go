package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Category identifies a raid-detection trigger type. Values double as the
// column-name prefix in guild_settings ("antiban_on", "antiban_sensitivity",
// "antiban_punishment").
type Category string

const (
	CategoryBan      Category = "antiban"
	CategoryChannel  Category = "antichannel"
	CategoryRole     Category = "antirole"
	CategoryWebhook  Category = "antiwebhook"
	CategoryUnban    Category = "antiunban"
	CategoryBot      Category = "antibot"
	CategoryEveryone Category = "antieveryone"
	CategoryDeco     Category = "antideco"
	CategoryUpdate   Category = "antiupdate"
)

// AllCategories lists every known category. Anything outside this set is
// rejected at the storage boundary instead of being reflected into SQL.
var AllCategories = []Category{
	CategoryBan,
	CategoryChannel,
	CategoryRole,
	CategoryWebhook,
	CategoryUnban,
	CategoryBot,
	CategoryEveryone,
	CategoryDeco,
	CategoryUpdate,
}

func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Punishment is the action applied when a category breaches its limit.
type Punishment string

const (
	PunishKick   Punishment = "kick"
	PunishBan    Punishment = "ban"
	PunishDerank Punishment = "derank"
)

func (p Punishment) Valid() bool {
	switch p {
	case PunishKick, PunishBan, PunishDerank:
		return true
	}
	return false
}

// Detection defaults applied whenever per-guild configuration is absent or
// malformed.
const (
	DefaultLimit  = 3
	DefaultWindow = 5 * time.Second
)

// CategoryConfig is the per-guild, per-category security configuration.
type CategoryConfig struct {
	Enabled    bool
	Limit      int
	Window     time.Duration
	Punishment Punishment
}

// ParseSensitivity parses the stored "<limit>/<seconds>s" sensitivity form,
// e.g. "3/10s". Malformed input falls back to the documented defaults and is
// never an error.
func ParseSensitivity(s string) (limit int, window time.Duration) {
	limit, window = DefaultLimit, DefaultWindow

	parts := strings.SplitN(strings.TrimSpace(s), "/", 2)
	if len(parts) != 2 {
		return limit, window
	}

	l, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || l <= 0 {
		return limit, window
	}
	secs, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(parts[1]), "s"))
	if err != nil || secs <= 0 {
		return limit, window
	}

	return l, time.Duration(secs) * time.Second
}

// FormatSensitivity renders the canonical stored form.
func FormatSensitivity(limit int, window time.Duration) string {
	return fmt.Sprintf("%d/%ds", limit, int(window.Seconds()))
}
