package guard

import (
	"time"

	"go-modguard/internal/logging"
	"go-modguard/internal/models"
)

// Actor is the identity a platform event is attributed to, with the
// attributes the immunity check needs.
type Actor struct {
	ID      string
	GuildID string
	IsOwner bool
	IsAdmin bool
}

// SettingsStore supplies per-guild detection configuration.
type SettingsStore interface {
	SecurityConfig(guildID string, cat models.Category) (models.CategoryConfig, error)
}

// ImmunityStore answers explicit whitelist membership.
type ImmunityStore interface {
	IsWhitelisted(guildID, userID string) (bool, error)
}

// Detector decides whether an actor crossed a configured rate threshold
// within a sliding window.
type Detector struct {
	settings SettingsStore
	immunity ImmunityStore
	tracker  *Tracker
}

func NewDetector(settings SettingsStore, immunity ImmunityStore, tracker *Tracker) *Detector {
	return &Detector{
		settings: settings,
		immunity: immunity,
		tracker:  tracker,
	}
}

// Tracker exposes the window store for opportunistic sweeping.
func (d *Detector) Tracker() *Tracker {
	return d.tracker
}

// Immune reports whether an actor is exempt from detection: group owner,
// administrator, or explicitly whitelisted.
func (d *Detector) Immune(actor Actor) bool {
	if actor.IsOwner || actor.IsAdmin {
		return true
	}
	listed, err := d.immunity.IsWhitelisted(actor.GuildID, actor.ID)
	if err != nil {
		// Storage failure must not silence detection.
		logging.Warn("whitelist lookup failed for %s in %s: %v", actor.ID, actor.GuildID, err)
		return false
	}
	return listed
}

// RecordEvent observes one categorized event and reports whether the actor
// breached the configured threshold. Immune actors mutate no state. The
// window is intentionally not reset on a breach: a continuously misbehaving
// actor keeps breaching until punished or the window empties.
func (d *Detector) RecordEvent(actor Actor, cat models.Category, ts time.Time) (bool, models.CategoryConfig) {
	if d.Immune(actor) {
		return false, models.CategoryConfig{}
	}

	cfg, err := d.settings.SecurityConfig(actor.GuildID, cat)
	if err != nil {
		logging.Warn("security config lookup failed for guild %s category %s: %v", actor.GuildID, cat, err)
		return false, cfg
	}
	if !cfg.Enabled {
		return false, cfg
	}

	count := d.tracker.Observe(actor.GuildID, actor.ID, cat, ts, cfg.Window)
	if count >= cfg.Limit {
		logging.Info("[GUARD] %s breach: actor %s in guild %s (%d/%d within %s)",
			cat, actor.ID, actor.GuildID, count, cfg.Limit, cfg.Window)
		return true, cfg
	}

	return false, cfg
}
