package guard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-modguard/internal/models"
)

type fakeSettings struct {
	cfgs map[models.Category]models.CategoryConfig
}

func (f *fakeSettings) SecurityConfig(guildID string, cat models.Category) (models.CategoryConfig, error) {
	cfg, ok := f.cfgs[cat]
	if !ok {
		return models.CategoryConfig{
			Limit:      models.DefaultLimit,
			Window:     models.DefaultWindow,
			Punishment: models.PunishKick,
		}, nil
	}
	return cfg, nil
}

type fakeImmunity struct {
	listed map[string]bool
}

func (f *fakeImmunity) IsWhitelisted(guildID, userID string) (bool, error) {
	return f.listed[guildID+":"+userID], nil
}

func newTestDetector(cfgs map[models.Category]models.CategoryConfig, listed map[string]bool) *Detector {
	if listed == nil {
		listed = map[string]bool{}
	}
	return NewDetector(&fakeSettings{cfgs: cfgs}, &fakeImmunity{listed: listed}, NewTracker(15))
}

func antibanConfig(limit int, window time.Duration) map[models.Category]models.CategoryConfig {
	return map[models.Category]models.CategoryConfig{
		models.CategoryBan: {
			Enabled:    true,
			Limit:      limit,
			Window:     window,
			Punishment: models.PunishBan,
		},
	}
}

func TestBreachOnLimitWithinWindow(t *testing.T) {
	d := newTestDetector(antibanConfig(3, 10*time.Second), nil)
	actor := Actor{ID: "u1", GuildID: "g1"}

	breached, _ := d.RecordEvent(actor, models.CategoryBan, at(0))
	assert.False(t, breached)
	breached, _ = d.RecordEvent(actor, models.CategoryBan, at(3))
	assert.False(t, breached)
	breached, cfg := d.RecordEvent(actor, models.CategoryBan, at(6))
	assert.True(t, breached, "third ban within 10s must breach")
	assert.Equal(t, models.PunishBan, cfg.Punishment)
}

func TestNoBreachWhenEventsSpreadOut(t *testing.T) {
	d := newTestDetector(antibanConfig(3, 5*time.Second), nil)
	actor := Actor{ID: "u1", GuildID: "g1"}

	for _, sec := range []int{0, 10, 20, 30} {
		breached, _ := d.RecordEvent(actor, models.CategoryBan, at(sec))
		assert.False(t, breached, "event at t=%d should not breach", sec)
	}
}

func TestNoResetAfterBreach(t *testing.T) {
	d := newTestDetector(antibanConfig(3, 30*time.Second), nil)
	actor := Actor{ID: "u1", GuildID: "g1"}

	d.RecordEvent(actor, models.CategoryBan, at(0))
	d.RecordEvent(actor, models.CategoryBan, at(1))
	breached, _ := d.RecordEvent(actor, models.CategoryBan, at(2))
	assert.True(t, breached)

	// The window is not cleared: the very next event breaches again.
	breached, _ = d.RecordEvent(actor, models.CategoryBan, at(3))
	assert.True(t, breached)
}

func TestDisabledCategoryNeverBreaches(t *testing.T) {
	cfgs := antibanConfig(1, time.Minute)
	cfg := cfgs[models.CategoryBan]
	cfg.Enabled = false
	cfgs[models.CategoryBan] = cfg

	d := newTestDetector(cfgs, nil)
	actor := Actor{ID: "u1", GuildID: "g1"}

	for i := 0; i < 20; i++ {
		breached, _ := d.RecordEvent(actor, models.CategoryBan, at(i))
		assert.False(t, breached)
	}
}

func TestImmuneActorsNeverBreach(t *testing.T) {
	cases := []struct {
		name  string
		actor Actor
	}{
		{"owner", Actor{ID: "u1", GuildID: "g1", IsOwner: true}},
		{"admin", Actor{ID: "u2", GuildID: "g1", IsAdmin: true}},
		{"whitelisted", Actor{ID: "u3", GuildID: "g1"}},
	}

	d := newTestDetector(antibanConfig(1, time.Minute), map[string]bool{"g1:u3": true})

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				breached, _ := d.RecordEvent(tc.actor, models.CategoryBan, at(i))
				assert.False(t, breached)
			}
			// Immunity short-circuits before any state mutation.
			assert.Equal(t, 0, d.Tracker().Count(tc.actor.GuildID, tc.actor.ID, models.CategoryBan, at(60), time.Hour))
		})
	}
}

func TestDefaultsWhenConfigMissing(t *testing.T) {
	// Category enabled with fallback defaults limit=3 window=5s.
	cfgs := map[models.Category]models.CategoryConfig{
		models.CategoryChannel: {
			Enabled:    true,
			Limit:      models.DefaultLimit,
			Window:     models.DefaultWindow,
			Punishment: models.PunishKick,
		},
	}
	d := newTestDetector(cfgs, nil)
	actor := Actor{ID: "u1", GuildID: "g1"}

	breached, _ := d.RecordEvent(actor, models.CategoryChannel, at(0))
	assert.False(t, breached)
	breached, _ = d.RecordEvent(actor, models.CategoryChannel, at(1))
	assert.False(t, breached)
	breached, _ = d.RecordEvent(actor, models.CategoryChannel, at(2))
	assert.True(t, breached)
}

func TestEndToEndAntibanScenario(t *testing.T) {
	// Config {antiban_on, "3/10s", ban}: bans at t=0,3,6; third breaches.
	d := newTestDetector(antibanConfig(3, 10*time.Second), map[string]bool{"g1:trusted": true})

	raider := Actor{ID: "raider", GuildID: "g1"}
	var breached bool
	var cfg models.CategoryConfig
	for _, sec := range []int{0, 3, 6} {
		breached, cfg = d.RecordEvent(raider, models.CategoryBan, at(sec))
	}
	assert.True(t, breached)
	assert.Equal(t, models.PunishBan, cfg.Punishment)

	trusted := Actor{ID: "trusted", GuildID: "g1"}
	for _, sec := range []int{0, 3, 6} {
		breached, _ = d.RecordEvent(trusted, models.CategoryBan, at(sec))
		assert.False(t, breached, "immune actor must never breach")
	}
}
