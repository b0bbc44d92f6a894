package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-modguard/internal/dispatcher"
	"go-modguard/internal/models"
)

func TestPunishDedupesWhileInFlight(t *testing.T) {
	q := dispatcher.NewJobQueue(4)
	p := NewPunisher(q, nil, nil)
	actor := Actor{ID: "u1", GuildID: "g1"}

	p.Punish(actor, models.CategoryBan, models.PunishBan, "raid")
	p.Punish(actor, models.CategoryBan, models.PunishBan, "raid")
	p.Punish(actor, models.CategoryBan, models.PunishBan, "raid")

	assert.Equal(t, 1, q.Len(), "repeated breach signals must collapse into one job")
}

func TestPunishClearsInflightWhenQueueFull(t *testing.T) {
	q := dispatcher.NewJobQueue(1)
	q.Enqueue(dispatcher.NewKickJob("g1", "other", "fill", "antiban"))

	p := NewPunisher(q, nil, nil)
	actor := Actor{ID: "u1", GuildID: "g1"}

	p.Punish(actor, models.CategoryBan, models.PunishBan, "raid")
	assert.True(t, p.tryBegin("g1", "u1"), "dropped ban must lift the in-flight mark")
}

func TestPunishUnknownFallbackClearsInflightWhenQueueFull(t *testing.T) {
	q := dispatcher.NewJobQueue(1)
	q.Enqueue(dispatcher.NewKickJob("g1", "other", "fill", "antiban"))

	p := NewPunisher(q, nil, nil)
	actor := Actor{ID: "u1", GuildID: "g1"}

	p.Punish(actor, models.CategoryBan, models.Punishment("vaporize"), "raid")
	assert.True(t, p.tryBegin("g1", "u1"), "dropped fallback kick must lift the in-flight mark")
}

func TestClearLiftsDedupe(t *testing.T) {
	q := dispatcher.NewJobQueue(4)
	p := NewPunisher(q, nil, nil)
	actor := Actor{ID: "u1", GuildID: "g1"}

	p.Punish(actor, models.CategoryBan, models.PunishBan, "raid")
	p.Clear(actor.GuildID, actor.ID)
	p.Punish(actor, models.CategoryBan, models.PunishBan, "raid")

	assert.Equal(t, 2, q.Len())
}
