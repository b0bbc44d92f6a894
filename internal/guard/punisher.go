package guard

import (
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"go-modguard/internal/database"
	"go-modguard/internal/dispatcher"
	"go-modguard/internal/logging"
	"go-modguard/internal/models"
	"go-modguard/internal/notifier"
)

// inflightTTL bounds how long an actor stays deduplicated after a breach.
// Repeated breach signals inside this span collapse into one punishment;
// past it, a still-present actor is punished again.
const inflightTTL = 60 * time.Second

// Punisher turns a breach into exactly one outbound punishment. Kicks and
// bans go through the REST dispatcher; derank edits roles over the session.
type Punisher struct {
	queue   *dispatcher.JobQueue
	session *discordgo.Session
	db      *database.Database

	mu       sync.Mutex
	inflight map[string]time.Time // "guild:actor" -> marked at
}

func NewPunisher(queue *dispatcher.JobQueue, session *discordgo.Session, db *database.Database) *Punisher {
	return &Punisher{
		queue:    queue,
		session:  session,
		db:       db,
		inflight: make(map[string]time.Time),
	}
}

// tryBegin marks (guild, actor) as being punished. Returns false when a
// punishment is already in flight, making repeated breach signals idempotent
// for the caller.
func (p *Punisher) tryBegin(guildID, actorID string) bool {
	key := guildID + ":" + actorID
	now := time.Now()

	p.mu.Lock()
	defer p.mu.Unlock()

	if marked, ok := p.inflight[key]; ok && now.Sub(marked) < inflightTTL {
		return false
	}
	p.inflight[key] = now

	for k, marked := range p.inflight {
		if now.Sub(marked) >= inflightTTL {
			delete(p.inflight, k)
		}
	}
	return true
}

// Clear lifts the in-flight mark, e.g. after a failed punishment.
func (p *Punisher) Clear(guildID, actorID string) {
	p.mu.Lock()
	delete(p.inflight, guildID+":"+actorID)
	p.mu.Unlock()
}

// Punish applies the configured punishment to a breaching actor and records
// the sanction. Safe to call on every breach signal.
func (p *Punisher) Punish(actor Actor, cat models.Category, punishment models.Punishment, reason string) {
	if !p.tryBegin(actor.GuildID, actor.ID) {
		return
	}

	switch punishment {
	case models.PunishBan:
		if !p.queue.Enqueue(dispatcher.NewBanJob(actor.GuildID, actor.ID, reason, string(cat))) {
			logging.Error("[GUARD] job queue full, dropped ban for %s in %s", actor.ID, actor.GuildID)
			p.Clear(actor.GuildID, actor.ID)
			return
		}
		p.recordSanction(actor, models.SanctionBan, reason)
	case models.PunishKick:
		if !p.queue.Enqueue(dispatcher.NewKickJob(actor.GuildID, actor.ID, reason, string(cat))) {
			logging.Error("[GUARD] job queue full, dropped kick for %s in %s", actor.ID, actor.GuildID)
			p.Clear(actor.GuildID, actor.ID)
			return
		}
		p.recordSanction(actor, models.SanctionKick, reason)
	case models.PunishDerank:
		p.derank(actor, reason)
	default:
		logging.Warn("[GUARD] unknown punishment %q for %s, defaulting to kick", punishment, actor.ID)
		if !p.queue.Enqueue(dispatcher.NewKickJob(actor.GuildID, actor.ID, reason, string(cat))) {
			logging.Error("[GUARD] job queue full, dropped kick for %s in %s", actor.ID, actor.GuildID)
			p.Clear(actor.GuildID, actor.ID)
			return
		}
		p.recordSanction(actor, models.SanctionKick, reason)
	}

	p.alert(actor, cat, punishment, reason)
}

// derank strips every role from the actor, leaving them in the guild.
func (p *Punisher) derank(actor Actor, reason string) {
	empty := []string{}
	_, err := p.session.GuildMemberEdit(actor.GuildID, actor.ID, &discordgo.GuildMemberParams{
		Roles: &empty,
	})
	if err != nil {
		// Missing rights or hierarchy; log and move on.
		logging.Warn("[GUARD] derank failed for %s in %s: %v", actor.ID, actor.GuildID, err)
		p.Clear(actor.GuildID, actor.ID)
		return
	}
	logging.Info("[GUARD] deranked %s in guild %s: %s", actor.ID, actor.GuildID, reason)
	p.recordSanction(actor, models.SanctionDerank, reason)
}

func (p *Punisher) recordSanction(actor Actor, t models.SanctionType, reason string) {
	if p.db == nil {
		return
	}
	if _, err := p.db.AddSanction(actor.GuildID, actor.ID, "modguard", t, reason, 0, ""); err != nil {
		logging.Warn("[GUARD] failed to record %s sanction for %s: %v", t, actor.ID, err)
	}
}

func (p *Punisher) alert(actor Actor, cat models.Category, punishment models.Punishment, reason string) {
	if p.db == nil {
		return
	}
	gs, err := p.db.GetGuildSettings(actor.GuildID)
	if err != nil {
		logging.Warn("[GUARD] settings lookup failed for guild %s: %v", actor.GuildID, err)
		return
	}
	notifier.SendRaidAlert(gs.RaidlogChannelID, string(cat), actor.ID, string(punishment), reason, gs.RaidPingRoleID)
}
