package bot

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"go-modguard/internal/database"
	"go-modguard/internal/guard"
	"go-modguard/internal/logging"
	"go-modguard/internal/models"
	"go-modguard/internal/notifier"
)

// Discord audit log action types the guard correlates against.
const (
	auditGuildUpdate      = 1
	auditChannelCreate    = 10
	auditChannelDelete    = 12
	auditBanAdd           = 22
	auditBanRemove        = 23
	auditMemberDisconnect = 27
	auditBotAdd           = 28
	auditRoleCreate       = 30
	auditRoleDelete       = 32
	auditWebhookCreate    = 50
)

// auditLogCache stores recent audit log entries to correlate with events
type auditLogCache struct {
	mu      sync.RWMutex
	entries map[string]*auditCacheEntry
}

type auditCacheEntry struct {
	actorID   string
	targetID  string
	action    int
	timestamp time.Time
}

var (
	auditCache = &auditLogCache{
		entries: make(map[string]*auditCacheEntry),
	}
	cacheTTL = 5 * time.Second
)

func (c *auditLogCache) Store(guildID string, action int, actorID, targetID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := guildID + ":" + strconv.Itoa(action)
	c.entries[key] = &auditCacheEntry{
		actorID:   actorID,
		targetID:  targetID,
		action:    action,
		timestamp: time.Now(),
	}

	// Cleanup old entries
	for k, v := range c.entries {
		if time.Since(v.timestamp) > cacheTTL {
			delete(c.entries, k)
		}
	}
}

func (c *auditLogCache) Get(guildID string, action int) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	key := guildID + ":" + strconv.Itoa(action)
	if entry, exists := c.entries[key]; exists {
		if time.Since(entry.timestamp) < cacheTTL {
			return entry.actorID, true
		}
	}
	return "", false
}

// fetchActorFromAuditLog resolves who performed an action, preferring the
// short-TTL cache fed by GuildAuditLogEntryCreate over a REST round trip.
// Returns "" when the actor cannot be determined or is this bot itself.
func fetchActorFromAuditLog(sess *discordgo.Session, guildID string, actionType int, targetID string) string {
	if actorID, found := auditCache.Get(guildID, actionType); found {
		return skipSelf(sess, actorID)
	}

	audit, err := sess.GuildAuditLog(guildID, "", "", actionType, 1)
	if err != nil {
		logging.Warn("Failed to fetch audit log for guild %s action %d: %v", guildID, actionType, err)
		return ""
	}
	if len(audit.AuditLogEntries) == 0 {
		return ""
	}

	entry := audit.AuditLogEntries[0]
	auditCache.Store(guildID, actionType, entry.UserID, targetID)

	return skipSelf(sess, entry.UserID)
}

// skipSelf drops actions performed by the bot itself so its own punishments
// never feed back into detection.
func skipSelf(sess *discordgo.Session, actorID string) string {
	if sess.State.User != nil && actorID == sess.State.User.ID {
		return ""
	}
	return actorID
}

// Handlers wires gateway events into the detection pipeline.
type Handlers struct {
	detector *guard.Detector
	punisher *guard.Punisher
	db       *database.Database
}

func NewHandlers(detector *guard.Detector, punisher *guard.Punisher, db *database.Database) *Handlers {
	return &Handlers{detector: detector, punisher: punisher, db: db}
}

// resolveActor builds the detection view of an actor: owner and administrator
// status decide immunity before any window state is touched.
func (h *Handlers) resolveActor(sess *discordgo.Session, guildID, userID string) guard.Actor {
	actor := guard.Actor{ID: userID, GuildID: guildID}

	guild, err := sess.State.Guild(guildID)
	if err != nil {
		return actor
	}
	actor.IsOwner = guild.OwnerID == userID

	member, err := sess.State.Member(guildID, userID)
	if err != nil {
		member, err = sess.GuildMember(guildID, userID)
		if err != nil {
			return actor
		}
	}
	for _, roleID := range member.Roles {
		for _, role := range guild.Roles {
			if role.ID == roleID && role.Permissions&discordgo.PermissionAdministrator != 0 {
				actor.IsAdmin = true
				return actor
			}
		}
	}
	return actor
}

// observe feeds one attributed action into the detector and punishes on
// breach.
func (h *Handlers) observe(sess *discordgo.Session, guildID, actorID string, cat models.Category) {
	if actorID == "" {
		return
	}
	actor := h.resolveActor(sess, guildID, actorID)
	breached, cfg := h.detector.RecordEvent(actor, cat, time.Now())
	if !breached {
		return
	}
	reason := fmt.Sprintf("Rate limit exceeded: %s (%d actions within %s)", cat, cfg.Limit, cfg.Window)
	h.punisher.Punish(actor, cat, cfg.Punishment, reason)
}

// Setup registers every gateway handler on the session.
func (h *Handlers) Setup(s *Session) {
	logging.Info("Setting up Discord event handlers...")

	s.AddHandler(func(sess *discordgo.Session, r *discordgo.Ready) {
		logging.Info("Bot ready! Connected as %s across %d guilds", r.User.Username, len(r.Guilds))
	})

	s.AddHandler(func(sess *discordgo.Session, g *discordgo.GuildCreate) {
		logging.Info("Bot joined/loaded guild: %s (ID: %s)", g.Name, g.ID)
		if err := h.db.EnsureGuildSettings(g.ID); err != nil {
			logging.Warn("Failed to ensure settings for guild %s: %v", g.ID, err)
		}
	})

	// Feeds the audit cache so direct events resolve actors without a REST
	// round trip. Disconnects only surface here, so antideco runs off this
	// handler directly.
	s.AddHandler(func(sess *discordgo.Session, audit *discordgo.GuildAuditLogEntryCreate) {
		if audit.GuildID == "" || audit.ActionType == nil {
			return
		}
		action := int(*audit.ActionType)
		auditCache.Store(audit.GuildID, action, audit.UserID, audit.TargetID)
		logging.Debug("[AUDIT] Action %d by user %s in guild %s", action, audit.UserID, audit.GuildID)

		if action == auditMemberDisconnect {
			h.observe(sess, audit.GuildID, skipSelf(sess, audit.UserID), models.CategoryDeco)
		}
	})

	s.AddHandler(func(sess *discordgo.Session, b *discordgo.GuildBanAdd) {
		if b.GuildID == "" {
			return
		}
		actorID := fetchActorFromAuditLog(sess, b.GuildID, auditBanAdd, b.User.ID)
		h.observe(sess, b.GuildID, actorID, models.CategoryBan)
	})

	s.AddHandler(func(sess *discordgo.Session, b *discordgo.GuildBanRemove) {
		if b.GuildID == "" {
			return
		}
		actorID := fetchActorFromAuditLog(sess, b.GuildID, auditBanRemove, b.User.ID)
		h.observe(sess, b.GuildID, actorID, models.CategoryUnban)
	})

	s.AddHandler(func(sess *discordgo.Session, c *discordgo.ChannelCreate) {
		if c.GuildID == "" {
			return
		}
		actorID := fetchActorFromAuditLog(sess, c.GuildID, auditChannelCreate, c.ID)
		h.observe(sess, c.GuildID, actorID, models.CategoryChannel)
	})

	s.AddHandler(func(sess *discordgo.Session, c *discordgo.ChannelDelete) {
		if c.GuildID == "" {
			return
		}
		actorID := fetchActorFromAuditLog(sess, c.GuildID, auditChannelDelete, c.ID)
		h.observe(sess, c.GuildID, actorID, models.CategoryChannel)
	})

	s.AddHandler(func(sess *discordgo.Session, r *discordgo.GuildRoleCreate) {
		if r.GuildID == "" || r.Role.Managed {
			return
		}
		actorID := fetchActorFromAuditLog(sess, r.GuildID, auditRoleCreate, r.Role.ID)
		h.observe(sess, r.GuildID, actorID, models.CategoryRole)
	})

	s.AddHandler(func(sess *discordgo.Session, r *discordgo.GuildRoleDelete) {
		if r.GuildID == "" {
			return
		}
		actorID := fetchActorFromAuditLog(sess, r.GuildID, auditRoleDelete, r.RoleID)
		h.observe(sess, r.GuildID, actorID, models.CategoryRole)
	})

	s.AddHandler(func(sess *discordgo.Session, w *discordgo.WebhooksUpdate) {
		if w.GuildID == "" {
			return
		}
		actorID := fetchActorFromAuditLog(sess, w.GuildID, auditWebhookCreate, w.ChannelID)
		h.observe(sess, w.GuildID, actorID, models.CategoryWebhook)
	})

	s.AddHandler(func(sess *discordgo.Session, g *discordgo.GuildUpdate) {
		if g.ID == "" {
			return
		}
		actorID := fetchActorFromAuditLog(sess, g.ID, auditGuildUpdate, g.ID)
		h.observe(sess, g.ID, actorID, models.CategoryUpdate)
	})

	s.AddHandler(h.onMessageCreate)
	s.AddHandler(h.onMessageDelete)
	s.AddHandler(h.onMemberAdd)
	s.AddHandler(h.onMemberRemove)

	logging.Info("Discord event handlers configured successfully")
}

// onMessageCreate watches for mass-ping abuse. The author is the actor, so no
// audit correlation is needed.
func (h *Handlers) onMessageCreate(sess *discordgo.Session, m *discordgo.MessageCreate) {
	if m.GuildID == "" || m.Author == nil || m.Author.Bot {
		return
	}
	if !m.MentionEveryone {
		return
	}
	h.observe(sess, m.GuildID, m.Author.ID, models.CategoryEveryone)
}

// onMessageDelete records the last deleted message per channel for /snipe.
func (h *Handlers) onMessageDelete(sess *discordgo.Session, m *discordgo.MessageDelete) {
	if m.BeforeDelete == nil || m.BeforeDelete.Author == nil {
		return
	}
	StoreSnipe(m.ChannelID, m.BeforeDelete.Author.ID, m.BeforeDelete.Author.Username, m.BeforeDelete.Content)
}

// onMemberAdd handles bot additions, the minimum account age gate, autorole
// and welcome messages.
func (h *Handlers) onMemberAdd(sess *discordgo.Session, m *discordgo.GuildMemberAdd) {
	if m.GuildID == "" || m.User == nil {
		return
	}

	if m.User.Bot {
		h.handleBotAdd(sess, m)
		return
	}

	gs, err := h.db.GetGuildSettings(m.GuildID)
	if err != nil {
		logging.Warn("Settings lookup failed for guild %s: %v", m.GuildID, err)
		return
	}

	if gs.CreationLimitSeconds > 0 {
		created, err := discordgo.SnowflakeTimestamp(m.User.ID)
		if err == nil {
			age := time.Since(created)
			if age < time.Duration(gs.CreationLimitSeconds)*time.Second {
				reason := fmt.Sprintf("Account younger than minimum age (%s old)", age.Round(time.Second))
				if err := sess.GuildMemberDeleteWithReason(m.GuildID, m.User.ID, reason); err != nil {
					logging.Warn("Creation limit kick failed for %s in %s: %v", m.User.ID, m.GuildID, err)
				} else {
					logging.Info("[JOIN] Kicked %s from %s: %s", m.User.ID, m.GuildID, reason)
					notifier.SendModLog(gs.ModlogChannelID, "Member kicked (account age)", 0xFEE75C,
						m.User.ID, "modguard", reason, "")
				}
				return
			}
		}
	}

	if gs.AutoroleID != "" {
		if err := sess.GuildMemberRoleAdd(m.GuildID, m.User.ID, gs.AutoroleID); err != nil {
			logging.Warn("Autorole grant failed for %s in %s: %v", m.User.ID, m.GuildID, err)
		}
	}

	if gs.WelcomeChannelID != "" && gs.WelcomeMessage != "" {
		msg := expandMemberTemplate(gs.WelcomeMessage, m.User, m.GuildID)
		if _, err := sess.ChannelMessageSend(gs.WelcomeChannelID, msg); err != nil {
			logging.Warn("Welcome message failed in %s: %v", m.GuildID, err)
		}
	}
}

// handleBotAdd punishes whoever invited an unauthorized bot and removes the
// bot. One bot addition is enough; there is no rate window for this.
func (h *Handlers) handleBotAdd(sess *discordgo.Session, m *discordgo.GuildMemberAdd) {
	cfg, err := h.db.SecurityConfig(m.GuildID, models.CategoryBot)
	if err != nil || !cfg.Enabled {
		return
	}

	adderID := fetchActorFromAuditLog(sess, m.GuildID, auditBotAdd, m.User.ID)
	if adderID == "" {
		logging.Warn("[EVENT] Bot %s added to %s but no adder found", m.User.ID, m.GuildID)
		return
	}

	adder := h.resolveActor(sess, m.GuildID, adderID)
	if h.detector.Immune(adder) {
		logging.Info("[EVENT] Bot %s added by immune actor %s, allowed", m.User.ID, adderID)
		return
	}

	if err := sess.GuildBanCreateWithReason(m.GuildID, m.User.ID, "Unauthorized bot addition", 0); err != nil {
		logging.Warn("Failed to remove unauthorized bot %s: %v", m.User.ID, err)
	}
	h.punisher.Punish(adder, models.CategoryBot, cfg.Punishment, "Added an unauthorized bot")
}

// onMemberRemove posts the configured leave message.
func (h *Handlers) onMemberRemove(sess *discordgo.Session, m *discordgo.GuildMemberRemove) {
	if m.GuildID == "" || m.User == nil {
		return
	}
	gs, err := h.db.GetGuildSettings(m.GuildID)
	if err != nil || gs.LeaveChannelID == "" || gs.LeaveMessage == "" {
		return
	}
	msg := expandMemberTemplate(gs.LeaveMessage, m.User, m.GuildID)
	if _, err := sess.ChannelMessageSend(gs.LeaveChannelID, msg); err != nil {
		logging.Warn("Leave message failed in %s: %v", m.GuildID, err)
	}
}
