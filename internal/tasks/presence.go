package tasks

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"go-modguard/internal/database"
	"go-modguard/internal/logging"
)

// SyncSupportRoles grants the configured support role to members whose custom
// status contains the guild's support text, and removes it from members who
// dropped it. Runs off cached presences only; no REST fan-out per member.
func SyncSupportRoles(session *discordgo.Session, db *database.Database) {
	if session == nil || db == nil {
		return
	}

	for _, guild := range session.State.Guilds {
		gs, err := db.GetGuildSettings(guild.ID)
		if err != nil {
			logging.Warn("[PRESENCE] settings lookup failed for guild %s: %v", guild.ID, err)
			continue
		}
		if gs.SupportRoleID == "" || gs.SupportMessage == "" {
			continue
		}

		for _, presence := range guild.Presences {
			if presence.User == nil {
				continue
			}
			member, err := session.State.Member(guild.ID, presence.User.ID)
			if err != nil {
				continue
			}
			if member.User != nil && member.User.Bot {
				continue
			}

			advertising := statusContains(presence, gs.SupportMessage)
			holding := hasRole(member, gs.SupportRoleID)

			switch {
			case advertising && !holding:
				if err := session.GuildMemberRoleAdd(guild.ID, member.User.ID, gs.SupportRoleID); err != nil {
					logging.Warn("[PRESENCE] granting support role to %s in %s failed: %v",
						member.User.ID, guild.ID, err)
				}
			case !advertising && holding:
				if err := session.GuildMemberRoleRemove(guild.ID, member.User.ID, gs.SupportRoleID); err != nil {
					logging.Warn("[PRESENCE] removing support role from %s in %s failed: %v",
						member.User.ID, guild.ID, err)
				}
			}
		}
	}
}

func statusContains(presence *discordgo.Presence, text string) bool {
	for _, activity := range presence.Activities {
		if activity.Type != discordgo.ActivityTypeCustom {
			continue
		}
		if strings.Contains(strings.ToLower(activity.State), strings.ToLower(text)) {
			return true
		}
	}
	return false
}

func hasRole(member *discordgo.Member, roleID string) bool {
	for _, id := range member.Roles {
		if id == roleID {
			return true
		}
	}
	return false
}
