package sweeper

import (
	"github.com/bwmarrin/discordgo"
)

// DiscordActions reverses sanctions against the live Discord API.
type DiscordActions struct {
	session *discordgo.Session
}

func NewDiscordActions(session *discordgo.Session) *DiscordActions {
	return &DiscordActions{session: session}
}

func (d *DiscordActions) Unban(guildID, userID string) error {
	return d.session.GuildBanDelete(guildID, userID)
}

func (d *DiscordActions) ClearTimeout(guildID, userID string) error {
	return d.session.GuildMemberTimeout(guildID, userID, nil)
}

func (d *DiscordActions) RemoveRole(guildID, userID, roleID string) error {
	return d.session.GuildMemberRoleRemove(guildID, userID, roleID)
}

func (d *DiscordActions) AddRole(guildID, userID, roleID string) error {
	return d.session.GuildMemberRoleAdd(guildID, userID, roleID)
}
