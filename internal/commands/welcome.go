package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// handleWelcome covers welcome/leave messages and autorole.
func (h *Handler) handleWelcome(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return fmt.Errorf("missing subcommand")
	}
	sub := data.Options[0]

	switch sub.Name {
	case "set":
		channelID := optChannelID(sub.Options, "channel")
		message := optString(sub.Options, "message")
		if err := h.db.SetWelcome(i.GuildID, channelID, message); err != nil {
			return err
		}
		return respondText(s, i, fmt.Sprintf("✅ Welcome messages go to <#%s>.", channelID))

	case "leave":
		channelID := optChannelID(sub.Options, "channel")
		message := optString(sub.Options, "message")
		if err := h.db.SetLeave(i.GuildID, channelID, message); err != nil {
			return err
		}
		return respondText(s, i, fmt.Sprintf("✅ Leave messages go to <#%s>.", channelID))

	case "autorole":
		roleID := optRoleID(sub.Options, "role")
		if err := h.db.SetAutorole(i.GuildID, roleID); err != nil {
			return err
		}
		return respondText(s, i, fmt.Sprintf("✅ New members receive <@&%s>.", roleID))
	}
	return fmt.Errorf("unknown subcommand: %s", sub.Name)
}
