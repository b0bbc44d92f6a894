package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// handleSanctions covers list and delete.
func (h *Handler) handleSanctions(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return fmt.Errorf("missing subcommand")
	}
	sub := data.Options[0]

	switch sub.Name {
	case "list":
		return h.handleSanctionsList(s, i, sub.Options)
	case "delete":
		return h.handleSanctionsDelete(s, i, sub.Options)
	}
	return fmt.Errorf("unknown subcommand: %s", sub.Name)
}

func (h *Handler) handleSanctionsList(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	userID := optUserID(opts, "user")

	sanctions, err := h.db.SanctionsForUser(i.GuildID, userID)
	if err != nil {
		return err
	}
	if len(sanctions) == 0 {
		return respondText(s, i, fmt.Sprintf("<@%s> has a clean record.", userID))
	}

	const shown = 15
	var lines []string
	for idx, sanction := range sanctions {
		if idx == shown {
			lines = append(lines, fmt.Sprintf("… and %d more", len(sanctions)-shown))
			break
		}
		state := "closed"
		if sanction.Active {
			state = "active"
		}
		line := fmt.Sprintf("`#%d` **%s** (%s) by <@%s> at <t:%d:f> | %s",
			sanction.ID, sanction.Type, state, sanction.ModeratorID,
			sanction.StartTime.Unix(), sanction.Reason)
		if !sanction.EndTime.IsZero() {
			line += fmt.Sprintf(" | until <t:%d:f>", sanction.EndTime.Unix())
		}
		lines = append(lines, line)
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Sanction history (%d total)", len(sanctions)),
		Color:       colorBlue,
		Description: strings.Join(lines, "\n"),
	}
	return respondEmbed(s, i, embed)
}

func (h *Handler) handleSanctionsDelete(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	id := optInt(opts, "id")

	sanction, err := h.db.GetSanction(id)
	if err != nil {
		return err
	}
	if sanction == nil || sanction.GuildID != i.GuildID {
		return fmt.Errorf("no sanction #%d in this server", id)
	}

	if err := h.db.DeleteSanction(id); err != nil {
		return err
	}
	return respondText(s, i, fmt.Sprintf("🗑️ Deleted sanction `#%d` (%s on <@%s>).", id, sanction.Type, sanction.UserID))
}
