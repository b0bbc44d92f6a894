package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"go-modguard/internal/config"
	"go-modguard/internal/models"
)

// handleStatus shows the per-category protection state for the guild.
func (h *Handler) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	var lines []string
	for _, cat := range models.AllCategories {
		cfg, err := h.db.SecurityConfig(i.GuildID, cat)
		if err != nil {
			return err
		}
		marker := "🔴"
		if cfg.Enabled {
			marker = "🟢"
		}
		lines = append(lines, fmt.Sprintf("%s `%-13s` %s → %s",
			marker, cat, models.FormatSensitivity(cfg.Limit, cfg.Window), cfg.Punishment))
	}

	whitelist, err := h.db.Whitelist(i.GuildID)
	if err != nil {
		return err
	}
	gs, err := h.db.GetGuildSettings(i.GuildID)
	if err != nil {
		return err
	}

	channels := "not set"
	if gs.RaidlogChannelID != "" || gs.ModlogChannelID != "" {
		var parts []string
		if gs.ModlogChannelID != "" {
			parts = append(parts, fmt.Sprintf("modlog <#%s>", gs.ModlogChannelID))
		}
		if gs.RaidlogChannelID != "" {
			parts = append(parts, fmt.Sprintf("raidlog <#%s>", gs.RaidlogChannelID))
		}
		channels = strings.Join(parts, ", ")
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🛡️ Protection status",
		Color:       colorBlue,
		Description: strings.Join(lines, "\n"),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Whitelisted actors", Value: fmt.Sprintf("%d", len(whitelist)), Inline: true},
			{Name: "Sanction sweep", Value: config.SweepIntervalOrDefault(config.Get()).String(), Inline: true},
			{Name: "Log channels", Value: channels, Inline: false},
		},
	}
	return respondEmbed(s, i, embed)
}
