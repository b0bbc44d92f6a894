package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"go-modguard/internal/models"
)

// handleSecur covers the protection configuration tree.
func (h *Handler) handleSecur(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return fmt.Errorf("missing subcommand")
	}
	sub := data.Options[0]

	switch sub.Name {
	case "set":
		return h.handleSecurSet(s, i, sub.Options)
	case "punishment":
		return h.handleSecurPunishment(s, i, sub.Options)
	case "sensitivity":
		return h.handleSecurSensitivity(s, i, sub.Options)
	case "whitelist":
		if len(sub.Options) == 0 {
			return fmt.Errorf("missing subcommand")
		}
		switch sub.Options[0].Name {
		case "add":
			return h.handleWhitelistAdd(s, i, sub.Options[0].Options)
		case "remove":
			return h.handleWhitelistRemove(s, i, sub.Options[0].Options)
		case "view":
			return h.handleWhitelistView(s, i)
		}
	case "creation_limit":
		return h.handleCreationLimit(s, i, sub.Options)
	case "logs":
		return h.handleLogs(s, i, sub.Options)
	case "prison":
		return h.handleSetPrison(s, i, sub.Options)
	case "support":
		return h.handleSetSupport(s, i, sub.Options)
	}
	return fmt.Errorf("unknown subcommand: %s", sub.Name)
}

func (h *Handler) handleSecurSet(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	enabled := optBool(opts, "enabled")
	category := optString(opts, "category")

	state := "disabled"
	if enabled {
		state = "enabled"
	}

	if category == "" {
		if err := h.db.SetAllCategoriesEnabled(i.GuildID, enabled); err != nil {
			return err
		}
		return respondText(s, i, fmt.Sprintf("🛡️ All protection categories %s.", state))
	}

	if err := h.db.SetCategoryEnabled(i.GuildID, models.Category(category), enabled); err != nil {
		return err
	}
	return respondText(s, i, fmt.Sprintf("🛡️ `%s` %s.", category, state))
}

func (h *Handler) handleSecurPunishment(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	category := optString(opts, "category")
	punishment := optString(opts, "punishment")

	if err := h.db.SetCategoryPunishment(i.GuildID, models.Category(category), models.Punishment(punishment)); err != nil {
		return err
	}
	return respondText(s, i, fmt.Sprintf("✅ `%s` punishment set to `%s`.", category, punishment))
}

func (h *Handler) handleSecurSensitivity(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	category := optString(opts, "category")
	limit := optInt(opts, "limit")
	seconds := optInt(opts, "seconds")

	if limit <= 0 || seconds <= 0 {
		return fmt.Errorf("limit and seconds must be positive")
	}

	sensitivity := models.FormatSensitivity(int(limit), time.Duration(seconds)*time.Second)
	if err := h.db.SetCategorySensitivity(i.GuildID, models.Category(category), sensitivity); err != nil {
		return err
	}
	return respondText(s, i, fmt.Sprintf("✅ `%s` now triggers at %d actions within %ds.", category, limit, seconds))
}

func (h *Handler) handleWhitelistAdd(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	userID := optUserID(opts, "user")

	added, err := h.db.AddToWhitelist(i.GuildID, userID)
	if err != nil {
		return err
	}
	if !added {
		return respondText(s, i, fmt.Sprintf("<@%s> is already whitelisted.", userID))
	}
	return respondText(s, i, fmt.Sprintf("✅ <@%s> is now immune to raid detection.", userID))
}

func (h *Handler) handleWhitelistRemove(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	userID := optUserID(opts, "user")

	if err := h.db.RemoveFromWhitelist(i.GuildID, userID); err != nil {
		return err
	}
	return respondText(s, i, fmt.Sprintf("✅ <@%s> removed from the whitelist.", userID))
}

func (h *Handler) handleWhitelistView(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	users, err := h.db.Whitelist(i.GuildID)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return respondText(s, i, "The whitelist is empty.")
	}

	mentions := make([]string, 0, len(users))
	for _, id := range users {
		mentions = append(mentions, fmt.Sprintf("<@%s>", id))
	}
	embed := &discordgo.MessageEmbed{
		Title:       "Raid-immunity whitelist",
		Color:       0x57F287,
		Description: strings.Join(mentions, "\n"),
	}
	return respondEmbed(s, i, embed)
}

func (h *Handler) handleCreationLimit(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	seconds := optInt(opts, "seconds")
	if seconds < 0 {
		return fmt.Errorf("seconds must not be negative")
	}

	if err := h.db.SetCreationLimit(i.GuildID, seconds); err != nil {
		return err
	}
	if seconds == 0 {
		return respondText(s, i, "✅ Account age gate disabled.")
	}
	return respondText(s, i, fmt.Sprintf("✅ Accounts younger than %s will be kicked on join.",
		formatUserDuration(time.Duration(seconds)*time.Second)))
}

func (h *Handler) handleLogs(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	kind := optString(opts, "kind")
	channelID := optChannelID(opts, "channel")

	if err := h.db.SetLogChannel(i.GuildID, kind, channelID); err != nil {
		return err
	}
	return respondText(s, i, fmt.Sprintf("✅ %s channel set to <#%s>.", kind, channelID))
}

func (h *Handler) handleSetPrison(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	roleID := optRoleID(opts, "role")
	channelID := optChannelID(opts, "channel")

	if err := h.db.SetPrison(i.GuildID, roleID, channelID); err != nil {
		return err
	}
	return respondText(s, i, fmt.Sprintf("✅ Prison configured: role <@&%s>, channel <#%s>.", roleID, channelID))
}

func (h *Handler) handleSetSupport(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	roleID := optRoleID(opts, "role")
	text := optString(opts, "text")

	if err := h.db.SetSupportRole(i.GuildID, roleID, text); err != nil {
		return err
	}
	return respondText(s, i, fmt.Sprintf("✅ Members with `%s` in their status receive <@&%s>.", text, roleID))
}
