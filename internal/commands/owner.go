package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"go-modguard/internal/config"
	"go-modguard/internal/perms"
)

// handleOwnerCommand gates the global bot-owner commands. The gate is the
// primary owner from config plus the bot_owners table, never the per-guild
// authorizer: these commands act across every guild the bot is in.
func (h *Handler) handleOwnerCommand(s *discordgo.Session, i *discordgo.InteractionCreate, member perms.Member) error {
	isOwner := member.ID != "" && member.ID == config.Get().Bot.OwnerID
	if !isOwner {
		var err error
		isOwner, err = h.db.IsBotOwner(member.ID)
		if err != nil {
			return fmt.Errorf("owner check failed: %w", err)
		}
	}
	if !isOwner {
		return respondText(s, i, "❌ Only bot owners can use this command")
	}

	data := i.ApplicationCommandData()
	switch data.Name {
	case "owner":
		return h.handleOwner(s, i, data.Options)
	case "blacklist":
		return h.handleBlacklist(s, i, data.Options)
	}
	return fmt.Errorf("unknown owner command: %s", data.Name)
}

func (h *Handler) handleOwner(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) error {
	if len(options) == 0 {
		return fmt.Errorf("missing subcommand")
	}
	sub := options[0]

	switch sub.Name {
	case "add":
		userID := optUserID(sub.Options, "user")
		added, err := h.db.AddBotOwner(userID)
		if err != nil {
			return fmt.Errorf("failed to add co-owner: %w", err)
		}
		if !added {
			return respondText(s, i, fmt.Sprintf("ℹ️ <@%s> is already a co-owner", userID))
		}
		return respondText(s, i, fmt.Sprintf("✅ <@%s> is now a co-owner of the bot", userID))

	case "remove":
		userID := optUserID(sub.Options, "user")
		if err := h.db.RemoveBotOwner(userID); err != nil {
			return fmt.Errorf("failed to remove co-owner: %w", err)
		}
		return respondText(s, i, fmt.Sprintf("✅ <@%s> is no longer a co-owner", userID))

	case "list":
		owners, err := h.db.BotOwners()
		if err != nil {
			return fmt.Errorf("failed to list owners: %w", err)
		}
		var b strings.Builder
		if primary := config.Get().Bot.OwnerID; primary != "" {
			fmt.Fprintf(&b, "**Primary owner:** <@%s>\n\n", primary)
		}
		b.WriteString("**Co-owners:**\n")
		if len(owners) == 0 {
			b.WriteString("none")
		}
		for _, id := range owners {
			fmt.Fprintf(&b, "- <@%s> (`%s`)\n", id, id)
		}
		return respondText(s, i, b.String())
	}
	return fmt.Errorf("unknown subcommand: %s", sub.Name)
}

// handleBlacklist bars or readmits a user globally. Takes a raw ID so owners
// can blacklist users the bot shares no guild with.
func (h *Handler) handleBlacklist(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) error {
	if len(options) == 0 {
		return fmt.Errorf("missing subcommand")
	}
	sub := options[0]

	userID := strings.TrimSpace(optString(sub.Options, "user_id"))
	if _, err := strconv.ParseUint(userID, 10, 64); err != nil {
		return fmt.Errorf("invalid user ID %q", userID)
	}

	switch sub.Name {
	case "add":
		reason := optString(sub.Options, "reason")
		added, err := h.db.AddToBlacklist(userID, reason)
		if err != nil {
			return fmt.Errorf("failed to blacklist: %w", err)
		}
		if !added {
			return respondText(s, i, fmt.Sprintf("ℹ️ `%s` is already blacklisted", userID))
		}
		return respondText(s, i, fmt.Sprintf("✅ `%s` is now barred from every command", userID))

	case "remove":
		if err := h.db.RemoveFromBlacklist(userID); err != nil {
			return fmt.Errorf("failed to remove from blacklist: %w", err)
		}
		return respondText(s, i, fmt.Sprintf("✅ `%s` was removed from the blacklist", userID))
	}
	return fmt.Errorf("unknown subcommand: %s", sub.Name)
}
