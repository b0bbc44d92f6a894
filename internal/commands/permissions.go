package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"go-modguard/internal/database"
)

// handlePermissions covers grant, revoke, set_limit and view.
func (h *Handler) handlePermissions(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return fmt.Errorf("missing subcommand")
	}
	sub := data.Options[0]

	switch sub.Name {
	case "grant":
		return h.handleGrant(s, i, sub.Options)
	case "revoke":
		return h.handleRevoke(s, i, sub.Options)
	case "set_limit":
		return h.handleSetLimit(s, i, sub.Options)
	case "view":
		return h.handlePermissionsView(s, i, sub.Options)
	}
	return fmt.Errorf("unknown subcommand: %s", sub.Name)
}

func (h *Handler) handleGrant(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	roleID := optRoleID(opts, "role")
	command := strings.ToLower(strings.TrimSpace(optString(opts, "command")))
	if roleID == "" || command == "" {
		return fmt.Errorf("role and command are required")
	}

	created, err := h.db.GrantPermission(i.GuildID, roleID, command)
	if err != nil {
		return err
	}
	if !created {
		return respondText(s, i, fmt.Sprintf("<@&%s> already has `%s`.", roleID, command))
	}
	return respondText(s, i, fmt.Sprintf("✅ Granted `%s` to <@&%s>.", command, roleID))
}

func (h *Handler) handleRevoke(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	roleID := optRoleID(opts, "role")
	command := strings.ToLower(strings.TrimSpace(optString(opts, "command")))

	if err := h.db.RevokePermission(i.GuildID, roleID, command); err != nil {
		return err
	}
	return respondText(s, i, fmt.Sprintf("✅ Revoked `%s` from <@&%s>.", command, roleID))
}

func (h *Handler) handleSetLimit(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	roleID := optRoleID(opts, "role")
	command := strings.ToLower(strings.TrimSpace(optString(opts, "command")))
	kind := optString(opts, "type")
	value := optInt(opts, "value")

	if value <= 0 {
		return fmt.Errorf("ceiling value must be positive")
	}

	err := h.db.SetPermissionConstraint(i.GuildID, roleID, command, kind, value)
	if errors.Is(err, database.ErrNoBaseGrant) {
		return fmt.Errorf("<@&%s> has no `%s` grant to constrain; grant it first", roleID, command)
	}
	if err != nil {
		return err
	}

	rendered := fmt.Sprintf("%d", value)
	if kind == database.ConstraintMaxDuration {
		rendered = formatUserDuration(time.Duration(value) * time.Second)
	}
	return respondText(s, i, fmt.Sprintf("✅ `%s` on `%s` for <@&%s> capped at %s.", kind, command, roleID, rendered))
}

func (h *Handler) handlePermissionsView(s *discordgo.Session, i *discordgo.InteractionCreate, opts []*discordgo.ApplicationCommandInteractionDataOption) error {
	roleID := optRoleID(opts, "role")

	granted, err := h.db.PermissionsForRole(i.GuildID, roleID)
	if err != nil {
		return err
	}
	if len(granted) == 0 {
		return respondText(s, i, fmt.Sprintf("<@&%s> has no grants.", roleID))
	}

	var lines []string
	for _, command := range granted {
		line := "`" + command + "`"
		var caps []string
		if v, ok, _ := h.db.PermissionConstraint(roleID, command, database.ConstraintMaxDuration); ok {
			caps = append(caps, "max duration "+formatUserDuration(time.Duration(v)*time.Second))
		}
		if v, ok, _ := h.db.PermissionConstraint(roleID, command, database.ConstraintMaxAmount); ok {
			caps = append(caps, fmt.Sprintf("max amount %d", v))
		}
		if len(caps) > 0 {
			line += " (" + strings.Join(caps, ", ") + ")"
		}
		lines = append(lines, line)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Role permissions",
		Color:       0x5865F2,
		Description: fmt.Sprintf("<@&%s>\n%s", roleID, strings.Join(lines, "\n")),
	}
	return respondEmbed(s, i, embed)
}
