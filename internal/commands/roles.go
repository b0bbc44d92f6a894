package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"go-modguard/internal/models"
	"go-modguard/internal/perms"
)

// handleRole covers add, remove and temprole.
func (h *Handler) handleRole(s *discordgo.Session, i *discordgo.InteractionCreate, member perms.Member) error {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return fmt.Errorf("missing subcommand")
	}
	sub := data.Options[0]
	userID := optUserID(sub.Options, "user")
	roleID := optRoleID(sub.Options, "role")

	switch sub.Name {
	case "add":
		if err := s.GuildMemberRoleAdd(i.GuildID, userID, roleID); err != nil {
			return fmt.Errorf("role add failed: %w", err)
		}
		return respondText(s, i, fmt.Sprintf("✅ Added <@&%s> to <@%s>.", roleID, userID))

	case "remove":
		if err := s.GuildMemberRoleRemove(i.GuildID, userID, roleID); err != nil {
			return fmt.Errorf("role remove failed: %w", err)
		}
		return respondText(s, i, fmt.Sprintf("✅ Removed <@&%s> from <@%s>.", roleID, userID))

	case "temprole":
		duration, err := h.durationWithinCeiling(member, "role", sub.Options, true)
		if err != nil {
			return err
		}
		if err := s.GuildMemberRoleAdd(i.GuildID, userID, roleID); err != nil {
			return fmt.Errorf("role add failed: %w", err)
		}
		if _, err := h.db.AddSanction(i.GuildID, userID, member.ID, models.SanctionTemprole,
			"Temporary role", duration, roleID); err != nil {
			return err
		}
		return respondText(s, i, fmt.Sprintf("✅ Added <@&%s> to <@%s> for %s.",
			roleID, userID, formatUserDuration(duration)))
	}
	return fmt.Errorf("unknown subcommand: %s", sub.Name)
}

// handlePrison stashes the member's roles, replaces them with the prison role
// and records the sanction for the sweeper to release.
func (h *Handler) handlePrison(s *discordgo.Session, i *discordgo.InteractionCreate, member perms.Member) error {
	data := i.ApplicationCommandData()
	userID := optUserID(data.Options, "user")
	reason := reasonOrDefault(data.Options)

	gs, err := h.db.GetGuildSettings(i.GuildID)
	if err != nil {
		return err
	}
	if gs.PrisonRoleID == "" {
		return fmt.Errorf("no prison role configured; run /secur prison first")
	}

	duration, err := h.durationWithinCeiling(member, "prison", data.Options, false)
	if err != nil {
		return err
	}

	target, err := s.GuildMember(i.GuildID, userID)
	if err != nil {
		return fmt.Errorf("member lookup failed: %w", err)
	}

	if err := h.db.StoreUserRoles(i.GuildID, userID, target.Roles); err != nil {
		return err
	}

	prisonRoles := []string{gs.PrisonRoleID}
	if _, err := s.GuildMemberEdit(i.GuildID, userID, &discordgo.GuildMemberParams{Roles: &prisonRoles}); err != nil {
		return fmt.Errorf("imprison failed: %w", err)
	}

	if _, err := h.db.AddSanction(i.GuildID, userID, member.ID, models.SanctionPrison,
		reason, duration, gs.PrisonRoleID); err != nil {
		return err
	}
	h.modlog(i.GuildID, "Member imprisoned", colorRed, userID, member.ID, reason, duration)

	if duration > 0 {
		return respondText(s, i, fmt.Sprintf("⛓️ Imprisoned <@%s> for %s.", userID, formatUserDuration(duration)))
	}
	return respondText(s, i, fmt.Sprintf("⛓️ Imprisoned <@%s> indefinitely.", userID))
}

// handleUnprison releases a member early: prison role off, stashed roles back,
// sanction closed so the sweeper skips it.
func (h *Handler) handleUnprison(s *discordgo.Session, i *discordgo.InteractionCreate, member perms.Member) error {
	data := i.ApplicationCommandData()
	userID := optUserID(data.Options, "user")

	gs, err := h.db.GetGuildSettings(i.GuildID)
	if err != nil {
		return err
	}

	stashed, err := h.db.RestoreUserRoles(i.GuildID, userID)
	if err != nil {
		return err
	}

	roles := stashed
	if roles == nil {
		roles = []string{}
	}
	if _, err := s.GuildMemberEdit(i.GuildID, userID, &discordgo.GuildMemberParams{Roles: &roles}); err != nil {
		return fmt.Errorf("release failed: %w", err)
	}
	if gs.PrisonRoleID != "" {
		s.GuildMemberRoleRemove(i.GuildID, userID, gs.PrisonRoleID)
	}

	if err := h.db.DeactivateSanction(i.GuildID, userID, models.SanctionPrison); err != nil {
		return err
	}
	h.modlog(i.GuildID, "Member released from prison", colorGreen, userID, member.ID, "Manual release", 0)
	return respondText(s, i, fmt.Sprintf("✅ Released <@%s> from prison.", userID))
}
