package commands

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"go-modguard/internal/models"
	"go-modguard/internal/notifier"
	"go-modguard/internal/perms"
)

const (
	colorRed    = 0xED4245
	colorYellow = 0xFEE75C
	colorGreen  = 0x57F287
	colorBlue   = 0x5865F2
)

func reasonOrDefault(opts []*discordgo.ApplicationCommandInteractionDataOption) string {
	if reason := optString(opts, "reason"); reason != "" {
		return reason
	}
	return "No reason provided"
}

// durationWithinCeiling resolves the optional duration option and enforces the
// invoker's max_duration ceiling for the command.
func (h *Handler) durationWithinCeiling(member perms.Member, command string, opts []*discordgo.ApplicationCommandInteractionDataOption, required bool) (time.Duration, error) {
	raw := optString(opts, "duration")
	if raw == "" {
		if required {
			return 0, fmt.Errorf("duration is required")
		}
		// Permanent actions are only open to moderators without a ceiling.
		if ok, limit := h.authorizer.CheckMaxDuration(member, command, 1<<62); !ok {
			return 0, fmt.Errorf("your ceiling for /%s is %s; a duration is required", command, formatUserDuration(limit))
		}
		return 0, nil
	}

	duration, err := parseUserDuration(raw)
	if err != nil {
		return 0, err
	}
	if ok, limit := h.authorizer.CheckMaxDuration(member, command, duration); !ok {
		return 0, fmt.Errorf("duration %s exceeds your ceiling of %s for /%s",
			formatUserDuration(duration), formatUserDuration(limit), command)
	}
	return duration, nil
}

func (h *Handler) modlog(guildID, title string, color int, userID, moderatorID, reason string, duration time.Duration) {
	gs, err := h.db.GetGuildSettings(guildID)
	if err != nil {
		return
	}
	rendered := ""
	if duration > 0 {
		rendered = formatUserDuration(duration)
	}
	notifier.SendModLog(gs.ModlogChannelID, title, color, userID, moderatorID, reason, rendered)
}

func (h *Handler) handleKick(s *discordgo.Session, i *discordgo.InteractionCreate, member perms.Member) error {
	data := i.ApplicationCommandData()
	userID := optUserID(data.Options, "user")
	reason := reasonOrDefault(data.Options)

	if err := s.GuildMemberDeleteWithReason(i.GuildID, userID, reason); err != nil {
		return fmt.Errorf("kick failed: %w", err)
	}

	if _, err := h.db.AddSanction(i.GuildID, userID, member.ID, models.SanctionKick, reason, 0, ""); err != nil {
		return err
	}
	h.modlog(i.GuildID, "Member kicked", colorYellow, userID, member.ID, reason, 0)
	return respondText(s, i, fmt.Sprintf("👢 Kicked <@%s>.", userID))
}

func (h *Handler) handleBan(s *discordgo.Session, i *discordgo.InteractionCreate, member perms.Member) error {
	data := i.ApplicationCommandData()
	userID := optUserID(data.Options, "user")
	reason := reasonOrDefault(data.Options)

	duration, err := h.durationWithinCeiling(member, "ban", data.Options, false)
	if err != nil {
		return err
	}

	if err := s.GuildBanCreateWithReason(i.GuildID, userID, reason, 0); err != nil {
		return fmt.Errorf("ban failed: %w", err)
	}

	if _, err := h.db.AddSanction(i.GuildID, userID, member.ID, models.SanctionBan, reason, duration, ""); err != nil {
		return err
	}
	h.modlog(i.GuildID, "Member banned", colorRed, userID, member.ID, reason, duration)

	if duration > 0 {
		return respondText(s, i, fmt.Sprintf("🔨 Banned <@%s> for %s.", userID, formatUserDuration(duration)))
	}
	return respondText(s, i, fmt.Sprintf("🔨 Banned <@%s> permanently.", userID))
}

func (h *Handler) handleUnban(s *discordgo.Session, i *discordgo.InteractionCreate, member perms.Member) error {
	data := i.ApplicationCommandData()
	userID := optString(data.Options, "user_id")

	if err := s.GuildBanDelete(i.GuildID, userID); err != nil {
		return fmt.Errorf("unban failed: %w", err)
	}

	// Close any open ban sanction so the sweeper does not try a second unban.
	if err := h.db.DeactivateSanction(i.GuildID, userID, models.SanctionBan); err != nil {
		return err
	}
	h.modlog(i.GuildID, "Member unbanned", colorGreen, userID, member.ID, "Manual unban", 0)
	return respondText(s, i, fmt.Sprintf("✅ Unbanned <@%s>.", userID))
}

func (h *Handler) handleTimeout(s *discordgo.Session, i *discordgo.InteractionCreate, member perms.Member) error {
	data := i.ApplicationCommandData()
	userID := optUserID(data.Options, "user")
	reason := reasonOrDefault(data.Options)

	duration, err := h.durationWithinCeiling(member, "timeout", data.Options, true)
	if err != nil {
		return err
	}

	until := time.Now().Add(duration)
	if err := s.GuildMemberTimeout(i.GuildID, userID, &until); err != nil {
		return fmt.Errorf("timeout failed: %w", err)
	}

	if _, err := h.db.AddSanction(i.GuildID, userID, member.ID, models.SanctionTimeout, reason, duration, ""); err != nil {
		return err
	}
	h.modlog(i.GuildID, "Member timed out", colorYellow, userID, member.ID, reason, duration)
	return respondText(s, i, fmt.Sprintf("⏳ Timed out <@%s> for %s.", userID, formatUserDuration(duration)))
}

func (h *Handler) handleUntimeout(s *discordgo.Session, i *discordgo.InteractionCreate, member perms.Member) error {
	data := i.ApplicationCommandData()
	userID := optUserID(data.Options, "user")

	if err := s.GuildMemberTimeout(i.GuildID, userID, nil); err != nil {
		return fmt.Errorf("untimeout failed: %w", err)
	}

	if err := h.db.DeactivateSanction(i.GuildID, userID, models.SanctionTimeout); err != nil {
		return err
	}
	h.modlog(i.GuildID, "Timeout lifted", colorGreen, userID, member.ID, "Manual untimeout", 0)
	return respondText(s, i, fmt.Sprintf("✅ Timeout lifted for <@%s>.", userID))
}

func (h *Handler) handleWarn(s *discordgo.Session, i *discordgo.InteractionCreate, member perms.Member) error {
	data := i.ApplicationCommandData()
	userID := optUserID(data.Options, "user")
	reason := optString(data.Options, "reason")

	if _, err := h.db.AddSanction(i.GuildID, userID, member.ID, models.SanctionWarn, reason, 0, ""); err != nil {
		return err
	}
	h.modlog(i.GuildID, "Member warned", colorBlue, userID, member.ID, reason, 0)

	// Best effort DM; members with closed DMs just miss it.
	if channel, err := s.UserChannelCreate(userID); err == nil {
		s.ChannelMessageSend(channel.ID, fmt.Sprintf("⚠️ You were warned in this server: %s", reason))
	}

	return respondText(s, i, fmt.Sprintf("⚠️ Warned <@%s>.", userID))
}
