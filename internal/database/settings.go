package database

import (
	"database/sql"
	"fmt"

	"go-modguard/internal/models"
)

// GuildSettings mirrors the non-security columns of guild_settings. Security
// columns are read per category through SecurityConfig.
type GuildSettings struct {
	GuildID              string
	ModlogChannelID      string
	RaidlogChannelID     string
	RaidPingRoleID       string
	CreationLimitSeconds int64
	WelcomeChannelID     string
	WelcomeMessage       string
	LeaveChannelID       string
	LeaveMessage         string
	AutoroleID           string
	SupportRoleID        string
	SupportMessage       string
	PrisonRoleID         string
	PrisonChannelID      string
}

// EnsureGuildSettings creates the settings row for a guild if missing.
func (d *Database) EnsureGuildSettings(guildID string) error {
	_, err := d.db.Exec(`INSERT OR IGNORE INTO guild_settings (guild_id) VALUES (?)`, guildID)
	return err
}

// GetGuildSettings returns the settings row, creating it on first access.
func (d *Database) GetGuildSettings(guildID string) (*GuildSettings, error) {
	if err := d.EnsureGuildSettings(guildID); err != nil {
		return nil, err
	}

	var gs GuildSettings
	err := d.db.QueryRow(
		`SELECT guild_id, modlog_channel_id, raidlog_channel_id, raid_ping_role_id,
		        creation_limit_seconds, welcome_channel_id, welcome_message,
		        leave_channel_id, leave_message, autorole_id, support_role_id,
		        support_message, prison_role_id, prison_channel_id
		 FROM guild_settings WHERE guild_id = ?`,
		guildID,
	).Scan(&gs.GuildID, &gs.ModlogChannelID, &gs.RaidlogChannelID, &gs.RaidPingRoleID,
		&gs.CreationLimitSeconds, &gs.WelcomeChannelID, &gs.WelcomeMessage,
		&gs.LeaveChannelID, &gs.LeaveMessage, &gs.AutoroleID, &gs.SupportRoleID,
		&gs.SupportMessage, &gs.PrisonRoleID, &gs.PrisonChannelID)
	if err != nil {
		return nil, err
	}

	return &gs, nil
}

// SecurityConfig reads the detection configuration for one category.
// Absent rows and malformed sensitivities resolve to defaults, never errors.
func (d *Database) SecurityConfig(guildID string, cat models.Category) (models.CategoryConfig, error) {
	cfg := models.CategoryConfig{
		Limit:      models.DefaultLimit,
		Window:     models.DefaultWindow,
		Punishment: models.PunishKick,
	}

	if !cat.Valid() {
		return cfg, fmt.Errorf("unknown category %q", cat)
	}

	var enabled int
	var sensitivity, punishment string
	query := fmt.Sprintf(
		`SELECT %[1]s_on, COALESCE(%[1]s_sensitivity, ''), COALESCE(%[1]s_punishment, '')
		 FROM guild_settings WHERE guild_id = ?`, cat)
	err := d.db.QueryRow(query, guildID).Scan(&enabled, &sensitivity, &punishment)
	if err == sql.ErrNoRows {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	cfg.Enabled = enabled != 0
	cfg.Limit, cfg.Window = models.ParseSensitivity(sensitivity)
	if p := models.Punishment(punishment); p.Valid() {
		cfg.Punishment = p
	}

	return cfg, nil
}

// SetCategoryEnabled flips the on/off flag for one category.
func (d *Database) SetCategoryEnabled(guildID string, cat models.Category, on bool) error {
	if !cat.Valid() {
		return fmt.Errorf("unknown category %q", cat)
	}
	if err := d.EnsureGuildSettings(guildID); err != nil {
		return err
	}
	val := 0
	if on {
		val = 1
	}
	_, err := d.db.Exec(
		fmt.Sprintf(`UPDATE guild_settings SET %s_on = ? WHERE guild_id = ?`, cat),
		val, guildID)
	return err
}

// SetAllCategoriesEnabled flips every category at once (the "secur set"
// command).
func (d *Database) SetAllCategoriesEnabled(guildID string, on bool) error {
	for _, cat := range models.AllCategories {
		if err := d.SetCategoryEnabled(guildID, cat, on); err != nil {
			return err
		}
	}
	return nil
}

// SetCategoryPunishment stores the punishment choice for one category.
func (d *Database) SetCategoryPunishment(guildID string, cat models.Category, p models.Punishment) error {
	if !cat.Valid() {
		return fmt.Errorf("unknown category %q", cat)
	}
	if !p.Valid() {
		return fmt.Errorf("unknown punishment %q", p)
	}
	if err := d.EnsureGuildSettings(guildID); err != nil {
		return err
	}
	_, err := d.db.Exec(
		fmt.Sprintf(`UPDATE guild_settings SET %s_punishment = ? WHERE guild_id = ?`, cat),
		string(p), guildID)
	return err
}

// SetCategorySensitivity stores the "<limit>/<seconds>s" pair for one category.
func (d *Database) SetCategorySensitivity(guildID string, cat models.Category, sensitivity string) error {
	if !cat.Valid() {
		return fmt.Errorf("unknown category %q", cat)
	}
	if err := d.EnsureGuildSettings(guildID); err != nil {
		return err
	}
	_, err := d.db.Exec(
		fmt.Sprintf(`UPDATE guild_settings SET %s_sensitivity = ? WHERE guild_id = ?`, cat),
		sensitivity, guildID)
	return err
}

// SetCreationLimit stores the minimum account age (seconds) enforced on join.
func (d *Database) SetCreationLimit(guildID string, seconds int64) error {
	if err := d.EnsureGuildSettings(guildID); err != nil {
		return err
	}
	_, err := d.db.Exec(
		`UPDATE guild_settings SET creation_limit_seconds = ? WHERE guild_id = ?`,
		seconds, guildID)
	return err
}

// SetLogChannel stores a log channel; which is one of "modlog" or "raidlog".
func (d *Database) SetLogChannel(guildID, which, channelID string) error {
	var column string
	switch which {
	case "modlog":
		column = "modlog_channel_id"
	case "raidlog":
		column = "raidlog_channel_id"
	default:
		return fmt.Errorf("unknown log channel kind %q", which)
	}
	if err := d.EnsureGuildSettings(guildID); err != nil {
		return err
	}
	_, err := d.db.Exec(
		fmt.Sprintf(`UPDATE guild_settings SET %s = ? WHERE guild_id = ?`, column),
		channelID, guildID)
	return err
}

// SetWelcome stores the welcome channel and message template.
func (d *Database) SetWelcome(guildID, channelID, message string) error {
	if err := d.EnsureGuildSettings(guildID); err != nil {
		return err
	}
	_, err := d.db.Exec(
		`UPDATE guild_settings SET welcome_channel_id = ?, welcome_message = ? WHERE guild_id = ?`,
		channelID, message, guildID)
	return err
}

// SetLeave stores the leave channel and message template.
func (d *Database) SetLeave(guildID, channelID, message string) error {
	if err := d.EnsureGuildSettings(guildID); err != nil {
		return err
	}
	_, err := d.db.Exec(
		`UPDATE guild_settings SET leave_channel_id = ?, leave_message = ? WHERE guild_id = ?`,
		channelID, message, guildID)
	return err
}

// SetAutorole stores the role granted to every joining member.
func (d *Database) SetAutorole(guildID, roleID string) error {
	if err := d.EnsureGuildSettings(guildID); err != nil {
		return err
	}
	_, err := d.db.Exec(
		`UPDATE guild_settings SET autorole_id = ? WHERE guild_id = ?`,
		roleID, guildID)
	return err
}

// SetSupportRole stores the presence-sync role and the status substring that
// grants it.
func (d *Database) SetSupportRole(guildID, roleID, message string) error {
	if err := d.EnsureGuildSettings(guildID); err != nil {
		return err
	}
	_, err := d.db.Exec(
		`UPDATE guild_settings SET support_role_id = ?, support_message = ? WHERE guild_id = ?`,
		roleID, message, guildID)
	return err
}

// SetPrison stores the prison role/channel pair.
func (d *Database) SetPrison(guildID, roleID, channelID string) error {
	if err := d.EnsureGuildSettings(guildID); err != nil {
		return err
	}
	_, err := d.db.Exec(
		`UPDATE guild_settings SET prison_role_id = ?, prison_channel_id = ? WHERE guild_id = ?`,
		roleID, channelID, guildID)
	return err
}
