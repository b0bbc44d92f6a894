package database

import (
	"time"

	"go-modguard/internal/models"
)

// AddSanction records a sanction and returns its row ID. A zero duration
// means the sanction is permanent (no end time).
func (d *Database) AddSanction(guildID, userID, moderatorID string, sancType models.SanctionType, reason string, duration time.Duration, roleID string) (int64, error) {
	start := time.Now().UTC()
	var end int64
	if duration > 0 {
		end = start.Add(duration).Unix()
	}

	res, err := d.db.Exec(
		`INSERT INTO sanctions (guild_id, user_id, moderator_id, sanction_type, reason, start_time, end_time, active, role_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 1, ?)`,
		guildID, userID, moderatorID, string(sancType), reason, start.Unix(), end, roleID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// DeactivateSanction marks the most recent active sanction of the given type
// inactive. Used by the manual unban/untimeout path; a no-op when nothing
// matches.
func (d *Database) DeactivateSanction(guildID, userID string, sancType models.SanctionType) error {
	_, err := d.db.Exec(
		`UPDATE sanctions SET active = 0 WHERE id = (
			SELECT id FROM sanctions
			WHERE guild_id = ? AND user_id = ? AND sanction_type = ? AND active = 1
			ORDER BY start_time DESC LIMIT 1)`,
		guildID, userID, string(sancType))
	return err
}

// MarkSanctionInactive flips one row inactive by ID. Idempotent: flipping an
// already-inactive row changes nothing.
func (d *Database) MarkSanctionInactive(id int64) error {
	_, err := d.db.Exec(`UPDATE sanctions SET active = 0 WHERE id = ?`, id)
	return err
}

// ExpiredSanctions returns active sanctions whose end time has passed.
func (d *Database) ExpiredSanctions(now time.Time) ([]*models.Sanction, error) {
	rows, err := d.db.Query(
		`SELECT id, guild_id, user_id, moderator_id, sanction_type, reason, start_time, end_time, active, role_id
		 FROM sanctions WHERE end_time > 0 AND end_time <= ? AND active = 1`,
		now.UTC().Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSanctions(rows)
}

// SanctionsForUser returns a member's full sanction history.
func (d *Database) SanctionsForUser(guildID, userID string) ([]*models.Sanction, error) {
	rows, err := d.db.Query(
		`SELECT id, guild_id, user_id, moderator_id, sanction_type, reason, start_time, end_time, active, role_id
		 FROM sanctions WHERE guild_id = ? AND user_id = ? ORDER BY start_time DESC`,
		guildID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSanctions(rows)
}

// GetSanction fetches a single sanction row.
func (d *Database) GetSanction(id int64) (*models.Sanction, error) {
	rows, err := d.db.Query(
		`SELECT id, guild_id, user_id, moderator_id, sanction_type, reason, start_time, end_time, active, role_id
		 FROM sanctions WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list, err := scanSanctions(rows)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

// DeleteSanction removes a row from the history.
func (d *Database) DeleteSanction(id int64) error {
	_, err := d.db.Exec(`DELETE FROM sanctions WHERE id = ?`, id)
	return err
}

type sanctionRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanSanctions(rows sanctionRows) ([]*models.Sanction, error) {
	var sanctions []*models.Sanction
	for rows.Next() {
		var s models.Sanction
		var sancType string
		var start, end int64
		var active int
		if err := rows.Scan(&s.ID, &s.GuildID, &s.UserID, &s.ModeratorID, &sancType,
			&s.Reason, &start, &end, &active, &s.RoleID); err != nil {
			return nil, err
		}
		s.Type = models.SanctionType(sancType)
		s.StartTime = time.Unix(start, 0).UTC()
		if end > 0 {
			s.EndTime = time.Unix(end, 0).UTC()
		}
		s.Active = active != 0
		sanctions = append(sanctions, &s)
	}
	return sanctions, rows.Err()
}
