package database

import "database/sql"

// AddToWhitelist marks an actor immune to raid detection. Returns false when
// already present.
func (d *Database) AddToWhitelist(guildID, userID string) (bool, error) {
	res, err := d.db.Exec(
		`INSERT OR IGNORE INTO antiraid_whitelist (guild_id, user_id) VALUES (?, ?)`,
		guildID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RemoveFromWhitelist lifts an actor's immunity.
func (d *Database) RemoveFromWhitelist(guildID, userID string) error {
	_, err := d.db.Exec(
		`DELETE FROM antiraid_whitelist WHERE guild_id = ? AND user_id = ?`,
		guildID, userID)
	return err
}

// Whitelist lists all whitelisted actor IDs for a guild.
func (d *Database) Whitelist(guildID string) ([]string, error) {
	rows, err := d.db.Query(
		`SELECT user_id FROM antiraid_whitelist WHERE guild_id = ?`, guildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		users = append(users, id)
	}
	return users, rows.Err()
}

// IsWhitelisted reports explicit whitelist membership. Owner/administrator
// immunity is decided by the detector, not here.
func (d *Database) IsWhitelisted(guildID, userID string) (bool, error) {
	var one int
	err := d.db.QueryRow(
		`SELECT 1 FROM antiraid_whitelist WHERE guild_id = ? AND user_id = ?`,
		guildID, userID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
