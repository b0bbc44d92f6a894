package database

// StoreUserRoles stashes a member's role set before the prison role replaces
// it. Any previous stash for the member is overwritten.
func (d *Database) StoreUserRoles(guildID, userID string, roleIDs []string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM prisoned_user_roles WHERE guild_id = ? AND user_id = ?`,
		guildID, userID); err != nil {
		return err
	}
	for _, roleID := range roleIDs {
		if _, err := tx.Exec(
			`INSERT INTO prisoned_user_roles (guild_id, user_id, role_id) VALUES (?, ?, ?)`,
			guildID, userID, roleID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RestoreUserRoles returns and clears the stashed role set. A second call
// returns an empty set, which keeps prison reversal idempotent.
func (d *Database) RestoreUserRoles(guildID, userID string) ([]string, error) {
	rows, err := d.db.Query(
		`SELECT role_id FROM prisoned_user_roles WHERE guild_id = ? AND user_id = ?`,
		guildID, userID)
	if err != nil {
		return nil, err
	}

	var roleIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		roleIDs = append(roleIDs, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	_, err = d.db.Exec(
		`DELETE FROM prisoned_user_roles WHERE guild_id = ? AND user_id = ?`,
		guildID, userID)
	return roleIDs, err
}
