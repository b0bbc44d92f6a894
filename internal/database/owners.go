package database

import "database/sql"

// AddBotOwner registers a bot owner. Returns false when already present.
func (d *Database) AddBotOwner(userID string) (bool, error) {
	res, err := d.db.Exec(`INSERT OR IGNORE INTO bot_owners (user_id) VALUES (?)`, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (d *Database) RemoveBotOwner(userID string) error {
	_, err := d.db.Exec(`DELETE FROM bot_owners WHERE user_id = ?`, userID)
	return err
}

func (d *Database) BotOwners() ([]string, error) {
	rows, err := d.db.Query(`SELECT user_id FROM bot_owners ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var owners []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		owners = append(owners, id)
	}
	return owners, rows.Err()
}

func (d *Database) IsBotOwner(userID string) (bool, error) {
	var one int
	err := d.db.QueryRow(`SELECT 1 FROM bot_owners WHERE user_id = ?`, userID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AddToBlacklist bars a user from every command globally.
func (d *Database) AddToBlacklist(userID, reason string) (bool, error) {
	res, err := d.db.Exec(
		`INSERT OR IGNORE INTO blacklist (user_id, reason) VALUES (?, ?)`,
		userID, reason)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (d *Database) RemoveFromBlacklist(userID string) error {
	_, err := d.db.Exec(`DELETE FROM blacklist WHERE user_id = ?`, userID)
	return err
}

func (d *Database) IsBlacklisted(userID string) (bool, error) {
	var one int
	err := d.db.QueryRow(`SELECT 1 FROM blacklist WHERE user_id = ?`, userID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
