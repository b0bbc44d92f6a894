package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrNoBaseGrant is returned when a constraint is written for a (role,
// command) pair that has no backing grant. A constraint without a grant is
// meaningless and must be rejected, not silently stored.
var ErrNoBaseGrant = errors.New("no base grant for role/command")

// Constraint kinds.
const (
	ConstraintMaxDuration = "max_duration"
	ConstraintMaxAmount   = "max_amount"
)

// GrantPermission records that a role may use a command. Returns false when
// the grant already existed (idempotent append semantics).
func (d *Database) GrantPermission(guildID, roleID, command string) (bool, error) {
	res, err := d.db.Exec(
		`INSERT OR IGNORE INTO permissions (guild_id, role_id, command) VALUES (?, ?, ?)`,
		guildID, roleID, command)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RevokePermission removes a single grant. Attached constraints go with it
// (FK cascade).
func (d *Database) RevokePermission(guildID, roleID, command string) error {
	_, err := d.db.Exec(
		`DELETE FROM permissions WHERE guild_id = ? AND role_id = ? AND command = ?`,
		guildID, roleID, command)
	return err
}

// PermissionsForRole lists the command names granted to a role.
func (d *Database) PermissionsForRole(guildID, roleID string) ([]string, error) {
	rows, err := d.db.Query(
		`SELECT command FROM permissions WHERE guild_id = ? AND role_id = ?`,
		guildID, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var commands []string
	for rows.Next() {
		var cmd string
		if err := rows.Scan(&cmd); err != nil {
			return nil, err
		}
		commands = append(commands, cmd)
	}
	return commands, rows.Err()
}

// SetPermissionConstraint attaches a numeric ceiling to an existing grant.
// The grant lookup and the constraint write run in one transaction so a
// concurrent revoke cannot leave an orphaned constraint. Last write wins per
// (permission, kind).
func (d *Database) SetPermissionConstraint(guildID, roleID, command, kind string, value int64) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var permID int64
	err = tx.QueryRow(
		`SELECT id FROM permissions WHERE guild_id = ? AND role_id = ? AND command = ?`,
		guildID, roleID, command).Scan(&permID)
	if err == sql.ErrNoRows {
		return ErrNoBaseGrant
	}
	if err != nil {
		return err
	}

	_, err = tx.Exec(
		`INSERT INTO permission_constraints (permission_id, type, value) VALUES (?, ?, ?)
		 ON CONFLICT(permission_id, type) DO UPDATE SET value = excluded.value`,
		permID, kind, value)
	if err != nil {
		return fmt.Errorf("failed to write constraint: %w", err)
	}

	return tx.Commit()
}

// PermissionConstraint returns the ceiling for (role, command, kind). The
// second result is false when no constraint exists, which means unlimited.
func (d *Database) PermissionConstraint(roleID, command, kind string) (int64, bool, error) {
	var value int64
	err := d.db.QueryRow(
		`SELECT pc.value FROM permission_constraints pc
		 JOIN permissions p ON p.id = pc.permission_id
		 WHERE p.role_id = ? AND p.command = ? AND pc.type = ?`,
		roleID, command, kind).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return value, true, nil
}
