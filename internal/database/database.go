package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

type Database struct {
	db *sql.DB
}

var globalDB *Database

// Initialize opens the SQLite database and creates the schema.
func Initialize(dbPath string) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return fmt.Errorf("failed to set synchronous mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	globalDB = &Database{db: db}

	if err := globalDB.createTables(); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// Open returns a standalone Database handle; used by tests against
// in-memory databases without touching the global.
func Open(dbPath string) (*Database, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	d := &Database{db: db}
	if err := d.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return d, nil
}

// GetDB returns the global database instance.
func GetDB() *Database {
	return globalDB
}

// IsConnected checks if the database connection is alive.
func IsConnected() bool {
	if globalDB == nil || globalDB.db == nil {
		return false
	}
	return globalDB.db.Ping() == nil
}

// Close closes the database connection.
func Close() error {
	if globalDB != nil && globalDB.db != nil {
		return globalDB.db.Close()
	}
	return nil
}

func (d *Database) CloseHandle() error {
	return d.db.Close()
}

func (d *Database) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS guild_settings (
		guild_id TEXT PRIMARY KEY,
		modlog_channel_id TEXT DEFAULT '',
		raidlog_channel_id TEXT DEFAULT '',
		raid_ping_role_id TEXT DEFAULT '',
		creation_limit_seconds INTEGER DEFAULT 0,

		antiban_on INTEGER DEFAULT 0, antiban_sensitivity TEXT DEFAULT '3/10s', antiban_punishment TEXT DEFAULT 'ban',
		antichannel_on INTEGER DEFAULT 0, antichannel_sensitivity TEXT DEFAULT '3/10s', antichannel_punishment TEXT DEFAULT 'kick',
		antirole_on INTEGER DEFAULT 0, antirole_sensitivity TEXT DEFAULT '3/10s', antirole_punishment TEXT DEFAULT 'kick',
		antiwebhook_on INTEGER DEFAULT 0, antiwebhook_sensitivity TEXT DEFAULT '3/10s', antiwebhook_punishment TEXT DEFAULT 'ban',
		antiunban_on INTEGER DEFAULT 0, antiunban_sensitivity TEXT DEFAULT '3/10s', antiunban_punishment TEXT DEFAULT 'kick',
		antibot_on INTEGER DEFAULT 0, antibot_sensitivity TEXT DEFAULT '1/10s', antibot_punishment TEXT DEFAULT 'kick',
		antieveryone_on INTEGER DEFAULT 0, antieveryone_sensitivity TEXT DEFAULT '3/10s', antieveryone_punishment TEXT DEFAULT 'kick',
		antideco_on INTEGER DEFAULT 0, antideco_sensitivity TEXT DEFAULT '5/10s', antideco_punishment TEXT DEFAULT 'kick',
		antiupdate_on INTEGER DEFAULT 0, antiupdate_sensitivity TEXT DEFAULT '3/10s', antiupdate_punishment TEXT DEFAULT 'kick',

		welcome_channel_id TEXT DEFAULT '',
		welcome_message TEXT DEFAULT '',
		leave_channel_id TEXT DEFAULT '',
		leave_message TEXT DEFAULT '',
		autorole_id TEXT DEFAULT '',
		support_role_id TEXT DEFAULT '',
		support_message TEXT DEFAULT '',
		prison_role_id TEXT DEFAULT '',
		prison_channel_id TEXT DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS permissions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guild_id TEXT NOT NULL,
		role_id TEXT NOT NULL,
		command TEXT NOT NULL,
		UNIQUE(guild_id, role_id, command)
	);

	CREATE INDEX IF NOT EXISTS idx_permissions_role ON permissions(guild_id, role_id);

	CREATE TABLE IF NOT EXISTS permission_constraints (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		permission_id INTEGER NOT NULL,
		type TEXT NOT NULL,
		value INTEGER NOT NULL,
		FOREIGN KEY (permission_id) REFERENCES permissions (id) ON DELETE CASCADE,
		UNIQUE(permission_id, type)
	);

	CREATE TABLE IF NOT EXISTS sanctions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guild_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		moderator_id TEXT NOT NULL,
		sanction_type TEXT NOT NULL,
		reason TEXT DEFAULT '',
		start_time INTEGER NOT NULL,
		end_time INTEGER DEFAULT 0,
		active INTEGER NOT NULL,
		role_id TEXT DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_sanctions_user ON sanctions(guild_id, user_id);
	CREATE INDEX IF NOT EXISTS idx_sanctions_expiry ON sanctions(active, end_time);

	CREATE TABLE IF NOT EXISTS prisoned_user_roles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guild_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		role_id TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_prison_user ON prisoned_user_roles(guild_id, user_id);

	CREATE TABLE IF NOT EXISTS antiraid_whitelist (
		guild_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		PRIMARY KEY (guild_id, user_id)
	);

	CREATE TABLE IF NOT EXISTS bot_owners (
		user_id TEXT PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS blacklist (
		user_id TEXT PRIMARY KEY,
		reason TEXT DEFAULT ''
	);
	`

	_, err := d.db.Exec(schema)
	return err
}
