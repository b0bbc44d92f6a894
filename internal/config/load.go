package config

import (
	"encoding/json"
	"os"
	"time"
)

type Config struct {
	Bot      BotConfig      `json:"bot"`
	Database DatabaseConfig `json:"database"`
	Logging  LoggingConfig  `json:"logging"`
	Guard    GuardConfig    `json:"guard"`
	Tasks    TasksConfig    `json:"tasks"`

	// Stats maps guild ID to the voice channels renamed by the stat
	// refresher. A zero/empty channel ID disables that counter.
	Stats map[string]StatsChannels `json:"stats"`
}

type BotConfig struct {
	Token    string `json:"token"`
	ClientID string `json:"client_id"`

	// OwnerID is the primary bot owner; co-owners live in the bot_owners
	// table and are managed over the owner command.
	OwnerID string `json:"owner_id"`
}

type DatabaseConfig struct {
	Path string `json:"path"`
}

type LoggingConfig struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type GuardConfig struct {
	// TrackerCapacity bounds each (guild, actor, category) window; oldest
	// timestamps are dropped past this regardless of the time window.
	TrackerCapacity int `json:"tracker_capacity"`
	WorkerCount     int `json:"worker_count"`
	HTTPPoolSize    int `json:"http_pool_size"`
}

type TasksConfig struct {
	SweepInterval    string `json:"sweep_interval"`
	StatsInterval    string `json:"stats_interval"`
	PresenceInterval string `json:"presence_interval"`
}

type StatsChannels struct {
	Members string `json:"members"`
	Online  string `json:"online"`
	Voice   string `json:"voice"`
	Boosts  string `json:"boosts"`
}

var GlobalConfig *Config

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	GlobalConfig = &cfg
	return &cfg, nil
}

func LoadOrDefault(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		cfg = DefaultConfig()
		applyEnv(cfg)
		GlobalConfig = cfg
	}
	return cfg
}

func applyEnv(cfg *Config) {
	if token := os.Getenv("DISCORD_TOKEN"); token != "" {
		cfg.Bot.Token = token
	}
	if clientID := os.Getenv("CLIENT_ID"); clientID != "" {
		cfg.Bot.ClientID = clientID
	}
	if ownerID := os.Getenv("BOT_OWNER_ID"); ownerID != "" {
		cfg.Bot.OwnerID = ownerID
	}
	if dbPath := os.Getenv("DATABASE_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}
}

func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.Database.Path == "" {
		cfg.Database.Path = def.Database.Path
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if cfg.Guard.TrackerCapacity <= 0 {
		cfg.Guard.TrackerCapacity = def.Guard.TrackerCapacity
	}
	if cfg.Guard.WorkerCount <= 0 {
		cfg.Guard.WorkerCount = def.Guard.WorkerCount
	}
	if cfg.Guard.HTTPPoolSize <= 0 {
		cfg.Guard.HTTPPoolSize = def.Guard.HTTPPoolSize
	}
	if cfg.Tasks.SweepInterval == "" {
		cfg.Tasks.SweepInterval = def.Tasks.SweepInterval
	}
	if cfg.Tasks.StatsInterval == "" {
		cfg.Tasks.StatsInterval = def.Tasks.StatsInterval
	}
	if cfg.Tasks.PresenceInterval == "" {
		cfg.Tasks.PresenceInterval = def.Tasks.PresenceInterval
	}
}

func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "modguard.db"},
		Logging:  LoggingConfig{Level: "info", File: "modguard.log"},
		Guard: GuardConfig{
			TrackerCapacity: 15,
			WorkerCount:     4,
			HTTPPoolSize:    4,
		},
		Tasks: TasksConfig{
			SweepInterval:    "@every 1m",
			StatsInterval:    "@every 10m",
			PresenceInterval: "@every 5m",
		},
	}
}

func Get() *Config {
	if GlobalConfig == nil {
		return DefaultConfig()
	}
	return GlobalConfig
}

// SweepIntervalOrDefault parses a cron "@every" duration used by tests and
// status reporting; the cron scheduler consumes the raw spec string.
func SweepIntervalOrDefault(cfg *Config) time.Duration {
	d, err := time.ParseDuration(trimEvery(cfg.Tasks.SweepInterval))
	if err != nil {
		return time.Minute
	}
	return d
}

func trimEvery(spec string) string {
	const prefix = "@every "
	if len(spec) > len(prefix) && spec[:len(prefix)] == prefix {
		return spec[len(prefix):]
	}
	return spec
}
