package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds process configuration. Operator-tunable delivery
// settings (button, promo, TTL, channels) live in the database, not
// here; this is only what the process needs to come up.
type Config struct {
	// AdminID is the platform user id allowed to run admin commands.
	AdminID int64 `json:"admin_id"`

	// BotUsername is used to build distributable links
	// (https://t.me/<username>?start=<token>).
	BotUsername string `json:"bot_username"`

	// BotToken authenticates the transport layer against the platform.
	// Prefer the TELEDROP_BOT_TOKEN environment variable over the file.
	BotToken string `json:"bot_token,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized (reduces "database is locked" errors).
	// 0 means use sql.DB default (unlimited). Only set if you experience contention.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// Load loads configuration from baseDir/config.json, then applies
// environment overrides. Returns default config if the file doesn't
// exist. The baseDir parameter allows tests to use t.TempDir() instead
// of ~/.teledrop.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFile(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	applyEnv(cfg)
	return cfg, nil
}

// applyEnv overlays environment variables onto the config.
func applyEnv(cfg *Config) {
	if token := os.Getenv("TELEDROP_BOT_TOKEN"); token != "" {
		cfg.BotToken = token
	}
	if admin := os.Getenv("TELEDROP_ADMIN_ID"); admin != "" {
		if id, err := strconv.ParseInt(admin, 10, 64); err == nil {
			cfg.AdminID = id
		}
	}
	if username := os.Getenv("TELEDROP_BOT_USERNAME"); username != "" {
		cfg.BotUsername = username
	}
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs. Overlay values take
// precedence for non-zero scalars.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.AdminID = overlay.AdminID
	if result.AdminID == 0 {
		result.AdminID = base.AdminID
	}

	result.BotUsername = overlay.BotUsername
	if result.BotUsername == "" {
		result.BotUsername = base.BotUsername
	}

	result.BotToken = overlay.BotToken
	if result.BotToken == "" {
		result.BotToken = base.BotToken
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	return result
}
