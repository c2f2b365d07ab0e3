package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/class-reminder/internal/logging"
	"github.com/example/class-reminder/internal/persistence/sqlite"
)

// DefaultEnvFile is read when present and no other file is named.
const DefaultEnvFile = ".env"

// Config captures environment driven configuration values for the reminder store.
type Config struct {
	DBPath      string
	BusyTimeout time.Duration
	JournalMode string
	LogLevel    slog.Level
	Location    *time.Location
}

// Load parses configuration values from the current process environment.
//
// Variables from envFiles are added to the environment first without
// overriding values that are already set. When no file is named the optional
// DefaultEnvFile is used; named files must exist.
func Load(envFiles ...string) (Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:      "reminders.db",
		BusyTimeout: 5 * time.Second,
		JournalMode: "WAL",
		LogLevel:    slog.LevelInfo,
		Location:    time.Local,
	}

	invalid := make([]string, 0, 2)

	if path := strings.TrimSpace(os.Getenv("REMINDER_DB_PATH")); path != "" {
		cfg.DBPath = path
	}

	if timeoutValue := strings.TrimSpace(os.Getenv("REMINDER_BUSY_TIMEOUT")); timeoutValue != "" {
		timeout, err := time.ParseDuration(timeoutValue)
		if err != nil || timeout < 0 {
			invalid = append(invalid, "REMINDER_BUSY_TIMEOUT")
		} else {
			cfg.BusyTimeout = timeout
		}
	}

	if mode := strings.TrimSpace(os.Getenv("REMINDER_JOURNAL_MODE")); mode != "" {
		probe := sqlite.DefaultConfig(cfg.DBPath)
		probe.JournalMode = mode
		if err := probe.Validate(); err != nil {
			invalid = append(invalid, "REMINDER_JOURNAL_MODE")
		} else {
			cfg.JournalMode = strings.ToUpper(mode)
		}
	}

	if levelValue := os.Getenv("REMINDER_LOG_LEVEL"); levelValue != "" {
		level, err := logging.ParseLevel(levelValue)
		if err != nil {
			invalid = append(invalid, "REMINDER_LOG_LEVEL")
		} else {
			cfg.LogLevel = level
		}
	}

	if zone := strings.TrimSpace(os.Getenv("REMINDER_TIMEZONE")); zone != "" {
		location, err := time.LoadLocation(zone)
		if err != nil {
			invalid = append(invalid, "REMINDER_TIMEZONE")
		} else {
			cfg.Location = location
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("環境変数の値が不正です: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// Store returns the SQLite configuration for the configured database file.
func (c Config) Store() sqlite.Config {
	store := sqlite.DefaultConfig(c.DBPath)
	store.BusyTimeout = c.BusyTimeout
	if c.JournalMode != "" {
		store.JournalMode = c.JournalMode
	}
	return store
}

func loadEnvFiles(envFiles []string) error {
	if len(envFiles) == 0 {
		err := godotenv.Load(DefaultEnvFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("設定ファイルを読み込めません: %s: %w", DefaultEnvFile, err)
		}
		return nil
	}
	if err := godotenv.Load(envFiles...); err != nil {
		return fmt.Errorf("設定ファイルを読み込めません: %s: %w", strings.Join(envFiles, ", "), err)
	}
	return nil
}
