package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/class-reminder/internal/application"
	"github.com/example/class-reminder/internal/config"
	"github.com/example/class-reminder/internal/logging"
	"github.com/example/class-reminder/internal/persistence/sqlite"
)

// cli holds the process-wide dependencies shared by every command.
type cli struct {
	now   func() time.Time
	newID func() string
}

func newCLI() *cli {
	return &cli{now: time.Now, newID: uuid.NewString}
}

// session is one opened store plus the service and logger for a single
// command invocation.
type session struct {
	ctx      context.Context
	logger   *slog.Logger
	storage  *sqlite.Storage
	service  *application.ReminderService
	location *time.Location
}

func (s *session) close() {
	if err := s.storage.Close(); err != nil {
		s.logger.ErrorContext(s.ctx, "failed to close storage", "error", err)
	}
}

// open loads configuration, applies flag overrides and opens the store.
func (c *cli) open(cmd *cobra.Command) (*session, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	dbPath, _ := cmd.Flags().GetString("db")
	levelName, _ := cmd.Flags().GetString("log-level")

	var envFiles []string
	if envFile != "" {
		envFiles = append(envFiles, envFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if levelName != "" {
		level, err := logging.ParseLevel(levelName)
		if err != nil {
			return nil, err
		}
		cfg.LogLevel = level
	}

	logger := logging.NewJSONLogger(cmd.ErrOrStderr(), cfg.LogLevel,
		"invocation_id", c.newID(),
		"command", cmd.Name(),
	)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.ContextWithLogger(ctx, logger)

	storage, err := sqlite.Open(ctx, cfg.Store(), sqlite.Options{Logger: logger})
	if err != nil {
		logger.ErrorContext(ctx, "failed to open storage", "path", cfg.DBPath, "error", err)
		return nil, fmt.Errorf("opening %s: %w", cfg.DBPath, err)
	}

	return &session{
		ctx:      ctx,
		logger:   logger,
		storage:  storage,
		service:  application.NewReminderServiceWithLogger(storage, c.now, cfg.Location, logger),
		location: cfg.Location,
	}, nil
}

// run opens a session, hands it to fn and closes it afterwards.
func (c *cli) run(cmd *cobra.Command, fn func(*session, io.Writer) error) error {
	s, err := c.open(cmd)
	if err != nil {
		return err
	}
	defer s.close()
	return fn(s, cmd.OutOrStdout())
}
