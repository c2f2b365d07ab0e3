package schema

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
)

// Manager brings a database to the declared schema version.
type Manager struct {
	scanner  FileScanner
	executor Executor
	scripts  fs.FS
	dir      string
	logger   *slog.Logger
}

// NewManager creates a Manager reading scripts from dir inside scripts.
func NewManager(scanner FileScanner, executor Executor, scripts fs.FS, dir string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		scanner:  scanner,
		executor: executor,
		scripts:  scripts,
		dir:      dir,
		logger:   logger.With("component", "schema"),
	}
}

// DeclaredScript returns the script with the highest version.
func (m *Manager) DeclaredScript() (Script, error) {
	scripts, err := m.scanner.ScanScripts(m.scripts, m.dir)
	if err != nil {
		return Script{}, fmt.Errorf("failed to scan schema scripts: %w", err)
	}
	latest, err := Latest(scripts)
	if err != nil {
		return Script{}, NewSchemaError(0, m.dir, "select declared version", err)
	}
	return latest, nil
}

// Ensure creates the schema in a fresh database, recreates it empty when the
// stored version is older than the declared one, and does nothing when they
// match.
func (m *Manager) Ensure(ctx context.Context) (Outcome, error) {
	declared, err := m.DeclaredScript()
	if err != nil {
		return OutcomeUnchanged, err
	}

	stored, err := m.executor.StoredVersion(ctx)
	if err != nil {
		return OutcomeUnchanged, err
	}

	logger := m.logger.With("stored_version", stored, "declared_version", declared.Version)

	switch {
	case stored == declared.Version:
		logger.DebugContext(ctx, "schema is current")
		return OutcomeUnchanged, nil

	case stored > declared.Version:
		logger.ErrorContext(ctx, "refusing to downgrade schema")
		return OutcomeUnchanged, fmt.Errorf("%w: stored %d, declared %d", ErrSchemaDowngrade, stored, declared.Version)

	case stored == 0:
		// A database without a recorded version may still hold tables created
		// outside the manager; they are dropped like any older schema.
		tables, err := m.executor.UserTables(ctx)
		if err != nil {
			return OutcomeUnchanged, err
		}
		if len(tables) == 0 {
			if err := m.executor.ApplyScript(ctx, declared, false); err != nil {
				logger.ErrorContext(ctx, "failed to create schema", "error", err)
				return OutcomeUnchanged, err
			}
			logger.InfoContext(ctx, "schema created", "description", declared.Description)
			return OutcomeCreated, nil
		}
	}

	if err := m.executor.ApplyScript(ctx, declared, true); err != nil {
		logger.ErrorContext(ctx, "failed to recreate schema", "error", err)
		return OutcomeUnchanged, err
	}
	logger.WarnContext(ctx, "schema recreated, existing data dropped", "description", declared.Description)
	return OutcomeRecreated, nil
}

// Status reports the stored and declared versions without changing anything.
func (m *Manager) Status(ctx context.Context) (Status, error) {
	declared, err := m.DeclaredScript()
	if err != nil {
		return Status{}, err
	}
	stored, err := m.executor.StoredVersion(ctx)
	if err != nil {
		return Status{}, err
	}
	return Status{
		StoredVersion:   stored,
		DeclaredVersion: declared.Version,
		Description:     declared.Description,
		Checksum:        declared.Checksum,
	}, nil
}
