package sqlite

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/example/class-reminder/internal/persistence/sqlite/schema"
)

//go:embed schemas/*.sql
var embeddedSchemas embed.FS

const embeddedSchemaDir = "schemas"

// Options adjusts how Open prepares the database. The zero value uses the
// embedded schema scripts and slog.Default.
type Options struct {
	Schemas   fs.FS
	SchemaDir string
	Logger    *slog.Logger
}

// Storage is the reminder store: a connection pool, the schema manager that
// prepared it, and the reminder repository operating on it.
type Storage struct {
	*ReminderRepository

	pool   *ConnectionPool
	schema *schema.Manager
}

// Open connects to the database described by config and brings it to the
// declared schema version before returning.
func Open(ctx context.Context, config Config, opts Options) (*Storage, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	scripts, dir := opts.Schemas, opts.SchemaDir
	if scripts == nil {
		scripts, dir = embeddedSchemas, embeddedSchemaDir
	}

	pool, err := NewConnectionPool(ctx, config)
	if err != nil {
		return nil, err
	}

	manager := schema.NewManager(schema.NewFileScanner(), schema.NewSQLiteExecutor(pool.DB()), scripts, dir, logger)
	outcome, err := manager.Ensure(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to prepare schema: %w", err)
	}

	logger.DebugContext(ctx, "reminder store opened", "path", config.Path, "schema", outcome.String())

	return &Storage{
		ReminderRepository: NewReminderRepository(pool),
		pool:               pool,
		schema:             manager,
	}, nil
}

// Close releases the connection pool.
func (s *Storage) Close() error {
	return s.pool.Close()
}

// Ping checks that the database is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// SchemaStatus reports the stored and declared schema versions.
func (s *Storage) SchemaStatus(ctx context.Context) (schema.Status, error) {
	return s.schema.Status(ctx)
}
