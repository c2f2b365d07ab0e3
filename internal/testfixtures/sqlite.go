package testfixtures

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/example/class-reminder/internal/persistence"
	"github.com/example/class-reminder/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary SQLite storage
// instance for integration-style persistence tests.
type SQLiteHarness struct {
	Reminders persistence.ReminderRepository
	Storage   *sqlite.Storage
	Path      string

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// Seed stores each fixture and returns the reminders with their assigned IDs.
func (h *SQLiteHarness) Seed(tb testing.TB, fixtures ...ReminderFixture) []persistence.Reminder {
	tb.Helper()

	seeded := make([]persistence.Reminder, 0, len(fixtures))
	for _, fixture := range fixtures {
		reminder := fixture.Reminder()
		id, err := h.Reminders.AddReminder(context.Background(), reminder)
		if err != nil {
			tb.Fatalf("failed to seed reminder %q: %v", reminder.Title, err)
		}
		reminder.ID = id
		seeded = append(seeded, reminder)
	}
	return seeded
}

// NewSQLiteHarness constructs a SQLiteHarness using a temporary file whose
// schema is created on open. Callers may optionally invoke Close, but the
// helper will also register a cleanup callback with the provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "reminders.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	storage, err := sqlite.Open(context.Background(), sqlite.TestConfig(path), sqlite.Options{Logger: logger})
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	harness := &SQLiteHarness{
		Reminders: storage,
		Storage:   storage,
		Path:      path,
		cleanup: func() {
			_ = storage.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
