package schema

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"testing"
)

// Mock implementations for testing

type mockFileScanner struct {
	scripts   []Script
	scanError error
}

func (m *mockFileScanner) ScanScripts(fsys fs.FS, dir string) ([]Script, error) {
	if m.scanError != nil {
		return nil, m.scanError
	}
	return m.scripts, nil
}

func (m *mockFileScanner) ValidateFileName(filename string) error {
	return nil
}

func (m *mockFileScanner) ParseScriptFile(fsys fs.FS, path string) (*Script, error) {
	return nil, nil
}

type applyCall struct {
	version      int
	dropExisting bool
}

type mockExecutor struct {
	stored     int
	tables     []string
	storedErr  error
	tablesErr  error
	applyError error
	applied    []applyCall
}

func (m *mockExecutor) StoredVersion(ctx context.Context) (int, error) {
	return m.stored, m.storedErr
}

func (m *mockExecutor) UserTables(ctx context.Context) ([]string, error) {
	return m.tables, m.tablesErr
}

func (m *mockExecutor) ApplyScript(ctx context.Context, script Script, dropExisting bool) error {
	m.applied = append(m.applied, applyCall{version: script.Version, dropExisting: dropExisting})
	if m.applyError != nil {
		return m.applyError
	}
	m.stored = script.Version
	return nil
}

func newTestManager(executor *mockExecutor, scripts ...Script) *Manager {
	if len(scripts) == 0 {
		scripts = []Script{
			{Version: 3, Description: "old reminders", SQL: tableSQL},
			{Version: 4, Description: "reminder table", SQL: tableSQL, Checksum: "abc"},
		}
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewManager(&mockFileScanner{scripts: scripts}, executor, nil, "schemas", logger)
}

func TestManager_Ensure(t *testing.T) {
	tests := []struct {
		name     string
		executor *mockExecutor
		want     Outcome
		applied  []applyCall
	}{
		{
			name:     "fresh database is created",
			executor: &mockExecutor{},
			want:     OutcomeCreated,
			applied:  []applyCall{{version: 4, dropExisting: false}},
		},
		{
			name:     "current version is left alone",
			executor: &mockExecutor{stored: 4, tables: []string{"ReminderTable"}},
			want:     OutcomeUnchanged,
		},
		{
			name:     "older version is recreated",
			executor: &mockExecutor{stored: 2, tables: []string{"ReminderTable"}},
			want:     OutcomeRecreated,
			applied:  []applyCall{{version: 4, dropExisting: true}},
		},
		{
			name:     "unversioned tables are recreated",
			executor: &mockExecutor{tables: []string{"ReminderTable"}},
			want:     OutcomeRecreated,
			applied:  []applyCall{{version: 4, dropExisting: true}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			manager := newTestManager(tc.executor)

			got, err := manager.Ensure(context.Background())
			if err != nil {
				t.Fatalf("Ensure returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected outcome %s, got %s", tc.want, got)
			}
			if len(tc.executor.applied) != len(tc.applied) {
				t.Fatalf("expected %d applied scripts, got %d", len(tc.applied), len(tc.executor.applied))
			}
			for i := range tc.applied {
				if tc.executor.applied[i] != tc.applied[i] {
					t.Errorf("apply %d: expected %+v, got %+v", i, tc.applied[i], tc.executor.applied[i])
				}
			}
		})
	}
}

func TestManager_EnsureRefusesDowngrade(t *testing.T) {
	executor := &mockExecutor{stored: 9, tables: []string{"ReminderTable"}}
	manager := newTestManager(executor)

	_, err := manager.Ensure(context.Background())
	if !errors.Is(err, ErrSchemaDowngrade) {
		t.Fatalf("expected ErrSchemaDowngrade, got %v", err)
	}
	if len(executor.applied) != 0 {
		t.Fatalf("expected no script to be applied on downgrade")
	}
}

func TestManager_EnsurePropagatesErrors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name     string
		scanner  *mockFileScanner
		executor *mockExecutor
		want     error
	}{
		{
			name:     "scan failure",
			scanner:  &mockFileScanner{scanError: boom},
			executor: &mockExecutor{},
			want:     boom,
		},
		{
			name:     "no scripts",
			scanner:  &mockFileScanner{},
			executor: &mockExecutor{},
			want:     ErrNoScripts,
		},
		{
			name:     "stored version failure",
			scanner:  &mockFileScanner{scripts: []Script{{Version: 4, SQL: tableSQL}}},
			executor: &mockExecutor{storedErr: boom},
			want:     boom,
		},
		{
			name:     "table listing failure",
			scanner:  &mockFileScanner{scripts: []Script{{Version: 4, SQL: tableSQL}}},
			executor: &mockExecutor{tablesErr: boom},
			want:     boom,
		},
		{
			name:     "apply failure",
			scanner:  &mockFileScanner{scripts: []Script{{Version: 4, SQL: tableSQL}}},
			executor: &mockExecutor{stored: 1, applyError: boom},
			want:     boom,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			manager := NewManager(tc.scanner, tc.executor, nil, "schemas", logger)

			outcome, err := manager.Ensure(context.Background())
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if outcome != OutcomeUnchanged {
				t.Fatalf("expected unchanged outcome on error, got %s", outcome)
			}
		})
	}
}

func TestManager_Status(t *testing.T) {
	manager := newTestManager(&mockExecutor{stored: 3})

	status, err := manager.Status(context.Background())
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if status.StoredVersion != 3 || status.DeclaredVersion != 4 {
		t.Fatalf("unexpected versions: %+v", status)
	}
	if status.Current() {
		t.Fatalf("expected status to report an outdated schema")
	}
	if status.Description != "reminder table" || status.Checksum != "abc" {
		t.Fatalf("unexpected declared script details: %+v", status)
	}
}

func TestOutcome_String(t *testing.T) {
	cases := map[Outcome]string{
		OutcomeUnchanged: "unchanged",
		OutcomeCreated:   "created",
		OutcomeRecreated: "recreated",
		Outcome(42):      "unknown",
	}
	for outcome, want := range cases {
		if got := outcome.String(); got != want {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(outcome), got, want)
		}
	}
}
