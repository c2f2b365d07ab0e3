package schema

import (
	"context"
	"io/fs"
)

// Script is one versioned schema definition read from a SQL file.
type Script struct {
	Version     int    // Version parsed from the file name
	Description string // Human-readable description
	SQL         string // Statements creating the schema
	FilePath    string // Path of the script inside its file system
	Checksum    string // SHA-256 of SQL
}

// Outcome describes what Ensure did to the database.
type Outcome int

const (
	// OutcomeUnchanged means the stored version already matched.
	OutcomeUnchanged Outcome = iota
	// OutcomeCreated means the schema was created in a fresh database.
	OutcomeCreated
	// OutcomeRecreated means an older schema was dropped and recreated empty.
	OutcomeRecreated
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeCreated:
		return "created"
	case OutcomeRecreated:
		return "recreated"
	}
	return "unknown"
}

// Status reports the stored and declared schema versions.
type Status struct {
	StoredVersion   int
	DeclaredVersion int
	Description     string
	Checksum        string
}

// Current reports whether the database is at the declared version.
func (s Status) Current() bool {
	return s.StoredVersion == s.DeclaredVersion
}

// FileScanner reads schema scripts from a file system.
type FileScanner interface {
	// ScanScripts returns every script in dir ordered by ascending version.
	ScanScripts(fsys fs.FS, dir string) ([]Script, error)

	// ValidateFileName checks a file name against {version}_{description}.sql.
	ValidateFileName(filename string) error

	// ParseScriptFile reads and validates a single script.
	ParseScriptFile(fsys fs.FS, path string) (*Script, error)
}

// Executor applies scripts to a database and reads its stored version.
type Executor interface {
	// StoredVersion returns the version recorded in the database, 0 when none.
	StoredVersion(ctx context.Context) (int, error)

	// UserTables lists the tables owned by the application.
	UserTables(ctx context.Context) ([]string, error)

	// ApplyScript runs script and records its version in one transaction. When
	// dropExisting is set every user table is dropped first.
	ApplyScript(ctx context.Context, script Script, dropExisting bool) error
}
