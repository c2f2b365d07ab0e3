package schema

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite", filepath.Join(t.TempDir(), "schema.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteExecutor_ApplyScript(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	executor := NewSQLiteExecutor(db)

	version, err := executor.StoredVersion(ctx)
	if err != nil {
		t.Fatalf("StoredVersion failed: %v", err)
	}
	if version != 0 {
		t.Fatalf("expected fresh database at version 0, got %d", version)
	}

	first := Script{Version: 1, SQL: tableSQL}
	if err := executor.ApplyScript(ctx, first, false); err != nil {
		t.Fatalf("ApplyScript failed: %v", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO things (name) VALUES ('kept?')`); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	second := Script{Version: 2, SQL: `CREATE TABLE others (id INTEGER PRIMARY KEY);
CREATE TABLE things (id INTEGER PRIMARY KEY, name TEXT, extra TEXT);`}
	if err := executor.ApplyScript(ctx, second, true); err != nil {
		t.Fatalf("ApplyScript with drop failed: %v", err)
	}

	version, err = executor.StoredVersion(ctx)
	if err != nil {
		t.Fatalf("StoredVersion failed: %v", err)
	}
	if version != 2 {
		t.Fatalf("expected version 2, got %d", version)
	}

	tables, err := executor.UserTables(ctx)
	if err != nil {
		t.Fatalf("UserTables failed: %v", err)
	}
	if len(tables) != 2 || tables[0] != "others" || tables[1] != "things" {
		t.Fatalf("unexpected tables: %v", tables)
	}

	var rows int
	if err := db.GetContext(ctx, &rows, `SELECT COUNT(*) FROM things`); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected recreated table to be empty, got %d rows", rows)
	}
}

func TestSQLiteExecutor_ApplyScriptRollsBack(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	executor := NewSQLiteExecutor(db)

	if err := executor.ApplyScript(ctx, Script{Version: 1, SQL: tableSQL}, false); err != nil {
		t.Fatalf("ApplyScript failed: %v", err)
	}

	broken := Script{Version: 2, SQL: `CREATE TABLE fresh (id INTEGER); CREATE TABLE fresh (id INTEGER);`}
	err := executor.ApplyScript(ctx, broken, true)
	if err == nil {
		t.Fatalf("expected error for conflicting statements")
	}
	var dbErr *DatabaseError
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected *DatabaseError, got %T", err)
	}
	if dbErr.Version != 2 {
		t.Fatalf("expected error for version 2, got %d", dbErr.Version)
	}

	version, err := executor.StoredVersion(ctx)
	if err != nil {
		t.Fatalf("StoredVersion failed: %v", err)
	}
	if version != 1 {
		t.Fatalf("expected rollback to keep version 1, got %d", version)
	}
	tables, err := executor.UserTables(ctx)
	if err != nil {
		t.Fatalf("UserTables failed: %v", err)
	}
	if len(tables) != 1 || tables[0] != "things" {
		t.Fatalf("expected rollback to restore original tables, got %v", tables)
	}
}

func TestSQLiteExecutor_ApplyScriptWithoutStatements(t *testing.T) {
	executor := NewSQLiteExecutor(openTestDB(t))

	err := executor.ApplyScript(context.Background(), Script{Version: 1, SQL: "-- nothing"}, false)
	if !errors.Is(err, ErrInvalidSchemaFile) {
		t.Fatalf("expected ErrInvalidSchemaFile, got %v", err)
	}
}

func TestErrors_Messages(t *testing.T) {
	schemaErr := NewSchemaError(4, "schemas/0004_x.sql", "parse", ErrInvalidSchemaFile)
	if got := schemaErr.Error(); got != "schema 4 (schemas/0004_x.sql): parse: "+ErrInvalidSchemaFile.Error() {
		t.Errorf("unexpected schema error message %q", got)
	}
	if !errors.Is(schemaErr, ErrInvalidSchemaFile) {
		t.Errorf("expected schema error to unwrap")
	}

	dbErr := NewDatabaseError(0, "SELECT 1", "read", errors.New("closed"))
	if got := dbErr.Error(); got != "database error during read: closed" {
		t.Errorf("unexpected database error message %q", got)
	}
}
