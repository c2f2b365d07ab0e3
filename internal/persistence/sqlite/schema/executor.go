package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

const userTablesQuery = `
	SELECT name FROM sqlite_master
	WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
	ORDER BY name ASC
`

// SQLiteExecutor implements Executor for SQLite databases.
type SQLiteExecutor struct {
	db *sqlx.DB
}

// NewSQLiteExecutor creates a new SQLite schema executor
func NewSQLiteExecutor(db *sqlx.DB) *SQLiteExecutor {
	return &SQLiteExecutor{db: db}
}

// StoredVersion reads PRAGMA user_version.
func (e *SQLiteExecutor) StoredVersion(ctx context.Context) (int, error) {
	var version int
	if err := e.db.GetContext(ctx, &version, "PRAGMA user_version"); err != nil {
		return 0, NewDatabaseError(0, "PRAGMA user_version", "read stored version", err)
	}
	return version, nil
}

// UserTables lists every table that is not internal to SQLite.
func (e *SQLiteExecutor) UserTables(ctx context.Context) ([]string, error) {
	tables := []string{}
	if err := e.db.SelectContext(ctx, &tables, userTablesQuery); err != nil {
		return nil, NewDatabaseError(0, userTablesQuery, "list tables", err)
	}
	return tables, nil
}

// ApplyScript runs the script statements and writes user_version in a single
// transaction. The transaction is rolled back on any failure.
func (e *SQLiteExecutor) ApplyScript(ctx context.Context, script Script, dropExisting bool) (err error) {
	statements := splitStatements(script.SQL)
	if len(statements) == 0 {
		return NewSchemaError(script.Version, script.FilePath, "parse SQL",
			fmt.Errorf("%w: no SQL statements found", ErrInvalidSchemaFile))
	}

	tx, err := e.db.BeginTxx(ctx, nil)
	if err != nil {
		return NewDatabaseError(script.Version, "", "begin transaction", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if dropExisting {
		var tables []string
		if err = tx.SelectContext(ctx, &tables, userTablesQuery); err != nil {
			return NewDatabaseError(script.Version, userTablesQuery, "list tables", err)
		}
		for _, table := range tables {
			stmt := "DROP TABLE IF EXISTS " + quoteIdent(table)
			if _, err = tx.ExecContext(ctx, stmt); err != nil {
				return NewDatabaseError(script.Version, stmt, "drop table "+table, err)
			}
		}
	}

	for i, stmt := range statements {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return NewDatabaseError(script.Version, stmt, fmt.Sprintf("execute statement %d", i+1), err)
		}
	}

	// PRAGMA arguments cannot be bound.
	versionStmt := fmt.Sprintf("PRAGMA user_version = %d", script.Version)
	if _, err = tx.ExecContext(ctx, versionStmt); err != nil {
		return NewDatabaseError(script.Version, versionStmt, "record version", err)
	}

	if err = tx.Commit(); err != nil {
		return NewDatabaseError(script.Version, "", "commit transaction", err)
	}
	return nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
