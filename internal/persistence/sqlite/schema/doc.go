// Package schema keeps a SQLite database at the schema version declared by a
// set of versioned SQL scripts.
//
// Scripts follow the naming convention {version}_{description}.sql (for
// example "0005_reminder_table.sql"). The highest version found is the declared
// version; the version stored in the database lives in PRAGMA user_version.
//
// There is no incremental migration. When the stored version is older than the
// declared one, every table is dropped and the latest script recreates the
// schema empty, inside a single transaction. A stored version newer than the
// declared one is refused with ErrSchemaDowngrade.
//
// Example usage:
//
//	manager := NewManager(NewFileScanner(), NewSQLiteExecutor(db), scripts, "schemas", logger)
//	if _, err := manager.Ensure(ctx); err != nil {
//		return fmt.Errorf("preparing schema: %w", err)
//	}
package schema
