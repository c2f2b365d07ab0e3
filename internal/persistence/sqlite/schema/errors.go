package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrSchemaDowngrade indicates the database was written by a newer schema.
	ErrSchemaDowngrade = errors.New("schema: stored version is newer than declared version")

	// ErrInvalidSchemaFile indicates that a script is malformed or invalid.
	ErrInvalidSchemaFile = errors.New("schema: invalid schema file")

	// ErrInvalidVersion indicates that a script version is not a positive number.
	ErrInvalidVersion = errors.New("schema: invalid schema version")

	// ErrDuplicateVersion indicates that two scripts declare the same version.
	ErrDuplicateVersion = errors.New("schema: duplicate schema version")

	// ErrNoScripts indicates that no script was found to declare a version.
	ErrNoScripts = errors.New("schema: no schema scripts found")
)

// SchemaError wraps script handling errors with the file and operation.
type SchemaError struct {
	Version   int    // Script version, 0 when unknown
	FilePath  string // Path to the script
	Operation string // Operation being performed (scan, parse, apply)
	Err       error  // Underlying error
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	if e.Version != 0 {
		return fmt.Sprintf("schema %d (%s): %s: %v", e.Version, e.FilePath, e.Operation, e.Err)
	}
	return fmt.Sprintf("schema error (%s): %s: %v", e.FilePath, e.Operation, e.Err)
}

// Unwrap returns the underlying error for error unwrapping
func (e *SchemaError) Unwrap() error {
	return e.Err
}

// NewSchemaError creates a new SchemaError with context
func NewSchemaError(version int, filePath, operation string, err error) *SchemaError {
	return &SchemaError{
		Version:   version,
		FilePath:  filePath,
		Operation: operation,
		Err:       err,
	}
}

// DatabaseError wraps a failed statement issued while managing the schema.
type DatabaseError struct {
	Version   int    // Script version (if applicable)
	Query     string // SQL statement that failed (if applicable)
	Operation string
	Err       error
}

// Error implements the error interface
func (e *DatabaseError) Error() string {
	if e.Version != 0 {
		return fmt.Sprintf("database error in schema %d during %s: %v", e.Version, e.Operation, e.Err)
	}
	return fmt.Sprintf("database error during %s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error
func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// NewDatabaseError creates a new DatabaseError
func NewDatabaseError(version int, query, operation string, err error) *DatabaseError {
	return &DatabaseError{
		Version:   version,
		Query:     query,
		Operation: operation,
		Err:       err,
	}
}
