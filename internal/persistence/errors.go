package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrMalformedWeekdays is returned when a weekday list cannot be encoded or a
	// stored one cannot be decoded.
	ErrMalformedWeekdays = errors.New("persistence: malformed weekday list")
	// ErrMalformedRecord is returned when a stored column holds a value of an
	// unexpected shape.
	ErrMalformedRecord = errors.New("persistence: malformed record")
	// ErrInvalidWeekday is returned when a query names a day outside Sunday..Saturday.
	ErrInvalidWeekday = errors.New("persistence: invalid weekday")
)
