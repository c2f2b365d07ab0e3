package application

import (
	"errors"
	"fmt"

	"github.com/example/class-reminder/internal/persistence"
)

var (
	// ErrNotFound is returned when the requested reminder does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrMalformedData is returned when stored reminder data cannot be decoded
	// or a reminder cannot be encoded for storage.
	ErrMalformedData = errors.New("application: malformed reminder data")
	// ErrInvalidWeekday is returned when a query names a day outside Sunday..Saturday.
	ErrInvalidWeekday = errors.New("application: invalid weekday")
	// ErrInvalidWindow is returned when an agenda window is out of range.
	ErrInvalidWindow = errors.New("application: invalid agenda window")
)

// mapReminderRepoError translates repository sentinels into application ones
// while keeping the original error in the chain.
func mapReminderRepoError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrMalformedData), errors.Is(err, ErrInvalidWeekday):
		return err
	case errors.Is(err, persistence.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrMalformedWeekdays), errors.Is(err, persistence.ErrMalformedRecord):
		return fmt.Errorf("%w: %w", ErrMalformedData, err)
	case errors.Is(err, persistence.ErrInvalidWeekday):
		return fmt.Errorf("%w: %w", ErrInvalidWeekday, err)
	}
	return err
}
