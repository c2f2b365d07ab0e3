package persistence

import (
	"context"
	"time"
)

// ReminderRepository exposes CRUD and weekday queries for reminders.
//
// AddReminder ignores reminder.ID and returns the identifier assigned by the
// store. UpdateReminder and DeleteReminder do not treat a missing identifier as
// an error: UpdateReminder reports zero affected rows and DeleteReminder does
// nothing. GetReminder returns ErrNotFound for an unknown identifier.
type ReminderRepository interface {
	AddReminder(ctx context.Context, reminder Reminder) (int64, error)
	GetReminder(ctx context.Context, id int64) (Reminder, error)
	ListReminders(ctx context.Context) ([]Reminder, error)
	CountReminders(ctx context.Context) (int, error)
	UpdateReminder(ctx context.Context, reminder Reminder) (int64, error)
	DeleteReminder(ctx context.Context, id int64) error
	ListRemindersOnWeekday(ctx context.Context, day time.Weekday) ([]Reminder, error)
}
