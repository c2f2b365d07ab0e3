package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/class-reminder/internal/persistence"
	"github.com/example/class-reminder/internal/recurrence"
	"github.com/example/class-reminder/internal/scheduler"
)

// Reminder is the record exchanged with callers of ReminderService.
type Reminder = persistence.Reminder

// Occurrence is one dated instance of a reminder.
type Occurrence = recurrence.Occurrence

// Conflict is a pair of active reminders whose time windows overlap on a shared weekday.
type Conflict = scheduler.Conflict

// ReminderRepository captures the persistence operations needed by the service.
type ReminderRepository interface {
	AddReminder(ctx context.Context, reminder Reminder) (int64, error)
	GetReminder(ctx context.Context, id int64) (Reminder, error)
	ListReminders(ctx context.Context) ([]Reminder, error)
	CountReminders(ctx context.Context) (int, error)
	UpdateReminder(ctx context.Context, reminder Reminder) (int64, error)
	DeleteReminder(ctx context.Context, id int64) error
	ListRemindersOnWeekday(ctx context.Context, day time.Weekday) ([]Reminder, error)
}

// ReminderService exposes the reminder store to the rest of the application,
// translating storage errors and resolving dates to weekdays.
type ReminderService struct {
	reminders ReminderRepository
	now       func() time.Time
	location  *time.Location
	engine    *recurrence.Engine
	logger    *slog.Logger
}

// NewReminderService constructs a reminder service with the provided dependencies.
func NewReminderService(reminders ReminderRepository, now func() time.Time, location *time.Location) *ReminderService {
	return NewReminderServiceWithLogger(reminders, now, location, nil)
}

// NewReminderServiceWithLogger constructs a reminder service with a specified logger.
// A nil location resolves weekdays in time.Local.
func NewReminderServiceWithLogger(reminders ReminderRepository, now func() time.Time, location *time.Location, logger *slog.Logger) *ReminderService {
	if now == nil {
		now = time.Now
	}
	if location == nil {
		location = time.Local
	}
	return &ReminderService{
		reminders: reminders,
		now:       now,
		location:  location,
		engine:    recurrence.NewEngine(location),
		logger:    defaultLogger(logger),
	}
}

func (s *ReminderService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ReminderService", operation, attrs...)
}

func (s *ReminderService) ready() error {
	if s == nil {
		return fmt.Errorf("ReminderService is nil")
	}
	if s.reminders == nil {
		return fmt.Errorf("reminder repository not configured")
	}
	return nil
}

// AddReminder stores a new reminder and returns its assigned identifier.
// reminder.ID is ignored.
func (s *ReminderService) AddReminder(ctx context.Context, reminder Reminder) (id int64, err error) {
	if err = s.ready(); err != nil {
		return
	}

	logger := s.loggerWith(ctx, "AddReminder", "title", reminder.Title)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to add reminder", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("reminder_id", id).InfoContext(ctx, "reminder added")
	}()

	id, err = s.reminders.AddReminder(ctx, reminder)
	if err != nil {
		err = mapReminderRepoError(err)
		return
	}
	return
}

// GetReminder returns the reminder with the given identifier or ErrNotFound.
func (s *ReminderService) GetReminder(ctx context.Context, id int64) (reminder Reminder, err error) {
	if err = s.ready(); err != nil {
		return
	}

	logger := s.loggerWith(ctx, "GetReminder", "reminder_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to get reminder", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.DebugContext(ctx, "reminder loaded")
	}()

	reminder, err = s.reminders.GetReminder(ctx, id)
	if err != nil {
		err = mapReminderRepoError(err)
		return
	}
	return
}

// GetAllReminders returns every stored reminder in storage order.
func (s *ReminderService) GetAllReminders(ctx context.Context) (reminders []Reminder, err error) {
	if err = s.ready(); err != nil {
		return
	}

	logger := s.loggerWith(ctx, "GetAllReminders")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list reminders", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(reminders)).DebugContext(ctx, "reminders listed")
	}()

	reminders, err = s.reminders.ListReminders(ctx)
	if err != nil {
		err = mapReminderRepoError(err)
		return nil, err
	}
	return
}

// GetRemindersCount returns the number of stored reminders.
func (s *ReminderService) GetRemindersCount(ctx context.Context) (count int, err error) {
	if err = s.ready(); err != nil {
		return
	}

	logger := s.loggerWith(ctx, "GetRemindersCount")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to count reminders", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("count", count).DebugContext(ctx, "reminders counted")
	}()

	count, err = s.reminders.CountReminders(ctx)
	if err != nil {
		err = mapReminderRepoError(err)
		return
	}
	return
}

// UpdateReminder overwrites the stored reminder with the same identifier and
// returns the number of rows changed: 1 when it existed, 0 otherwise.
func (s *ReminderService) UpdateReminder(ctx context.Context, reminder Reminder) (affected int64, err error) {
	if err = s.ready(); err != nil {
		return
	}

	logger := s.loggerWith(ctx, "UpdateReminder", "reminder_id", reminder.ID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update reminder", "error", err, "error_kind", ErrorKind(err))
			return
		}
		if affected == 0 {
			logger.WarnContext(ctx, "reminder update matched no rows")
			return
		}
		logger.InfoContext(ctx, "reminder updated")
	}()

	affected, err = s.reminders.UpdateReminder(ctx, reminder)
	if err != nil {
		err = mapReminderRepoError(err)
		return
	}
	return
}

// DeleteReminder removes the stored reminder whose identifier matches
// reminder.ID. Deleting a reminder that does not exist succeeds.
func (s *ReminderService) DeleteReminder(ctx context.Context, reminder Reminder) error {
	if err := s.ready(); err != nil {
		return err
	}

	logger := s.loggerWith(ctx, "DeleteReminder", "reminder_id", reminder.ID)

	if err := s.reminders.DeleteReminder(ctx, reminder.ID); err != nil {
		err = mapReminderRepoError(err)
		logger.ErrorContext(ctx, "failed to delete reminder", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	logger.InfoContext(ctx, "reminder deleted")
	return nil
}

// GetAllRemindersOnDay returns the reminders scheduled on day.
func (s *ReminderService) GetAllRemindersOnDay(ctx context.Context, day time.Weekday) (reminders []Reminder, err error) {
	if err = s.ready(); err != nil {
		return
	}

	logger := s.loggerWith(ctx, "GetAllRemindersOnDay", "weekday", day.String())
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list reminders on weekday", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(reminders)).DebugContext(ctx, "reminders on weekday listed")
	}()

	if !persistence.ValidWeekday(day) {
		err = fmt.Errorf("%w: %d", ErrInvalidWeekday, int(day))
		return
	}

	reminders, err = s.reminders.ListRemindersOnWeekday(ctx, day)
	if err != nil {
		err = mapReminderRepoError(err)
		return nil, err
	}
	return
}

// GetAllRemindersOnWeekday returns the reminders scheduled on the weekday that
// date falls on in the service's location.
func (s *ReminderService) GetAllRemindersOnWeekday(ctx context.Context, date time.Time) ([]Reminder, error) {
	return s.GetAllRemindersOnDay(ctx, s.WeekdayOf(date))
}

// GetTodaysReminders returns the reminders scheduled for the current day.
func (s *ReminderService) GetTodaysReminders(ctx context.Context) ([]Reminder, error) {
	if s == nil {
		return nil, fmt.Errorf("ReminderService is nil")
	}
	return s.GetAllRemindersOnWeekday(ctx, s.now())
}

// GetUpcomingOccurrences expands the active reminders into dated occurrences
// for the given number of days starting today.
func (s *ReminderService) GetUpcomingOccurrences(ctx context.Context, days int) (occurrences []Occurrence, err error) {
	if err = s.ready(); err != nil {
		return
	}

	logger := s.loggerWith(ctx, "GetUpcomingOccurrences", "days", days)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list upcoming occurrences", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(occurrences)).DebugContext(ctx, "upcoming occurrences listed")
	}()

	if days < 1 || days > recurrence.MaxWindowDays {
		err = fmt.Errorf("%w: %w", ErrInvalidWindow, recurrence.ErrInvalidWindow)
		return
	}

	var reminders []Reminder
	reminders, err = s.reminders.ListReminders(ctx)
	if err != nil {
		err = mapReminderRepoError(err)
		return
	}

	occurrences, err = s.engine.GenerateOccurrences(reminders, s.now(), days)
	if errors.Is(err, recurrence.ErrInvalidWindow) {
		err = fmt.Errorf("%w: %w", ErrInvalidWindow, err)
	}
	if err != nil {
		return nil, err
	}
	return
}

// GetConflicts reports every pair of active reminders that overlap. Reminders
// whose times are not recognised are never reported.
func (s *ReminderService) GetConflicts(ctx context.Context) (conflicts []Conflict, err error) {
	if err = s.ready(); err != nil {
		return
	}

	logger := s.loggerWith(ctx, "GetConflicts")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to detect conflicts", "error", err, "error_kind", ErrorKind(err))
			return
		}
		if len(conflicts) > 0 {
			logger.With("conflict_count", len(conflicts)).WarnContext(ctx, "overlapping reminders found")
		}
	}()

	var reminders []Reminder
	reminders, err = s.reminders.ListReminders(ctx)
	if err != nil {
		err = mapReminderRepoError(err)
		return
	}

	conflicts = scheduler.DetectAllConflicts(reminders)
	return
}

// WeekdayOf returns the weekday date falls on in the service's location.
func (s *ReminderService) WeekdayOf(date time.Time) time.Weekday {
	if s == nil || s.location == nil {
		return date.Weekday()
	}
	return date.In(s.location).Weekday()
}
