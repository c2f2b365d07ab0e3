package sqlite

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/class-reminder/internal/persistence"
)

// TableName is the table holding reminders.
const TableName = "ReminderTable"

// Legacy rows may hold NULLs or integers in text columns; COALESCE keeps the
// scan targets plain strings.
const reminderColumns = `
	id,
	COALESCE(title, '') AS title,
	COALESCE(date, '') AS date,
	COALESCE(time_start, '') AS time_start,
	COALESCE(time_end, '') AS time_end,
	COALESCE(color, '') AS color,
	COALESCE(app_title, '') AS app_title,
	COALESCE(class_description, '') AS class_description,
	COALESCE(instructor_name, '') AS instructor_name,
	COALESCE(active, 0) AS active
`

var (
	insertReminderQuery = `
		INSERT INTO ` + TableName + ` (title, date, time_start, time_end, color, app_title, class_description, instructor_name, active)
		VALUES (:title, :date, :time_start, :time_end, :color, :app_title, :class_description, :instructor_name, :active)
	`
	updateReminderQuery = `
		UPDATE ` + TableName + `
		SET title = :title, date = :date, time_start = :time_start, time_end = :time_end, color = :color,
			app_title = :app_title, class_description = :class_description, instructor_name = :instructor_name, active = :active
		WHERE id = :id
	`
	getReminderQuery    = `SELECT ` + reminderColumns + ` FROM ` + TableName + ` WHERE id = ?`
	listRemindersQuery  = `SELECT ` + reminderColumns + ` FROM ` + TableName + ` ORDER BY id ASC`
	listOnWeekdayQuery  = `SELECT ` + reminderColumns + ` FROM ` + TableName + ` WHERE date LIKE ? ORDER BY id ASC`
	countRemindersQuery = `SELECT COUNT(*) FROM ` + TableName
	deleteReminderQuery = `DELETE FROM ` + TableName + ` WHERE id = ?`
)

// reminderRow mirrors one row of the reminder table.
type reminderRow struct {
	ID               int64      `db:"id"`
	Title            string     `db:"title"`
	Date             string     `db:"date"`
	TimeStart        string     `db:"time_start"`
	TimeEnd          string     `db:"time_end"`
	Color            string     `db:"color"`
	ApplicationTitle string     `db:"app_title"`
	ClassDescription string     `db:"class_description"`
	InstructorName   string     `db:"instructor_name"`
	Active           activeFlag `db:"active"`
}

// activeFlag stores booleans as 0/1 and reads the "true"/"false" text written
// by older versions of the application.
type activeFlag bool

// Value implements driver.Valuer.
func (a activeFlag) Value() (driver.Value, error) {
	return bool(a), nil
}

// Scan implements sql.Scanner.
func (a *activeFlag) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = false
	case bool:
		*a = activeFlag(v)
	case int64:
		*a = v != 0
	case float64:
		*a = v != 0
	case string:
		return a.parse(v)
	case []byte:
		return a.parse(string(v))
	default:
		return fmt.Errorf("%w: active has unsupported type %T", persistence.ErrMalformedRecord, src)
	}
	return nil
}

func (a *activeFlag) parse(text string) error {
	parsed, err := strconv.ParseBool(strings.TrimSpace(text))
	if err != nil {
		return fmt.Errorf("%w: active %q is not a boolean", persistence.ErrMalformedRecord, text)
	}
	*a = activeFlag(parsed)
	return nil
}

func toRow(reminder persistence.Reminder) (reminderRow, error) {
	date, err := persistence.EncodeWeekdays(reminder.Weekdays)
	if err != nil {
		return reminderRow{}, err
	}
	return reminderRow{
		ID:               reminder.ID,
		Title:            reminder.Title,
		Date:             date,
		TimeStart:        reminder.TimeStart,
		TimeEnd:          reminder.TimeEnd,
		Color:            reminder.Color,
		ApplicationTitle: reminder.ApplicationTitle,
		ClassDescription: reminder.ClassDescription,
		InstructorName:   reminder.InstructorName,
		Active:           activeFlag(reminder.Active),
	}, nil
}

func (row reminderRow) toReminder() (persistence.Reminder, error) {
	weekdays, err := persistence.DecodeWeekdays(row.Date)
	if err != nil {
		return persistence.Reminder{}, fmt.Errorf("reminder %d: %w", row.ID, err)
	}
	return persistence.Reminder{
		ID:               row.ID,
		Title:            row.Title,
		Weekdays:         weekdays,
		TimeStart:        row.TimeStart,
		TimeEnd:          row.TimeEnd,
		Color:            row.Color,
		ApplicationTitle: row.ApplicationTitle,
		ClassDescription: row.ClassDescription,
		InstructorName:   row.InstructorName,
		Active:           bool(row.Active),
	}, nil
}

// ReminderRepository implements persistence.ReminderRepository using SQLite.
// Every method issues exactly one statement outside any transaction.
type ReminderRepository struct {
	db *sqlx.DB
}

// NewReminderRepository creates a new SQLite reminder repository
func NewReminderRepository(pool *ConnectionPool) *ReminderRepository {
	return &ReminderRepository{db: pool.DB()}
}

// AddReminder inserts a new row and returns the identifier SQLite assigned.
func (r *ReminderRepository) AddReminder(ctx context.Context, reminder persistence.Reminder) (int64, error) {
	row, err := toRow(reminder)
	if err != nil {
		return 0, err
	}

	result, err := r.db.NamedExecContext(ctx, insertReminderQuery, row)
	if err != nil {
		return 0, mapError("insert reminder", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted id: %w", err)
	}
	return id, nil
}

// GetReminder retrieves a reminder by ID, returning persistence.ErrNotFound
// when no row matches.
func (r *ReminderRepository) GetReminder(ctx context.Context, id int64) (persistence.Reminder, error) {
	var row reminderRow
	if err := r.db.GetContext(ctx, &row, getReminderQuery, id); err != nil {
		return persistence.Reminder{}, mapError("get reminder", err)
	}
	return row.toReminder()
}

// ListReminders returns all reminders in table order
func (r *ReminderRepository) ListReminders(ctx context.Context) ([]persistence.Reminder, error) {
	var rows []reminderRow
	if err := r.db.SelectContext(ctx, &rows, listRemindersQuery); err != nil {
		return nil, mapError("list reminders", err)
	}
	return decodeRows(rows, nil)
}

// CountReminders returns the number of stored reminders
func (r *ReminderRepository) CountReminders(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, countRemindersQuery); err != nil {
		return 0, mapError("count reminders", err)
	}
	return count, nil
}

// UpdateReminder replaces every column of the row keyed by reminder.ID and
// returns the number of rows affected.
func (r *ReminderRepository) UpdateReminder(ctx context.Context, reminder persistence.Reminder) (int64, error) {
	row, err := toRow(reminder)
	if err != nil {
		return 0, err
	}

	result, err := r.db.NamedExecContext(ctx, updateReminderQuery, row)
	if err != nil {
		return 0, mapError("update reminder", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected, nil
}

// DeleteReminder removes the row with the given ID. A missing row is not an error.
func (r *ReminderRepository) DeleteReminder(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, deleteReminderQuery, id); err != nil {
		return mapError("delete reminder", err)
	}
	return nil
}

// ListRemindersOnWeekday returns the reminders whose weekday set contains day.
// The LIKE clause only narrows the scan; membership is decided on the decoded set.
func (r *ReminderRepository) ListRemindersOnWeekday(ctx context.Context, day time.Weekday) ([]persistence.Reminder, error) {
	if !persistence.ValidWeekday(day) {
		return nil, fmt.Errorf("%w: %d", persistence.ErrInvalidWeekday, int(day))
	}

	var rows []reminderRow
	if err := r.db.SelectContext(ctx, &rows, listOnWeekdayQuery, "%"+day.String()+"%"); err != nil {
		return nil, mapError("list reminders on weekday", err)
	}
	return decodeRows(rows, func(reminder persistence.Reminder) bool {
		return reminder.Weekdays.Contains(day)
	})
}

func decodeRows(rows []reminderRow, keep func(persistence.Reminder) bool) ([]persistence.Reminder, error) {
	reminders := make([]persistence.Reminder, 0, len(rows))
	for _, row := range rows {
		reminder, err := row.toReminder()
		if err != nil {
			return nil, err
		}
		if keep != nil && !keep(reminder) {
			continue
		}
		reminders = append(reminders, reminder)
	}
	return reminders, nil
}
