package main

import (
	"encoding/json"
	"io"
	"time"

	"github.com/example/class-reminder/internal/application"
	"github.com/example/class-reminder/internal/persistence/sqlite/schema"
)

// reminderView is the JSON form of a reminder printed by every command.
type reminderView struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	Weekdays         []string `json:"weekdays"`
	TimeStart        string   `json:"time_start"`
	TimeEnd          string   `json:"time_end"`
	Color            string   `json:"color"`
	ApplicationTitle string   `json:"app_title"`
	ClassDescription string   `json:"class_description"`
	InstructorName   string   `json:"instructor_name"`
	Active           bool     `json:"active"`
}

func toView(reminder application.Reminder) reminderView {
	return reminderView{
		ID:               reminder.ID,
		Title:            reminder.Title,
		Weekdays:         reminder.Weekdays.Names(),
		TimeStart:        reminder.TimeStart,
		TimeEnd:          reminder.TimeEnd,
		Color:            reminder.Color,
		ApplicationTitle: reminder.ApplicationTitle,
		ClassDescription: reminder.ClassDescription,
		InstructorName:   reminder.InstructorName,
		Active:           reminder.Active,
	}
}

func toViews(reminders []application.Reminder) []reminderView {
	views := make([]reminderView, 0, len(reminders))
	for _, reminder := range reminders {
		views = append(views, toView(reminder))
	}
	return views
}

// occurrenceView is the JSON form of one dated reminder instance. Start and
// End are omitted when the stored times are not recognised.
type occurrenceView struct {
	ReminderID int64      `json:"reminder_id"`
	Title      string     `json:"title"`
	Date       string     `json:"date"`
	Weekday    string     `json:"weekday"`
	Start      *time.Time `json:"start,omitempty"`
	End        *time.Time `json:"end,omitempty"`
}

func toOccurrenceViews(occurrences []application.Occurrence) []occurrenceView {
	views := make([]occurrenceView, 0, len(occurrences))
	for _, occ := range occurrences {
		view := occurrenceView{
			ReminderID: occ.ReminderID,
			Title:      occ.Title,
			Date:       occ.Day.Format(dateLayout),
			Weekday:    occ.Day.Weekday().String(),
		}
		if !occ.Start.IsZero() {
			start := occ.Start
			view.Start = &start
		}
		if !occ.End.IsZero() {
			end := occ.End
			view.End = &end
		}
		views = append(views, view)
	}
	return views
}

type conflictView struct {
	ReminderID     int64    `json:"reminder_id"`
	WithReminderID int64    `json:"with_reminder_id"`
	Weekdays       []string `json:"weekdays"`
}

func toConflictViews(conflicts []application.Conflict) []conflictView {
	views := make([]conflictView, 0, len(conflicts))
	for _, c := range conflicts {
		views = append(views, conflictView{
			ReminderID:     c.ReminderID,
			WithReminderID: c.WithReminderID,
			Weekdays:       c.Weekdays.Names(),
		})
	}
	return views
}

type schemaView struct {
	StoredVersion   int    `json:"stored_version"`
	DeclaredVersion int    `json:"declared_version"`
	Current         bool   `json:"current"`
	Description     string `json:"description"`
	Checksum        string `json:"checksum"`
}

func toSchemaView(status schema.Status) schemaView {
	return schemaView{
		StoredVersion:   status.StoredVersion,
		DeclaredVersion: status.DeclaredVersion,
		Current:         status.Current(),
		Description:     status.Description,
		Checksum:        status.Checksum,
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
