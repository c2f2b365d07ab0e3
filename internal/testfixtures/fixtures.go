package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/class-reminder/internal/persistence"
)

var reminderCounter uint64

// referenceTime falls on a Tuesday.
var referenceTime = time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

var fixtureColors = []string{"#E57373", "#64B5F6", "#81C784", "#FFD54F"}

// ReminderFixture represents a deterministic reminder record that can be
// materialised for application or persistence tests.
type ReminderFixture struct {
	ID               int64
	Title            string
	Weekdays         persistence.Weekdays
	TimeStart        string
	TimeEnd          string
	Color            string
	ApplicationTitle string
	ClassDescription string
	InstructorName   string
	Active           bool
}

// ReminderOption configures the generated reminder fixture.
type ReminderOption func(*ReminderFixture)

// NewReminderFixture returns a deterministic reminder fixture with optional
// overrides. The generated reminder is active and scheduled on Monday.
func NewReminderFixture(opts ...ReminderOption) ReminderFixture {
	idx := atomic.AddUint64(&reminderCounter, 1)
	hour := 8 + int(idx%8)
	fixture := ReminderFixture{
		Title:            fmt.Sprintf("Class %03d", idx),
		Weekdays:         persistence.Weekdays{time.Monday},
		TimeStart:        fmt.Sprintf("%02d:00", hour),
		TimeEnd:          fmt.Sprintf("%02d:50", hour),
		Color:            fixtureColors[idx%uint64(len(fixtureColors))],
		ApplicationTitle: fmt.Sprintf("Course %03d", idx),
		ClassDescription: fmt.Sprintf("Lecture %03d", idx),
		InstructorName:   fmt.Sprintf("Instructor %03d", idx),
		Active:           true,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithReminderID sets the identifier, used when updating or deleting.
func WithReminderID(id int64) ReminderOption {
	return func(f *ReminderFixture) {
		f.ID = id
	}
}

// WithReminderTitle overrides the generated title.
func WithReminderTitle(title string) ReminderOption {
	return func(f *ReminderFixture) {
		f.Title = title
	}
}

// WithReminderWeekdays replaces the weekday set.
func WithReminderWeekdays(days ...time.Weekday) ReminderOption {
	return func(f *ReminderFixture) {
		f.Weekdays = persistence.Weekdays(days)
	}
}

// WithReminderTimes overrides the start and end times.
func WithReminderTimes(start, end string) ReminderOption {
	return func(f *ReminderFixture) {
		f.TimeStart = start
		f.TimeEnd = end
	}
}

// WithReminderInstructor overrides the instructor name.
func WithReminderInstructor(name string) ReminderOption {
	return func(f *ReminderFixture) {
		f.InstructorName = name
	}
}

// WithReminderActive sets the active flag.
func WithReminderActive(active bool) ReminderOption {
	return func(f *ReminderFixture) {
		f.Active = active
	}
}

// Reminder returns the fixture as a persistence.Reminder value.
func (f ReminderFixture) Reminder() persistence.Reminder {
	return persistence.Reminder{
		ID:               f.ID,
		Title:            f.Title,
		Weekdays:         f.Weekdays.Clone(),
		TimeStart:        f.TimeStart,
		TimeEnd:          f.TimeEnd,
		Color:            f.Color,
		ApplicationTitle: f.ApplicationTitle,
		ClassDescription: f.ClassDescription,
		InstructorName:   f.InstructorName,
		Active:           f.Active,
	}
}
