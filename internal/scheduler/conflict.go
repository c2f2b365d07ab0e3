package scheduler

import (
	"sort"
	"time"

	"github.com/example/class-reminder/internal/persistence"
	"github.com/example/class-reminder/internal/recurrence"
)

// Window is the daily time range a reminder occupies, as an offset from midnight.
type Window struct {
	Start time.Duration
	End   time.Duration
}

// Overlaps reports whether two half-open windows share any instant.
func (w Window) Overlaps(other Window) bool {
	return w.Start < other.End && other.Start < w.End
}

// WindowOf returns the reminder's daily window. ok is false when either time
// is not a recognised time of day or the window is empty.
func WindowOf(reminder persistence.Reminder) (window Window, ok bool) {
	startH, startM, startS, ok := recurrence.ParseClock(reminder.TimeStart)
	if !ok {
		return Window{}, false
	}
	endH, endM, endS, ok := recurrence.ParseClock(reminder.TimeEnd)
	if !ok {
		return Window{}, false
	}
	window = Window{
		Start: clockOffset(startH, startM, startS),
		End:   clockOffset(endH, endM, endS),
	}
	if window.End <= window.Start {
		return Window{}, false
	}
	return window, true
}

func clockOffset(hour, minute, second int) time.Duration {
	return time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(second)*time.Second
}

// Conflict details an overlapping reminder that callers can present to users.
type Conflict struct {
	ReminderID     int64
	WithReminderID int64
	Weekdays       persistence.Weekdays
}

// DetectConflicts identifies the existing reminders whose windows overlap the
// candidate's on at least one shared weekday. Inactive reminders, reminders
// without a recognised window, and the candidate's own ID are ignored.
func DetectConflicts(existing []persistence.Reminder, candidate persistence.Reminder) []Conflict {
	conflicts := make([]Conflict, 0)
	if !candidate.Active {
		return conflicts
	}
	window, ok := WindowOf(candidate)
	if !ok {
		return conflicts
	}

	for _, other := range existing {
		if other.ID == candidate.ID || !other.Active {
			continue
		}
		otherWindow, ok := WindowOf(other)
		if !ok || !window.Overlaps(otherWindow) {
			continue
		}
		shared := sharedWeekdays(candidate.Weekdays, other.Weekdays)
		if len(shared) == 0 {
			continue
		}
		conflicts = append(conflicts, Conflict{
			ReminderID:     candidate.ID,
			WithReminderID: other.ID,
			Weekdays:       shared,
		})
	}
	return conflicts
}

// DetectAllConflicts reports every overlapping pair once, lower ID first.
func DetectAllConflicts(reminders []persistence.Reminder) []Conflict {
	sorted := make([]persistence.Reminder, len(reminders))
	copy(sorted, reminders)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	conflicts := make([]Conflict, 0)
	for i, candidate := range sorted {
		conflicts = append(conflicts, DetectConflicts(sorted[i+1:], candidate)...)
	}
	return conflicts
}

func sharedWeekdays(a, b persistence.Weekdays) persistence.Weekdays {
	var shared persistence.Weekdays
	for _, day := range a {
		if b.Contains(day) {
			shared = append(shared, day)
		}
	}
	return shared
}
