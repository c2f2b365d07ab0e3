package recurrence

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/example/class-reminder/internal/persistence"
)

// MaxWindowDays bounds how far ahead occurrences are generated.
const MaxWindowDays = 366

// clockLayouts are the time-of-day spellings recognised in TimeStart and TimeEnd.
var clockLayouts = []string{"15:04", "1504", "3:04PM", "3:04 PM", "15:04:05"}

// Occurrence is one dated instance of a weekly reminder.
type Occurrence struct {
	ReminderID int64
	Title      string
	// Day is midnight of the occurrence date in the engine's location.
	Day time.Time
	// Start and End combine Day with the reminder's times. They are zero when
	// the stored text is not a recognised time of day.
	Start time.Time
	End   time.Time
}

// Engine expands reminders into dated occurrences.
type Engine struct {
	location *time.Location
}

// NewEngine constructs an Engine that places occurrences in loc.
// If loc is nil, time.Local is used.
func NewEngine(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{location: loc}
}

// ErrInvalidWindow indicates the requested number of days is out of range.
var ErrInvalidWindow = errors.New("recurrence: window must cover 1 to 366 days")

// GenerateOccurrences lists the occurrences of reminders over days calendar
// days starting with the day that from falls on.
//
// The engine enforces the following semantics:
//   - Dates are taken in the engine's location, so from may be in any zone.
//   - Only active reminders produce occurrences, one per matching weekday.
//   - Results are ordered by day, then start time (untimed first), then reminder ID.
func (e *Engine) GenerateOccurrences(reminders []persistence.Reminder, from time.Time, days int) ([]Occurrence, error) {
	if days <= 0 || days > MaxWindowDays {
		return nil, ErrInvalidWindow
	}

	loc := e.location
	if loc == nil {
		loc = time.Local
	}

	y, m, d := from.In(loc).Date()
	occurrences := make([]Occurrence, 0)

	for offset := 0; offset < days; offset++ {
		// time.Date normalises the day overflow and keeps midnight across DST changes.
		day := time.Date(y, m, d+offset, 0, 0, 0, 0, loc)
		for _, reminder := range reminders {
			if !reminder.Active || !reminder.Weekdays.Contains(day.Weekday()) {
				continue
			}
			occurrences = append(occurrences, Occurrence{
				ReminderID: reminder.ID,
				Title:      reminder.Title,
				Day:        day,
				Start:      combineDateTime(day, reminder.TimeStart),
				End:        combineDateTime(day, reminder.TimeEnd),
			})
		}
	}

	sort.SliceStable(occurrences, func(i, j int) bool {
		a, b := occurrences[i], occurrences[j]
		if !a.Day.Equal(b.Day) {
			return a.Day.Before(b.Day)
		}
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		return a.ReminderID < b.ReminderID
	})

	return occurrences, nil
}

// ParseClock reads a time of day such as "09:00", "0900" or "9:00 PM".
func ParseClock(text string) (hour, minute, second int, ok bool) {
	text = strings.ToUpper(strings.TrimSpace(text))
	if text == "" {
		return 0, 0, 0, false
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t.Hour(), t.Minute(), t.Second(), true
		}
	}
	return 0, 0, 0, false
}

func combineDateTime(day time.Time, clock string) time.Time {
	hour, minute, second, ok := ParseClock(clock)
	if !ok {
		return time.Time{}
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, hour, minute, second, 0, day.Location())
}
