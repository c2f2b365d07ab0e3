package recurrence

import (
	"errors"
	"testing"
	"time"

	"github.com/example/class-reminder/internal/persistence"
)

var jst = time.FixedZone("JST", 9*60*60)

func reminder(id int64, title string, active bool, start, end string, days ...time.Weekday) persistence.Reminder {
	return persistence.Reminder{
		ID:        id,
		Title:     title,
		Weekdays:  persistence.NewWeekdays(days...),
		TimeStart: start,
		TimeEnd:   end,
		Active:    active,
	}
}

func TestEngine_GenerateOccurrences(t *testing.T) {
	t.Parallel()

	// 2024-03-04 is a Monday.
	from := time.Date(2024, time.March, 4, 18, 30, 0, 0, jst)
	reminders := []persistence.Reminder{
		reminder(1, "Algebra", true, "10:00", "11:30", time.Monday, time.Wednesday),
		reminder(2, "Seminar", true, "09:00", "", time.Wednesday),
		reminder(3, "Archived", false, "08:00", "09:00", time.Monday),
		reminder(4, "Reading", true, "after lunch", "", time.Wednesday),
	}

	t.Run("respects weekday selections", func(t *testing.T) {
		t.Parallel()

		occurrences, err := NewEngine(jst).GenerateOccurrences(reminders, from, 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		type key struct {
			day int
			id  int64
		}
		want := []key{{4, 1}, {6, 4}, {6, 2}, {6, 1}}
		if len(occurrences) != len(want) {
			t.Fatalf("expected %d occurrences, got %d: %+v", len(want), len(occurrences), occurrences)
		}
		for i, occ := range occurrences {
			if occ.Day.Day() != want[i].day || occ.ReminderID != want[i].id {
				t.Errorf("occurrence %d: expected day %d reminder %d, got day %d reminder %d",
					i, want[i].day, want[i].id, occ.Day.Day(), occ.ReminderID)
			}
			if occ.Day.Location() != jst || occ.Day.Hour() != 0 {
				t.Errorf("occurrence %d: expected midnight JST, got %v", i, occ.Day)
			}
		}

		first := occurrences[0]
		if !first.Start.Equal(time.Date(2024, time.March, 4, 10, 0, 0, 0, jst)) {
			t.Errorf("unexpected start %v", first.Start)
		}
		if !first.End.Equal(time.Date(2024, time.March, 4, 11, 30, 0, 0, jst)) {
			t.Errorf("unexpected end %v", first.End)
		}
		if !occurrences[1].Start.IsZero() {
			t.Errorf("expected untimed occurrence to have zero start, got %v", occurrences[1].Start)
		}
		if !occurrences[2].End.IsZero() {
			t.Errorf("expected empty end time to stay zero, got %v", occurrences[2].End)
		}
	})

	t.Run("uses the engine location for the first day", func(t *testing.T) {
		t.Parallel()

		// 2024-03-03 20:00 UTC is already Monday morning in JST.
		sundayUTC := time.Date(2024, time.March, 3, 20, 0, 0, 0, time.UTC)
		occurrences, err := NewEngine(jst).GenerateOccurrences(reminders, sundayUTC, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(occurrences) != 1 || occurrences[0].ReminderID != 1 {
			t.Fatalf("expected only the Monday reminder, got %+v", occurrences)
		}
	})

	t.Run("rejects invalid windows", func(t *testing.T) {
		t.Parallel()

		for _, days := range []int{0, -1, MaxWindowDays + 1} {
			if _, err := NewEngine(nil).GenerateOccurrences(reminders, from, days); !errors.Is(err, ErrInvalidWindow) {
				t.Errorf("days=%d: expected ErrInvalidWindow, got %v", days, err)
			}
		}
	})

	t.Run("returns an empty slice when nothing matches", func(t *testing.T) {
		t.Parallel()

		occurrences, err := NewEngine(jst).GenerateOccurrences(nil, from, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if occurrences == nil || len(occurrences) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", occurrences)
		}
	})
}

func TestParseClock(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in           string
		hour, minute int
		ok           bool
	}{
		{in: "09:00", hour: 9, minute: 0, ok: true},
		{in: "9:05", hour: 9, minute: 5, ok: true},
		{in: "0930", hour: 9, minute: 30, ok: true},
		{in: "2:15 pm", hour: 14, minute: 15, ok: true},
		{in: "2:15PM", hour: 14, minute: 15, ok: true},
		{in: "", ok: false},
		{in: "soon", ok: false},
		{in: "25:00", ok: false},
	}

	for _, tc := range cases {
		hour, minute, _, ok := ParseClock(tc.in)
		if ok != tc.ok || (ok && (hour != tc.hour || minute != tc.minute)) {
			t.Errorf("ParseClock(%q) = %d:%d %v, want %d:%d %v", tc.in, hour, minute, ok, tc.hour, tc.minute, tc.ok)
		}
	}
}
