package persistence

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// WeekdaySeparator joins weekday names in the stored date column.
const WeekdaySeparator = ", "

// Weekdays is the ordered set of days a reminder recurs on.
type Weekdays []time.Weekday

var weekdaysByName = func() map[string]time.Weekday {
	names := make(map[string]time.Weekday, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		names[day.String()] = day
	}
	return names
}()

// ValidWeekday reports whether day lies within Sunday..Saturday.
func ValidWeekday(day time.Weekday) bool {
	return day >= time.Sunday && day <= time.Saturday
}

// ParseWeekday maps an English weekday name such as "monday" or " Friday " to
// its time.Weekday. Matching ignores case and surrounding whitespace.
func ParseWeekday(name string) (time.Weekday, error) {
	trimmed := strings.TrimSpace(name)
	for candidate, day := range weekdaysByName {
		if strings.EqualFold(candidate, trimmed) {
			return day, nil
		}
	}
	return time.Sunday, fmt.Errorf("%w: %q", ErrInvalidWeekday, name)
}

// NewWeekdays builds a weekday set, keeping the first occurrence of each day.
func NewWeekdays(days ...time.Weekday) Weekdays {
	if len(days) == 0 {
		return nil
	}
	set := make(Weekdays, 0, len(days))
	for _, day := range days {
		if !slices.Contains(set, day) {
			set = append(set, day)
		}
	}
	return set
}

// Contains reports whether day is a member of the set.
func (w Weekdays) Contains(day time.Weekday) bool {
	return slices.Contains(w, day)
}

// Clone returns a copy of the set. The copy of an empty set is nil.
func (w Weekdays) Clone() Weekdays {
	if len(w) == 0 {
		return nil
	}
	return slices.Clone(w)
}

// Names returns the English name of every day in set order.
func (w Weekdays) Names() []string {
	names := make([]string, 0, len(w))
	for _, day := range w {
		names = append(names, day.String())
	}
	return names
}

// EncodeWeekdays joins the day names with WeekdaySeparator. Repeated days are
// written once; a day outside Sunday..Saturday is rejected.
func EncodeWeekdays(days Weekdays) (string, error) {
	for _, day := range days {
		if !ValidWeekday(day) {
			return "", fmt.Errorf("%w: weekday %d out of range", ErrMalformedWeekdays, int(day))
		}
	}
	return strings.Join(NewWeekdays(days...).Names(), WeekdaySeparator), nil
}

// DecodeWeekdays splits a stored date column back into a weekday set. The empty
// string decodes to an empty set. Unknown names, empty segments and repeated
// days are reported as ErrMalformedWeekdays.
func DecodeWeekdays(encoded string) (Weekdays, error) {
	if encoded == "" {
		return nil, nil
	}

	parts := strings.Split(encoded, WeekdaySeparator)
	days := make(Weekdays, 0, len(parts))
	for i, part := range parts {
		day, ok := weekdaysByName[part]
		if !ok {
			return nil, fmt.Errorf("%w: segment %d %q in %q", ErrMalformedWeekdays, i, part, encoded)
		}
		if days.Contains(day) {
			return nil, fmt.Errorf("%w: %s repeated in %q", ErrMalformedWeekdays, part, encoded)
		}
		days = append(days, day)
	}
	return days, nil
}
