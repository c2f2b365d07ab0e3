package persistence

// Reminder represents a recurring class reminder stored in persistence.
type Reminder struct {
	ID               int64
	Title            string
	Weekdays         Weekdays
	TimeStart        string
	TimeEnd          string
	Color            string
	ApplicationTitle string
	ClassDescription string
	InstructorName   string
	Active           bool
}

// Clone returns a copy of the reminder that shares no memory with the receiver.
func (r Reminder) Clone() Reminder {
	r.Weekdays = r.Weekdays.Clone()
	return r
}
