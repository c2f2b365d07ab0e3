package recurrence

import (
	"fmt"
	"testing"
	"time"

	"github.com/example/class-reminder/internal/persistence"
)

func BenchmarkEngineGenerateOccurrences(b *testing.B) {
	engine := NewEngine(jst)
	from := time.Date(2024, 5, 6, 9, 0, 0, 0, jst)

	reminders := make([]persistence.Reminder, 0, 50)
	for i := 0; i < 50; i++ {
		reminders = append(reminders, persistence.Reminder{
			ID:        int64(i + 1),
			Title:     fmt.Sprintf("Class %d", i),
			Weekdays:  persistence.Weekdays{time.Weekday(i % 7), time.Weekday((i + 3) % 7)},
			TimeStart: fmt.Sprintf("%02d:00", 8+i%10),
			TimeEnd:   fmt.Sprintf("%02d:50", 8+i%10),
			Active:    true,
		})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		occurrences, err := engine.GenerateOccurrences(reminders, from, 90)
		if err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
		if len(occurrences) == 0 {
			b.Fatal("expected occurrences to be generated")
		}
	}
}
