package application

import (
	"errors"
	"fmt"
	"testing"

	"github.com/example/class-reminder/internal/persistence"
)

func TestMapReminderRepoError(t *testing.T) {
	t.Parallel()

	unexpected := errors.New("disk full")

	tests := []struct {
		name     string
		in       error
		want     error
		keepsRaw bool
	}{
		{name: "not found", in: fmt.Errorf("sqlite: get reminder: %w", persistence.ErrNotFound), want: ErrNotFound},
		{name: "malformed weekdays", in: fmt.Errorf("reminder 3: %w", persistence.ErrMalformedWeekdays), want: ErrMalformedData, keepsRaw: true},
		{name: "malformed record", in: persistence.ErrMalformedRecord, want: ErrMalformedData, keepsRaw: true},
		{name: "invalid weekday", in: persistence.ErrInvalidWeekday, want: ErrInvalidWeekday, keepsRaw: true},
		{name: "already mapped", in: ErrNotFound, want: ErrNotFound},
		{name: "unexpected", in: unexpected, want: unexpected},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := mapReminderRepoError(tc.in)
			if !errors.Is(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			if tc.keepsRaw && !errors.Is(got, tc.in) {
				t.Fatalf("expected mapped error to keep %v in its chain", tc.in)
			}
		})
	}

	if mapReminderRepoError(nil) != nil {
		t.Fatalf("expected nil to map to nil")
	}
}
