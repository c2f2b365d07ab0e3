package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/example/class-reminder/internal/logging"
)

func TestDefaultLogger(t *testing.T) {
	t.Parallel()

	custom := slog.New(slog.NewTextHandler(io.Discard, nil))
	if got := defaultLogger(custom); got != custom {
		t.Fatalf("expected custom logger to be returned")
	}

	if got := defaultLogger(nil); got != slog.Default() {
		t.Fatalf("expected default logger when none provided")
	}
}

func TestServiceLogger_PrefersContextLogger(t *testing.T) {
	t.Parallel()

	var baseBuf, ctxBuf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&baseBuf, nil))
	fromCtx := slog.New(slog.NewTextHandler(&ctxBuf, nil))

	ctx := logging.ContextWithLogger(context.Background(), fromCtx)
	serviceLogger(ctx, base, "ReminderService", "GetReminder", "reminder_id", 7).Info("hello")

	if baseBuf.Len() != 0 {
		t.Fatalf("expected base logger to stay unused, got %q", baseBuf.String())
	}
	out := ctxBuf.String()
	for _, want := range []string{"service=ReminderService", "operation=GetReminder", "reminder_id=7"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestErrorKind(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want string
	}{
		{err: nil, want: ""},
		{err: ErrNotFound, want: "not_found"},
		{err: fmt.Errorf("%w: bad row", ErrMalformedData), want: "malformed_data"},
		{err: fmt.Errorf("%w: 9", ErrInvalidWeekday), want: "invalid_weekday"},
		{err: errors.New("boom"), want: "unexpected"},
	}

	for _, tc := range cases {
		if got := ErrorKind(tc.err); got != tc.want {
			t.Errorf("ErrorKind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
