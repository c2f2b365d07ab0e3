package testfixtures

import (
	"log/slog"
	"time"

	"github.com/example/class-reminder/internal/application"
)

// ServiceFactory assists tests with constructing application services using
// a deterministic clock and time zone.
type ServiceFactory struct {
	Clock    *Clock
	Location *time.Location
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:    NewClock(time.Time{}),
		Location: time.UTC,
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.Location == nil {
		factory.Location = time.UTC
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithLocation overrides the time zone used to resolve weekdays.
func WithLocation(location *time.Location) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Location = location
	}
}

// ReminderServiceDeps captures dependencies for constructing a reminder service.
type ReminderServiceDeps struct {
	Reminders application.ReminderRepository
	Now       func() time.Time
	Location  *time.Location
	Logger    *slog.Logger
}

// NewReminderService builds a reminder service using the supplied dependencies
// combined with the factory defaults.
func (f *ServiceFactory) NewReminderService(deps ReminderServiceDeps) *application.ReminderService {
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	location := deps.Location
	if location == nil {
		location = f.Location
	}
	return application.NewReminderServiceWithLogger(deps.Reminders, now, location, deps.Logger)
}
