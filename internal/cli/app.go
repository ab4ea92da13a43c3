package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/internal/integrations/salonapi"
	"github.com/m04kA/SMC-SalonConsole/internal/reconcile"
	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

// Remote is the part of the salon-console API the console uses
type Remote interface {
	GetCalendar(ctx context.Context, s salonapi.Session, salonID int64) (*domain.SalonCalendar, error)
	ListAppointments(ctx context.Context, s salonapi.Session, salonID int64, opts salonapi.ListOptions) ([]*domain.Appointment, error)
	AvailableSlots(ctx context.Context, s salonapi.Session, salonID, stylistID int64, date types.DateKey) (*salonapi.Slots, error)
	Cancel(ctx context.Context, s salonapi.Session, appointmentID int64) (*domain.Appointment, error)
	Complete(ctx context.Context, s salonapi.Session, appointmentID int64) (*domain.Appointment, error)
	UndoComplete(ctx context.Context, s salonapi.Session, appointmentID int64) (*domain.Appointment, error)
	Reschedule(ctx context.Context, s salonapi.Session, appointmentID int64, date types.DateKey, clock types.ClockTime) (*domain.Appointment, error)
	Dashboard(ctx context.Context, s salonapi.Session, salonID int64, q salonapi.DashboardQuery) (*salonapi.Dashboard, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// App holds the CLI dependencies
type App struct {
	Remote        Remote
	Session       salonapi.Session
	SalonID       int64
	Location      *time.Location // used when the salon has no timezone
	Policy        reconcile.Policy
	CommitTimeout time.Duration
	Logger        Logger
	Now           func() time.Time
}

// Setup builds the App once flags are parsed
type Setup func(cfgPath string) (*App, error)

func (a *App) actor() domain.Actor {
	return domain.Actor{UserID: a.Session.UserID, Role: a.Session.Role}
}

func (a *App) now() time.Time {
	now := time.Now()
	if a.Now != nil {
		now = a.Now()
	}
	if a.Location != nil {
		now = now.In(a.Location)
	}
	return now
}

// loadStore fetches the salon's appointments, cancelled included, into a reconcile store
func (a *App) loadStore(ctx context.Context) (*reconcile.Store, error) {
	apps, err := a.Remote.ListAppointments(ctx, a.Session, a.SalonID, salonapi.ListOptions{IncludeCancelled: true})
	if err != nil {
		return nil, fmt.Errorf("load appointments: %w", err)
	}

	opts := []reconcile.Option{reconcile.WithPolicy(a.Policy)}
	if a.CommitTimeout > 0 {
		opts = append(opts, reconcile.WithCommitTimeout(a.CommitTimeout))
	}
	if a.Logger != nil {
		opts = append(opts, reconcile.WithLogger(a.Logger))
	}
	return reconcile.NewStore(apps, opts...), nil
}

// planFunc derives the next value of an appointment from the local rules
type planFunc func(current *domain.Appointment, cal *domain.SalonCalendar, others []*domain.Appointment, now time.Time) (*domain.Appointment, error)

// mutate checks the transition locally, applies it optimistically and commits it remotely.
// A rejected commit is rolled back before the error is returned.
func (a *App) mutate(ctx context.Context, id int64, plan planFunc, commit reconcile.CommitFunc) (before, after *domain.Appointment, err error) {
	cal, err := a.Remote.GetCalendar(ctx, a.Session, a.SalonID)
	if err != nil {
		return nil, nil, fmt.Errorf("load calendar: %w", err)
	}

	store, err := a.loadStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer store.Dispose()

	current, ok := store.Get(id)
	if !ok {
		return nil, nil, fmt.Errorf("%w: id=%d", domain.ErrAppointmentNotFound, id)
	}

	next, err := plan(current, cal, store.Snapshot(), a.now())
	if err != nil {
		return current, nil, err
	}

	confirmed, err := store.Mutate(ctx, id, domain.Diff(current, next), commit)
	if err != nil {
		return current, nil, err
	}
	return current, confirmed, nil
}
