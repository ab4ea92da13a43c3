package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-SalonConsole/internal/calendar"
	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/internal/lifecycle"
	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid appointment ID %q", arg)
	}
	return id, nil
}

func newCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel [appointment-id]",
		Short: "Cancel an appointment",
		Long: `Cancel a scheduled appointment.

Customers cannot cancel closer to the slot than the salon's cancellation lead time.

Examples:
  salonctl cancel 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			plan := func(current *domain.Appointment, cal *domain.SalonCalendar, _ []*domain.Appointment, now time.Time) (*domain.Appointment, error) {
				return lifecycle.Cancel(current, app.actor(), cal.Settings, now)
			}
			commit := func(ctx context.Context) (*domain.Appointment, error) {
				return app.Remote.Cancel(ctx, app.Session, id)
			}

			before, after, err := app.mutate(cmd.Context(), id, plan, commit)
			if err != nil {
				return explain("cancel", id, err)
			}
			printChange(cmd.OutOrStdout(), "cancelled", before, after)
			return nil
		},
	}
}

func newCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "complete [appointment-id]",
		Short:   "Mark an appointment as completed",
		Aliases: []string{"done"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			plan := func(current *domain.Appointment, _ *domain.SalonCalendar, _ []*domain.Appointment, _ time.Time) (*domain.Appointment, error) {
				return lifecycle.Complete(current)
			}
			commit := func(ctx context.Context) (*domain.Appointment, error) {
				return app.Remote.Complete(ctx, app.Session, id)
			}

			before, after, err := app.mutate(cmd.Context(), id, plan, commit)
			if err != nil {
				return explain("complete", id, err)
			}
			printChange(cmd.OutOrStdout(), "completed", before, after)
			return nil
		},
	}
}

func newUndoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "undo [appointment-id]",
		Short:   "Move a completed appointment back to scheduled",
		Aliases: []string{"incomplete"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			plan := func(current *domain.Appointment, _ *domain.SalonCalendar, _ []*domain.Appointment, _ time.Time) (*domain.Appointment, error) {
				return lifecycle.UndoComplete(current, app.actor())
			}
			commit := func(ctx context.Context) (*domain.Appointment, error) {
				return app.Remote.UndoComplete(ctx, app.Session, id)
			}

			before, after, err := app.mutate(cmd.Context(), id, plan, commit)
			if err != nil {
				return explain("undo completion of", id, err)
			}
			printChange(cmd.OutOrStdout(), "reopened", before, after)
			return nil
		},
	}
}

func newRescheduleCmd(app *App) *cobra.Command {
	var dateArg, timeArg string

	cmd := &cobra.Command{
		Use:   "reschedule [appointment-id]",
		Short: "Move an appointment to another slot (once)",
		Long: `Move an appointment to another slot of the same stylist.

An appointment can be rescheduled only once and not later than the salon's
reschedule lead time before its slot. The target slot is checked against the
salon calendar before anything is sent.

Examples:
  salonctl reschedule 42 --date 23_10_2026 --time "2:30 PM"
  salonctl reschedule 42 --date 23_10_2026 --time 14:30`,
		Aliases: []string{"move"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			date, err := types.ParseDateKey(dateArg)
			if err != nil {
				return fmt.Errorf("invalid --date: %w", err)
			}
			clock, err := parseClock(timeArg)
			if err != nil {
				return fmt.Errorf("invalid --time: %w", err)
			}

			plan := func(current *domain.Appointment, cal *domain.SalonCalendar, all []*domain.Appointment, now time.Time) (*domain.Appointment, error) {
				next, err := lifecycle.Reschedule(current, cal.Settings, date, clock, now)
				if err != nil {
					return nil, err
				}
				if current.SlotDate.Equal(date) && current.SlotTime == clock {
					return nil, fmt.Errorf("%w: appointment is already at %s %s", domain.ErrInvalidSlot, date, clock)
				}

				others := make([]*domain.Appointment, 0, len(all))
				for _, other := range all {
					if other.ID != current.ID && other.StylistID == current.StylistID {
						others = append(others, other)
					}
				}
				if !calendar.IsSlotBookable(cal, date, clock, others, now) {
					return nil, fmt.Errorf("%w: %s %s is not available", domain.ErrInvalidSlot, date, clock)
				}
				return next, nil
			}
			commit := func(ctx context.Context) (*domain.Appointment, error) {
				return app.Remote.Reschedule(ctx, app.Session, id, date, clock)
			}

			before, after, err := app.mutate(cmd.Context(), id, plan, commit)
			if err != nil {
				return explain("reschedule", id, err)
			}
			printChange(cmd.OutOrStdout(), "rescheduled", before, after)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateArg, "date", "", "target date, D_M_YYYY")
	cmd.Flags().StringVar(&timeArg, "time", "", `target time, "2:30 PM" or 14:30`)
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}

// parseClock accepts 12-hour "2:30 PM" and 24-hour "14:30"
func parseClock(s string) (types.ClockTime, error) {
	if clock, err := types.ParseClockTime(s); err == nil {
		return clock, nil
	}
	ts, err := types.NewTimeStringFromString(s)
	if err != nil {
		return "", err
	}
	return ts.Clock()
}
