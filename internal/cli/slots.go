package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-SalonConsole/internal/calendar"
	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/internal/integrations/salonapi"
	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

func newSlotsCmd(app *App) *cobra.Command {
	var (
		stylistID int64
		dateArg   string
	)

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Preview a stylist's slots and compare them with the server",
		Long: `Compute a stylist's slots for a date from the salon calendar and compare
them with the server's answer. Rows that disagree are marked with "!".

Examples:
  salonctl slots --stylist 20 --date 22_10_2026`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			date, err := types.ParseDateKey(dateArg)
			if err != nil {
				return fmt.Errorf("invalid --date: %w", err)
			}

			cal, err := app.Remote.GetCalendar(ctx, app.Session, app.SalonID)
			if err != nil {
				return fmt.Errorf("load calendar: %w", err)
			}
			apps, err := app.Remote.ListAppointments(ctx, app.Session, app.SalonID, salonapi.ListOptions{StylistID: stylistID})
			if err != nil {
				return fmt.Errorf("load appointments: %w", err)
			}
			remote, err := app.Remote.AvailableSlots(ctx, app.Session, app.SalonID, stylistID, date)
			if err != nil {
				return fmt.Errorf("load server slots: %w", err)
			}

			now := app.now()
			status := calendar.DayStatus(date, cal.Settings, cal.BlockedDates, cal.Holidays, cal.SpecialDays, now)
			local := calendar.ComputeDaySlots(date, cal.Settings, cal.BlockedDates, cal.Holidays, cal.SpecialDays, apps, now)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Stylist %d on %s (%s)\n", stylistID, status.Date, cal.Settings.Location(now.Location()))
			if !status.Open || !remote.Open {
				fmt.Fprintf(out, "  local:  %s\n", dayVerdict(status.Open, string(status.Reason), status.Note))
				fmt.Fprintf(out, "  server: %s\n", dayVerdict(remote.Open, remote.ClosedReason, remote.Note))
				return nil
			}

			rows, mismatches := compareSlots(local, remote.Slots)
			tw := newTable(out)
			fmt.Fprintln(tw, "\tTIME\tLOCAL\tSERVER")
			for _, row := range rows {
				mark := ""
				if row.local != row.server {
					mark = "!"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", mark, row.time, row.local, row.server)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if mismatches > 0 {
				fmt.Fprintf(out, "%d slot(s) differ from the server\n", mismatches)
			} else {
				fmt.Fprintln(out, "Local preview matches the server")
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&stylistID, "stylist", 0, "stylist ID")
	cmd.Flags().StringVar(&dateArg, "date", "", "date, D_M_YYYY")
	_ = cmd.MarkFlagRequired("stylist")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

type slotRow struct {
	time   string
	local  string
	server string
}

// compareSlots merges both slot lists by start time, keeping the local order first
func compareSlots(local []domain.Slot, remote []salonapi.Slot) ([]slotRow, int) {
	rows := make([]slotRow, 0, len(local))
	index := make(map[string]int, len(local))

	for _, s := range local {
		index[s.Time.String()] = len(rows)
		rows = append(rows, slotRow{time: s.Time.String(), local: slotVerdict(s.Available, string(s.Reason)), server: "-"})
	}
	for _, s := range remote {
		verdict := slotVerdict(s.Available, s.Reason)
		if i, ok := index[s.Time]; ok {
			rows[i].server = verdict
			continue
		}
		rows = append(rows, slotRow{time: s.Time, local: "-", server: verdict})
	}

	mismatches := 0
	for _, row := range rows {
		if row.local != row.server {
			mismatches++
		}
	}
	return rows, mismatches
}

func slotVerdict(available bool, reason string) string {
	if available {
		return "free"
	}
	if reason == "" {
		return "taken"
	}
	return reason
}

func dayVerdict(open bool, reason, note string) string {
	if open {
		return "open"
	}
	if note != "" {
		return fmt.Sprintf("closed (%s: %s)", reason, note)
	}
	return fmt.Sprintf("closed (%s)", reason)
}
