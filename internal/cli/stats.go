package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/internal/integrations/salonapi"
	"github.com/m04kA/SMC-SalonConsole/internal/reports"
)

func newStatsCmd(app *App) *cobra.Command {
	var (
		days, months, top int
		remote            bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show salon statistics",
		Long: `Summarise appointments: totals, revenue by month, popular services and
stylist performance. By default the summary is computed locally from the
appointments visible to the current user; --remote asks the server instead.

Examples:
  salonctl stats
  salonctl stats --months 12 --top 10
  salonctl stats --remote`,
		Aliases: []string{"dashboard"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if remote {
				d, err := app.Remote.Dashboard(ctx, app.Session, app.SalonID, salonapi.DashboardQuery{Days: days, Months: months, TopN: top})
				if err != nil {
					return fmt.Errorf("load dashboard: %w", err)
				}
				printRemoteDashboard(out, d)
				return nil
			}

			cal, err := app.Remote.GetCalendar(ctx, app.Session, app.SalonID)
			if err != nil {
				return fmt.Errorf("load calendar: %w", err)
			}
			apps, err := app.Remote.ListAppointments(ctx, app.Session, app.SalonID, salonapi.ListOptions{IncludeCancelled: true})
			if err != nil {
				return fmt.Errorf("load appointments: %w", err)
			}

			now := app.now()
			d := reports.Summarize(apps, now, reports.Options{
				Days:     days,
				Months:   months,
				TopN:     top,
				Roster:   rosterOf(apps),
				Location: cal.Settings.Location(now.Location()),
			})
			return printDashboard(out, d)
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "daily buckets")
	cmd.Flags().IntVar(&months, "months", 0, "revenue months")
	cmd.Flags().IntVar(&top, "top", 0, "popular services to show")
	cmd.Flags().BoolVar(&remote, "remote", false, "use the server dashboard")
	return cmd
}

// rosterOf lists the stylists seen in apps ordered by id
func rosterOf(apps []*domain.Appointment) []reports.Stylist {
	seen := make(map[int64]string)
	for _, a := range apps {
		if name, ok := seen[a.StylistID]; !ok || name == "" {
			seen[a.StylistID] = a.StylistName
		}
	}
	roster := make([]reports.Stylist, 0, len(seen))
	for id, name := range seen {
		roster = append(roster, reports.Stylist{ID: id, Name: nameOr(name, id)})
	}
	sort.Slice(roster, func(i, j int) bool { return roster[i].ID < roster[j].ID })
	return roster
}

func printDashboard(w io.Writer, d reports.Dashboard) error {
	fmt.Fprintf(w, "Appointments: %d total, %d scheduled (%d upcoming), %d completed, %d cancelled\n",
		d.TotalAppointments, d.Scheduled, d.Upcoming, d.Completed, d.Cancelled)
	fmt.Fprintf(w, "Revenue: %.2f (paid %.2f, unpaid %.2f)\n\n", d.Revenue, d.PaidRevenue, d.UnpaidRevenue)

	tw := newTable(w)
	fmt.Fprintln(tw, "MONTH\tTOTAL\tCOMPLETED")
	for _, m := range d.Monthly {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\n", m.Label, m.Total, m.Completed)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	tw = newTable(w)
	fmt.Fprintln(tw, "SERVICE\tBOOKINGS")
	for _, s := range d.TopServices {
		fmt.Fprintf(tw, "%s\t%d\n", s.Service, s.Count)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	tw = newTable(w)
	fmt.Fprintln(tw, "STYLIST\tTOTAL\tCOMPLETED\tCANCELLED\tREVENUE\tRATE")
	for _, s := range d.Stylists {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.2f\t%.0f%%\n",
			s.StylistName, s.Total, s.Completed, s.Cancelled, s.Revenue, s.CompletionRate*100)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	tw = newTable(w)
	fmt.Fprintln(tw, "VISITS\tCUSTOMERS")
	for _, b := range d.Retention {
		fmt.Fprintf(tw, "%s\t%d\n", b.Label, b.Customers)
	}
	return tw.Flush()
}

func printRemoteDashboard(w io.Writer, d *salonapi.Dashboard) {
	fmt.Fprintf(w, "Scope: %s (%s)\n", d.Scope, d.Timezone)
	fmt.Fprintf(w, "Appointments: %d total, %d scheduled (%d upcoming), %d completed, %d cancelled\n",
		d.TotalAppointments, d.Scheduled, d.Upcoming, d.Completed, d.Cancelled)
	fmt.Fprintf(w, "Revenue: %.2f (paid %.2f, unpaid %.2f)\n", d.Revenue, d.PaidRevenue, d.UnpaidRevenue)
	for _, s := range d.TopServices {
		fmt.Fprintf(w, "  %s: %d\n", s.Service, s.Count)
	}
	for _, s := range d.Stylists {
		fmt.Fprintf(w, "  %s: %d total, %d completed, %.2f revenue\n", s.StylistName, s.Total, s.Completed, s.Revenue)
	}
}
