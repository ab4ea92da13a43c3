package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-SalonConsole/internal/integrations/salonapi"
)

func newAppointmentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "appointments",
		Short:   "Work with salon appointments",
		Aliases: []string{"appts"},
	}

	var (
		stylistID int64
		all       bool
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List appointments visible to the current user",
		Long: `List appointments of the configured salon, most recent slot first.

Examples:
  salonctl appointments list
  salonctl appointments list --stylist 20 --all`,
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			apps, err := app.Remote.ListAppointments(cmd.Context(), app.Session, app.SalonID, salonapi.ListOptions{
				StylistID:        stylistID,
				IncludeCancelled: all,
			})
			if err != nil {
				return fmt.Errorf("list appointments: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(apps) == 0 {
				fmt.Fprintln(out, "No appointments found.")
				return nil
			}

			loc := app.now().Location()
			sort.SliceStable(apps, func(i, j int) bool {
				a, errA := apps[i].StartsAt(loc)
				b, errB := apps[j].StartsAt(loc)
				return errA == nil && (errB != nil || a.After(b))
			})

			fmt.Fprintf(out, "Appointments (%d):\n", len(apps))
			return printAppointments(out, apps)
		},
	}
	list.Flags().Int64Var(&stylistID, "stylist", 0, "only appointments of this stylist")
	list.Flags().BoolVar(&all, "all", false, "include cancelled appointments")

	cmd.AddCommand(list)
	return cmd
}
