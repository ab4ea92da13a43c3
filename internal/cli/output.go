package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printAppointments(w io.Writer, apps []*domain.Appointment) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDATE\tTIME\tSTYLIST\tCUSTOMER\tSERVICE\tAMOUNT\tPAID\tSTATE\tMOVED")
	for _, a := range apps {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%.2f\t%s\t%s\t%s\n",
			a.ID, a.SlotDate, a.SlotTime, nameOr(a.StylistName, a.StylistID), nameOr(a.CustomerName, a.CustomerID),
			a.ServiceDescription, a.Amount, yesNo(a.Payment), a.State(), yesNo(a.HasRescheduled))
	}
	return tw.Flush()
}

func printChange(w io.Writer, verb string, before, after *domain.Appointment) {
	fmt.Fprintf(w, "Appointment %d %s: %s -> %s\n", after.ID, verb, before.State(), after.State())
	if before.SlotDate != after.SlotDate || before.SlotTime != after.SlotTime {
		fmt.Fprintf(w, "  slot: %s %s -> %s %s\n", before.SlotDate, before.SlotTime, after.SlotDate, after.SlotTime)
	}
}

func nameOr(name string, id int64) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("#%d", id)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
