package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
)

type commandContext struct {
	correlationID uuid.UUID
	startedAt     time.Time
}

type commandContextKey struct{}

// NewRootCmd builds the salonctl command tree. setup runs once before any subcommand.
func NewRootCmd(setup Setup) *cobra.Command {
	var (
		cfgFile string
		app     = &App{}
	)

	root := &cobra.Command{
		Use:   "salonctl",
		Short: "salonctl - salon appointments console",
		Long: `salonctl manages salon appointments against a salon-console backend.

Changes are applied locally first and confirmed by the server;
a rejected change is rolled back before the error is shown.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			built, err := setup(cfgFile)
			if err != nil {
				return err
			}
			*app = *built

			info := commandContext{correlationID: uuid.New(), startedAt: time.Now()}
			cmd.SetContext(context.WithValue(cmd.Context(), commandContextKey{}, info))
			if app.Logger != nil {
				app.Logger.Info("command start: %s correlation_id=%s", cmd.CommandPath(), info.correlationID)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			info, ok := cmd.Context().Value(commandContextKey{}).(commandContext)
			if !ok || app.Logger == nil {
				return
			}
			app.Logger.Info("command end: %s correlation_id=%s duration_ms=%d",
				cmd.CommandPath(), info.correlationID, time.Since(info.startedAt).Milliseconds())
		},
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "salonctl.toml", "config file path")

	root.AddCommand(
		newAppointmentsCmd(app),
		newSlotsCmd(app),
		newCancelCmd(app),
		newCompleteCmd(app),
		newUndoCmd(app),
		newRescheduleCmd(app),
		newStatsCmd(app),
	)
	return root
}

// explain adds a hint for errors the user can act on
func explain(action string, id int64, err error) error {
	switch {
	case errors.Is(err, domain.ErrCommitTimeout):
		return fmt.Errorf("%s appointment %d: server did not confirm in time, change rolled back, retry later: %w", action, id, err)
	case errors.Is(err, domain.ErrRemoteUnavailable):
		return fmt.Errorf("%s appointment %d: server unavailable, change rolled back, retry later: %w", action, id, err)
	case errors.Is(err, domain.ErrConflict):
		return fmt.Errorf("%s appointment %d: another change is in flight: %w", action, id, err)
	default:
		return fmt.Errorf("%s appointment %d: %w", action, id, err)
	}
}
