package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m04kA/SMC-SalonConsole/internal/cli"
	"github.com/m04kA/SMC-SalonConsole/internal/config"
	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/internal/integrations/salonapi"
	"github.com/m04kA/SMC-SalonConsole/internal/reconcile"
	"github.com/m04kA/SMC-SalonConsole/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd(setup).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// setup builds the console dependencies from the config file.
// Logs go to stderr so command output stays clean.
func setup(cfgPath string) (*cli.App, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.NewWithWriter(os.Stderr, cfg.Logs.Level)
	if err != nil {
		return nil, err
	}

	role, err := domain.ParseRole(cfg.Client.Role)
	if err != nil {
		return nil, fmt.Errorf("client.role: %w", err)
	}
	policy, ok := reconcile.ParsePolicy(cfg.Client.MutationPolicy)
	if !ok {
		return nil, fmt.Errorf("client.mutation_policy: unknown policy %q", cfg.Client.MutationPolicy)
	}
	loc, err := cfg.Salon.Location()
	if err != nil {
		return nil, fmt.Errorf("salon.default_timezone: %w", err)
	}
	if cfg.Client.SalonID <= 0 {
		return nil, fmt.Errorf("client.salon_id must be set")
	}

	client := salonapi.NewClient(salonapi.Config{
		BaseURL:     cfg.Client.BaseURL,
		Timeout:     time.Duration(cfg.Client.Timeout) * time.Second,
		MaxFailures: cfg.Client.BreakerMaxFailures,
		OpenTimeout: time.Duration(cfg.Client.BreakerOpenTimeout) * time.Second,
	}, log)

	return &cli.App{
		Remote: client,
		Session: salonapi.Session{
			Token:  cfg.Client.Token,
			UserID: cfg.Client.UserID,
			Role:   role,
		},
		SalonID:       cfg.Client.SalonID,
		Location:      loc,
		Policy:        policy,
		CommitTimeout: time.Duration(cfg.Client.CommitTimeout) * time.Second,
		Logger:        log,
	}, nil
}
