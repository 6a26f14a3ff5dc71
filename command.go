package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/shandysiswandi/gopay/internal/app"
	"github.com/shandysiswandi/gopay/internal/payments"
	"github.com/shandysiswandi/gopay/internal/pkg/pkglog"
)

const shutdownTimeout = 10 * time.Second

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "gopay",
		Short: "gopay - account ledger and peer to peer transfers over HTTP",
		// Running without a subcommand serves the API.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(configPath)
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "./config/config.yaml", "Path to the YAML config file")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP API",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return serve(configPath)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create the postgres tables used by the postgres storage driver",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return migrate(cmd.Context(), configPath)
			},
		},
	)

	return root
}

func serve(configPath string) error {
	application := app.New(configPath) // Initialize the application
	wait := application.Start()        // Start the application and wait for the termination signal
	<-wait                             // Wait for the application to receive a termination signal

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	application.Stop(ctx) // Stop the application gracefully
	return nil
}

func migrate(ctx context.Context, configPath string) error {
	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		return err
	}
	defer cfg.Close()

	pkglog.InitLogging(cfg.GetString("log.level"))

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	return payments.Migrate(ctx, cfg)
}
