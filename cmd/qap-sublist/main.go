// Command qap-sublist writes a YAML manifest of the anatomical or functional
// scans found under a site folder:
//
//	qap-sublist <site_folder> <outfile_path> <scan_type>
//
// scan_type is "anat" or "func". Any other value writes an empty manifest.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"qap/internal/config"
	"qap/internal/inventory"
	"qap/internal/logging"
	"qap/internal/services"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newCommand().ExecuteContext(ctx); err != nil {
		if !services.IsSilent(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		cancel()
		os.Exit(services.ExitCode(err))
	}
}

func newCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "qap-sublist <site_folder> <outfile_path> <scan_type>",
		Short:         "Write a YAML manifest of anat or func scans under a site folder",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := services.WithRunID(cmd.Context(), uuid.NewString())
			ctx = services.WithCommand(ctx, "qap-sublist")

			logger := newLogger()
			manifest, _, err := inventory.GenerateSublist(ctx, args[0], args[1], inventory.ScanType(args[2]), logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d scans to %s\n", manifest.Len(), args[1])
			return nil
		},
	}
}

// newLogger builds the logger from the user's configuration. Log lines are
// mirrored to qap.log only when a config file exists. A broken configuration
// only affects logging, so it falls back to console output on stderr.
func newLogger() *slog.Logger {
	cfg, _, exists, err := config.Load("")
	if err == nil {
		build := logging.NewStderrFromConfig
		if exists {
			build = logging.NewFromConfig
		}
		var logger *slog.Logger
		if logger, err = build(cfg); err == nil {
			return logger
		}
	}

	logger, lerr := logging.New(logging.Options{Format: "console", Level: "info"})
	if lerr != nil {
		return logging.NewNop()
	}
	logging.WarnWithContext(logger, "configuration ignored", "config_load_failed",
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "run qap config validate"),
		logging.String(logging.FieldImpact, "default logging settings in use"),
	)
	return logger
}
