package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"qap/internal/preflight"
	"qap/internal/services"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check directories and object storage readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureWorkspace()
			if err != nil {
				return err
			}

			var checker preflight.BucketChecker
			var clientErr error
			if cfg.Storage.OutputPrefix != "" {
				client, err := ctx.storageClient(true)
				if err != nil {
					clientErr = err
				} else {
					checker = client
				}
			}

			results := preflight.RunAll(cmd.Context(), cfg, checker)

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Readiness", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, r := range results {
				kind := statusOK
				if !r.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}
			if clientErr != nil {
				fmt.Fprintln(out, renderStatusLine("Storage client", statusError, clientErr.Error(), colorize))
			}

			if failed := preflight.Failed(results); len(failed) > 0 {
				return services.Wrap(services.ErrValidation, "status", "preflight",
					fmt.Sprintf("%d check(s) failed", len(failed)), nil)
			}
			return nil
		},
	}
}
