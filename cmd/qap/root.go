package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"qap/internal/services"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	return newRootCommandWith(newCommandContext(&configFlag))
}

func newRootCommandWith(ctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "qap",
		Short:         "Inventory and transfer neuroimaging scan data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			runCtx := services.WithRunID(cmd.Context(), uuid.NewString())
			runCtx = services.WithCommand(runCtx, cmd.Name())
			cmd.SetContext(runCtx)
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(ctx.configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newSublistCommand(ctx))
	rootCmd.AddCommand(newShowCommand())
	rootCmd.AddCommand(newFetchCommand(ctx))
	rootCmd.AddCommand(newUploadCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
