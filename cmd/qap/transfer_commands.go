package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"qap/internal/services"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <s3://bucket/key>",
		Short: "Download an object into the working directory",
		Long: `Download a single object into <working_dir>/<key> and print the local
path. A file already present at that path is reused without downloading.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.storageClient(false)
			if err != nil {
				return err
			}
			local, err := client.Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), local)
			return nil
		},
	}
}

func newUploadCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "upload [local_dir [s3://bucket/prefix]]",
		Short: "Upload a directory tree to object storage",
		Long: `Upload every file under local_dir, keeping its relative path under the
remote prefix. The prefix defaults to storage.output_prefix. With no
arguments the configured output_dir is uploaded to storage.output_prefix.`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			prefix := cfg.Storage.OutputPrefix
			if len(args) == 2 {
				prefix = args[1]
			}
			if strings.TrimSpace(prefix) == "" {
				return services.Wrap(services.ErrConfiguration, "upload", "resolve prefix",
					"pass a destination or set storage.output_prefix", nil)
			}

			client, err := ctx.storageClient(true)
			if err != nil {
				return err
			}
			var count int
			if len(args) == 0 {
				count, err = client.UploadOutput(cmd.Context(), cfg)
			} else {
				count, err = client.Store(cmd.Context(), args[0], prefix)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %d files to %s\n", count, prefix)
			return nil
		},
	}
}
