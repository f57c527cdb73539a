package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"qap/internal/inventory"
	"qap/internal/preflight"
	"qap/internal/services"
)

func newSublistCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sublist <site_folder> <outfile_path> <anat|func>",
		Short: "Write a YAML manifest of the scans under a site folder",
		Long: `Walk site_folder, classify every .nii volume laid out as
<subject>/<session>/<scan>/..., and write the scans matching the requested
type to outfile_path as YAML. An unknown scan type writes an empty manifest.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if check := preflight.CheckReadableDir("Site folder", args[0]); !check.Passed {
				return services.Wrap(services.ErrNotFound, "sublist", "check site folder", check.Detail, nil)
			}

			manifest, summary, err := inventory.GenerateSublist(cmd.Context(), args[0], args[1], inventory.ScanType(args[2]), logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %d scans for %d subjects to %s\n", manifest.Len(), len(manifest), args[1])
			colorize := shouldColorize(out)
			for _, line := range summaryLines(summary, colorize) {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}

func summaryLines(summary inventory.Summary, colorize bool) []string {
	lines := []string{
		renderStatusLine("Volumes", statusInfo, fmt.Sprintf("%d of %d files", summary.VolumeFiles, summary.FilesVisited), colorize),
		renderStatusLine("Recorded", statusOK, fmt.Sprintf("%d", summary.Recorded), colorize),
	}
	if summary.Duplicates > 0 {
		lines = append(lines, renderStatusLine("Duplicates", statusWarn, fmt.Sprintf("%d ignored (first kept)", summary.Duplicates), colorize))
	}
	if skipped := summary.ShortPaths + summary.Unclassified; skipped > 0 {
		lines = append(lines, renderStatusLine("Skipped", statusWarn,
			fmt.Sprintf("%d (%d short paths, %d unclassified)", skipped, summary.ShortPaths, summary.Unclassified), colorize))
	}
	if summary.Unreadable > 0 {
		lines = append(lines, renderStatusLine("Unreadable", statusError, fmt.Sprintf("%d entries", summary.Unreadable), colorize))
	}
	return lines
}
