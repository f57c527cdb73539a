package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"qap/internal/inventory"
)

func newShowCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "show <manifest.yml>",
		Short:       "Display the scans recorded in a manifest",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, err := inventory.ReadFile(args[0])
			if err != nil {
				return err
			}
			entries := manifest.Entries()

			if jsonOutput {
				return writeJSON(cmd, entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Manifest is empty")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{e.Subject, e.Session, string(e.Modality), e.Scan, e.Path})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Subject", "Session", "Modality", "Scan", "Path"},
				rows,
				nil,
			))
			subjects := manifest.Subjects()
			fmt.Fprintf(out, "%d scans across %d subjects\n", len(entries), len(subjects))
			fmt.Fprintf(out, "Subjects: %s\n", strings.Join(subjects, ", "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}
