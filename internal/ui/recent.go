package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) recentCmd() *cobra.Command {
	var clearAll bool

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently opened sequence files",
		Long: `List the sequence files opened with status, watch or copy-id,
newest first. The list keeps at most storage.max_recent entries.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if clearAll {
				if err := s.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(w, "Recent files cleared.")
				return nil
			}

			files, err := s.Recent(cmd.Context())
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(w, "No recent files.")
				return nil
			}
			for _, f := range files {
				fmt.Fprintf(w, "%s  %s\n", formatMuted(f.OpenedAt.Local().Format("2006-01-02 15:04")), f.Path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearAll, "clear", false, "Forget all recent files")
	return cmd
}
