package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nightsky/seqview/internal/tui/theme"
)

func (a *App) themesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current := strings.ToLower(a.config.UI.Theme)
			w := cmd.OutOrStdout()
			for _, name := range theme.Available() {
				if name == current {
					fmt.Fprintf(w, "* %s\n", formatHeader(name))
					continue
				}
				fmt.Fprintf(w, "  %s\n", name)
			}
			return nil
		},
	}
}
