package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nightsky/seqview/internal/sequence"
)

func (a *App) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a sequence file for errors",
		Long: `Check targets and exposures for values the sequencer would reject:
missing names, out of range coordinates, non-positive exposure times,
negative counts. Warnings do not fail validation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := sequence.Load(args[0])
			if err != nil {
				return err
			}

			result := seq.Validate()
			w := cmd.OutOrStdout()
			for _, msg := range result.Errors {
				fmt.Fprintf(w, "%s %s\n", formatError("error:"), msg)
			}
			for _, msg := range result.Warnings {
				fmt.Fprintf(w, "%s %s\n", formatWarning("warning:"), msg)
			}

			if !result.Valid() {
				return fmt.Errorf("%s: %d validation error(s)", args[0], len(result.Errors))
			}
			fmt.Fprintf(w, "%s %s (%d targets)\n", colorFinished.Sprint("ok"), args[0], len(seq.Targets))
			return nil
		},
	}
}
