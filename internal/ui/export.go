package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nightsky/seqview/internal/export"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		formatName  string
		coords      string
		output      string
		decimals    int
		progress    bool
		noExposures bool
		noSettings  bool
	)

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Convert a sequence for other planning tools",
		Long: `Write the targets of a sequence in another tool's format. The result
goes to stdout unless --output is given.

Formats: ` + joinFormats() + `

Example:
  seqview export orion.json --format nina -o orion-nina.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := export.DefaultOptions()
			var err error
			if opts.Format, err = export.ParseFormat(formatName); err != nil {
				return err
			}
			if opts.Coordinates, err = export.ParseCoordinateFormat(coords); err != nil {
				return err
			}
			if decimals < 0 || decimals > 6 {
				return fmt.Errorf("--decimals must be between 0 and 6, got %d", decimals)
			}
			opts.DecimalPlaces = decimals
			opts.IncludeProgress = progress
			opts.IncludeExposures = !noExposures
			opts.IncludeSettings = !noSettings

			seq, _, err := a.loadSequence(args[0])
			if err != nil {
				return err
			}
			res, err := export.Export(seq, opts)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output == "" {
				_, err := w.Write(res.Content)
				return err
			}
			if err := os.WriteFile(output, res.Content, 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			fmt.Fprintf(w, "Exported %d targets to %s %s\n", res.Targets, output, formatMuted("("+string(res.Format)+")"))
			a.touchRecent(cmd.Context(), args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", string(export.FormatCSV), "Output format")
	cmd.Flags().StringVar(&coords, "coords", string(export.CoordSexagesimal), "Coordinate style (sexagesimal, colon, decimal, degrees)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().IntVar(&decimals, "decimals", 2, "Decimal places on coordinates")
	cmd.Flags().BoolVar(&progress, "progress", false, "Include completed frame counts")
	cmd.Flags().BoolVar(&noExposures, "no-exposures", false, "Leave out exposure plans")
	cmd.Flags().BoolVar(&noSettings, "no-settings", false, "Leave out slew and guiding settings")
	return cmd
}

func joinFormats() string {
	names := make([]string, 0, len(export.Formats()))
	for _, f := range export.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
