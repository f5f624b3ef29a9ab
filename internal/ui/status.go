package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nightsky/seqview/internal/astro"
	"github.com/nightsky/seqview/internal/format"
	"github.com/nightsky/seqview/internal/sequence"
	"github.com/nightsky/seqview/internal/tui"
	"github.com/nightsky/seqview/internal/tui/theme"
	"github.com/nightsky/seqview/internal/tui/view"
)

func (a *App) statusCmd() *cobra.Command {
	var targetID string
	var noColor bool

	cmd := &cobra.Command{
		Use:   "status FILE",
		Short: "Show the progress of a sequence file",
		Long: `Print a one-shot summary of a sequence: overall state, the selected
target, frame counts, remaining runtime and the estimated end time,
followed by the target list and the exposures of the selected target.

The selected target is the one given with --target, otherwise the
sequence's own selection, its active target, or the first target.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				DisableColor()
			}

			seq, f, err := a.loadSequence(args[0])
			if err != nil {
				return err
			}
			now := time.Now()
			seq.CalculateETAs(now)

			selected := ""
			t, err := seq.ResolveTarget(targetID)
			switch {
			case err == nil:
				selected = t.ID
			case targetID != "":
				return fmt.Errorf("target %q: %w", targetID, err)
			}

			opts := statusOptions{Theme: a.config.UI.Theme, Width: termWidth(), Now: now}
			if obs, ok := a.config.Observer(); ok {
				opts.Observer = &obs
			}
			if err := printStatus(cmd.OutOrStdout(), seq, selected, f, opts); err != nil {
				return err
			}

			a.touchRecent(cmd.Context(), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&targetID, "target", "", "Target id to select")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

// statusOptions controls the parts of the status summary that do not come
// from the sequence file.
type statusOptions struct {
	Theme    string
	Width    int             // terminal columns, 0 for no limit
	Observer *astro.Observer // nil hides altitude and moon
	Now      time.Time
}

// printStatus writes the plain status summary of seq to w.
func printStatus(w io.Writer, seq *sequence.Sequence, selectedID string, f *format.Formatter, opts statusOptions) error {
	bar, err := view.BuildStatusBar(seq, selectedID, f)
	if err != nil {
		return err
	}

	title := seq.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(w, "=== %s ===\n\n", formatHeader(title))

	fmt.Fprintf(w, "Status:    %s\n", formatStatus(bar.Status, bar.StatusLabel))
	target := bar.Selection
	if bar.TargetName != "" {
		target += " " + formatMuted("("+bar.TargetName+")")
	}
	fmt.Fprintf(w, "Target:    %s\n", target)
	fmt.Fprintf(w, "Frames:    %s\n", bar.Frames)
	fmt.Fprintf(w, "Remaining: %s\n", bar.Remaining)
	if bar.ETA != "" {
		fmt.Fprintf(w, "ETA:       %s\n", bar.ETA)
	}
	if opts.Observer != nil {
		moon := astro.Moon(opts.Now)
		fmt.Fprintf(w, "Moon:      %.0f%% %s\n", moon.Illumination, formatMuted(moon.Name))
	}

	if len(seq.Targets) == 0 {
		fmt.Fprintln(w, "\nNo targets.")
		return nil
	}

	items, err := view.BuildTargetList(seq, selectedID, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%s\n", formatHeader("Targets"))
	for _, it := range items {
		marker := " "
		if it.Active {
			marker = "▶"
		}
		cursor := " "
		if it.ID == selectedID {
			cursor = "*"
		}
		line := fmt.Sprintf("%s%s %-20s %s  %s  %s",
			cursor, marker, view.Truncate(it.Name, 20),
			formatStatus(statusOf(seq, it.ID), it.Status), it.Frames, formatMuted(it.Runtime))
		if opts.Observer != nil {
			if t, err := seq.FindTarget(it.ID); err == nil {
				line += "  " + altitude(*opts.Observer, t.Coordinates, opts.Now)
			}
		}
		fmt.Fprintln(w, line)
	}

	t, err := seq.FindTarget(selectedID)
	if err != nil {
		return nil
	}
	rows, err := view.BuildExposureRows(t, seq.EstimatedDownloadTime, f, -1)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	th, _ := theme.Load(opts.Theme)
	table := view.RenderExposureTable(view.ExposureTableState{Rows: rows}, theme.NewStyles(th))
	fmt.Fprintf(w, "\n%s\n%s\n", formatHeader("Exposures"), view.TruncateLines(table, opts.Width))
	return nil
}

// altitude formats the current altitude of c with its air mass, or
// "below horizon".
func altitude(obs astro.Observer, c sequence.Coordinates, now time.Time) string {
	pos := obs.AltAz(c.RADecimal(), c.DecDecimal(), now)
	am, up := astro.AirMass(pos.Altitude)
	if !up {
		return formatMuted(fmt.Sprintf("alt %.0f° below horizon", pos.Altitude))
	}
	return fmt.Sprintf("alt %.0f° airmass %.2f", pos.Altitude, am)
}

func statusOf(seq *sequence.Sequence, id string) format.EntityStatus {
	if t, err := seq.FindTarget(id); err == nil {
		return t.Status
	}
	return ""
}

// loadSequence reads path and builds the formatter for it.
func (a *App) loadSequence(path string) (*sequence.Sequence, *format.Formatter, error) {
	f, err := a.config.Formatter()
	if err != nil {
		return nil, nil, fmt.Errorf("building formatter: %w", err)
	}
	seq, err := sequence.Load(path)
	if err != nil {
		return nil, nil, err
	}
	a.config.ApplyDownloadTime(seq)
	a.logger.Debug("loaded sequence", "path", path, "targets", len(seq.Targets))
	return seq, f, nil
}

func (a *App) watchCmd() *cobra.Command {
	var targetID string

	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Open a live view of a sequence file",
		Long: `Open a full-screen view that reloads the sequence file every
ui.refresh_seconds. If a reload fails the last good state stays on screen
and the error is shown in the status bar.

Keys: j/k target, up/down exposure, t theme, c copy id, r reload, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("opening sequence: %w", err)
			}
			f, err := a.config.Formatter()
			if err != nil {
				return fmt.Errorf("building formatter: %w", err)
			}

			a.touchRecent(cmd.Context(), path)
			return tui.Run(path, a.config, f, a.logger, targetID)
		},
	}

	cmd.Flags().StringVar(&targetID, "target", "", "Target id to select")
	return cmd
}

func (a *App) copyIDCmd() *cobra.Command {
	var targetID string

	cmd := &cobra.Command{
		Use:   "copy-id FILE",
		Short: "Copy the full id of the selected target to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, _, err := a.loadSequence(args[0])
			if err != nil {
				return err
			}
			t, err := seq.ResolveTarget(targetID)
			if err != nil {
				return fmt.Errorf("selecting target: %w", err)
			}
			if t.ID == "" {
				return fmt.Errorf("target %q has no id", t.TargetName)
			}
			if err := a.copy(t.ID); err != nil {
				return fmt.Errorf("copying to clipboard: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Copied %s %s\n", t.ID, formatMuted("("+t.TargetName+")"))
			a.touchRecent(cmd.Context(), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&targetID, "target", "", "Target id to copy")
	return cmd
}
