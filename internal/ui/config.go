package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nightsky/seqview/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	var initFile bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration after defaults, the config file, .env and
SEQVIEW_* environment variables have been applied.

With --init, write the default configuration to the config file if it
does not exist yet.

Example:
  seqview config --init`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{lenientConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.configPath
			if path == "" {
				path = config.DefaultConfigPath()
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Config file: %s\n\n", path)
			if a.configErr != nil {
				fmt.Fprintf(w, "%s %v\nShowing defaults.\n\n", formatWarning("warning:"), a.configErr)
			}

			if initFile {
				// Check if file exists
				_, err := os.Stat(path)
				switch {
				case err == nil:
					fmt.Fprintln(w, "Config file already exists, leaving it untouched.")
				case os.IsNotExist(err):
					if err := config.Default().SaveTo(path); err != nil {
						return fmt.Errorf("saving config: %w", err)
					}
					fmt.Fprintf(w, "Created %s\n\n", path)
				default:
					return fmt.Errorf("checking config file: %w", err)
				}
			}

			printConfig(w, a.config)
			return nil
		},
	}

	cmd.Flags().BoolVar(&initFile, "init", false, "Write a default config file if none exists")
	return cmd
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[ui]")
	fmt.Fprintf(w, "  theme           = %s\n", cfg.UI.Theme)
	fmt.Fprintf(w, "  refresh_seconds = %d\n", cfg.UI.RefreshSeconds)
	fmt.Fprintln(w, "\n[labels]")
	fmt.Fprintf(w, "  no_selection    = %s\n", cfg.Labels.NoSelection)
	fmt.Fprintf(w, "  created         = %s\n", cfg.Labels.Created)
	fmt.Fprintf(w, "  running         = %s\n", cfg.Labels.Running)
	fmt.Fprintf(w, "  finished        = %s\n", cfg.Labels.Finished)
	fmt.Fprintf(w, "  failed          = %s\n", cfg.Labels.Failed)
	fmt.Fprintf(w, "  skipped         = %s\n", cfg.Labels.Skipped)
	fmt.Fprintf(w, "  disabled        = %s\n", cfg.Labels.Disabled)
	fmt.Fprintln(w, "\n[sequence]")
	if cfg.Sequence.DownloadTime > 0 {
		fmt.Fprintf(w, "  download_time   = %g\n", cfg.Sequence.DownloadTime)
	} else {
		fmt.Fprintf(w, "  download_time   = %s\n", formatMuted("(from sequence file)"))
	}
	fmt.Fprintln(w, "\n[location]")
	if obs, ok := cfg.Observer(); ok {
		fmt.Fprintf(w, "  latitude        = %g\n", obs.Latitude)
		fmt.Fprintf(w, "  longitude       = %g\n", obs.Longitude)
	} else {
		fmt.Fprintf(w, "  %s\n", formatMuted("(not set, altitude and moon are hidden)"))
	}
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  db_path         = %s\n", cfg.Storage.DBPath)
	fmt.Fprintf(w, "  max_recent      = %d\n", cfg.Storage.MaxRecent)
	fmt.Fprintln(w, "\n[log]")
	fmt.Fprintf(w, "  level           = %s\n", cfg.Log.Level)
	if cfg.Log.File != "" {
		fmt.Fprintf(w, "  file            = %s\n", cfg.Log.File)
	}
}
