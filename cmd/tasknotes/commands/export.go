package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/thisisthedave/tasknotes-sub010/internal/model"
	"github.com/thisisthedave/tasknotes-sub010/internal/registry"
)

func NewExportCmd() *cobra.Command {
	var format string
	var all, quiet bool

	cmd := &cobra.Command{
		Use:   "export <output-file>",
		Short: "Export tasks to iCalendar or CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := loadEnv()
			if err != nil {
				return err
			}

			if format == "" {
				format = detectFormat(args[0])
			}
			writer, err := registry.GetWriter(format)
			if err != nil {
				return err
			}

			tasks, err := store.List()
			if err != nil {
				return err
			}
			if !all {
				open := tasks[:0]
				for _, t := range tasks {
					if !model.IsCompleteStatus(cfg.Statuses, t.Status) {
						open = append(open, t)
					}
				}
				tasks = open
			}

			var bar *progressbar.ProgressBar
			if !quiet && len(tasks) > 10 {
				bar = progressbar.NewOptions(len(tasks),
					progressbar.OptionSetDescription("Exporting"),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish(),
				)
			}

			if args[0] == "-" {
				err = writer.Write(tasks, os.Stdout)
			} else {
				err = writer.WriteFile(tasks, args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			if bar != nil {
				bar.Add(len(tasks))
				bar.Finish()
			}

			if !quiet {
				fmt.Fprintf(os.Stderr, "Exported %d task(s) to %s\n", len(tasks), args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Output format: ics or csv (default: by extension)")
	cmd.Flags().BoolVar(&all, "all", false, "Include completed tasks")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress non-error output")
	return cmd
}

// detectFormat maps a file path to a registered format, defaulting to ics.
func detectFormat(filePath string) string {
	if filePath == "-" {
		return "ics"
	}
	ext := strings.ToLower(filepath.Ext(filePath))
	if name := registry.DetectByExtension(ext); name != "" {
		return name
	}
	return "ics"
}
