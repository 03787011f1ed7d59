package commands

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/thisisthedave/tasknotes-sub010/internal/conflict"
	taskerr "github.com/thisisthedave/tasknotes-sub010/internal/errors"
	"github.com/thisisthedave/tasknotes-sub010/internal/model"
	"github.com/thisisthedave/tasknotes-sub010/internal/registry"
)

func NewImportCmd() *cobra.Command {
	var format, status string
	var dryRun, quiet, skipDuplicates bool

	cmd := &cobra.Command{
		Use:   "import <input-file>",
		Short: "Import tasks from iCalendar or CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := loadEnv()
			if err != nil {
				return err
			}

			if format == "" {
				format = detectFormat(args[0])
			}
			parser, err := registry.GetParser(format)
			if err != nil {
				return err
			}

			var tasks []*model.Task
			if args[0] == "-" {
				tasks, err = parser.Parse(os.Stdin, "stdin")
			} else {
				tasks, err = parser.ParseFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			skip := map[int]bool{}
			if skipDuplicates {
				existing, err := store.List()
				if err != nil {
					return err
				}
				matches := conflict.NewDetector().FindDuplicates(tasks, existing)
				for _, m := range matches {
					skip[m.IncomingIndex] = true
				}
				if len(matches) > 0 && !quiet {
					fmt.Fprintf(os.Stderr, "Skipping %d duplicate(s) already in the vault\n", len(matches))
				}
			}

			if dryRun {
				for i, t := range tasks {
					marker := "  - "
					if skip[i] {
						marker = "  (skip) "
					}
					fmt.Printf("%s%s\n", marker, t.Title)
				}
				fmt.Printf("%d task(s) would be imported\n", len(tasks)-len(skip))
				return nil
			}

			var bar *progressbar.ProgressBar
			if !quiet && len(tasks) > 10 {
				bar = progressbar.NewOptions(len(tasks),
					progressbar.OptionSetDescription("Importing"),
					progressbar.OptionSetWriter(os.Stderr),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish(),
				)
			}

			collector := taskerr.NewErrorCollector()
			imported := 0
			for i, t := range tasks {
				if bar != nil {
					bar.Add(1)
				}
				if skip[i] {
					continue
				}
				if t.Status == "" {
					t.Status = model.DefaultStatus(cfg.Statuses)
				}
				if status != "" {
					t.Status = status
				}
				if err := store.Create(t); err != nil {
					collector.AddError(fmt.Errorf("%s: %w", t.Title, err))
				} else {
					imported++
				}
			}
			if bar != nil {
				bar.Finish()
			}

			if !quiet {
				fmt.Fprintf(os.Stderr, "Imported %d task(s) from %s\n", imported, args[0])
				if collector.HasErrors() {
					fmt.Fprintln(os.Stderr, collector.Summary())
				}
			}
			if imported == 0 && collector.HasErrors() {
				return fmt.Errorf("no tasks imported")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Input format: ics or csv (default: by extension)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview without writing")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress non-error output")
	cmd.Flags().BoolVar(&skipDuplicates, "skip-duplicates", false, "Skip tasks that already exist in the vault")
	cmd.Flags().StringVar(&status, "status", "", "Force this status on imported tasks")
	return cmd
}
