package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thisisthedave/tasknotes-sub010/internal/lint"
	"github.com/thisisthedave/tasknotes-sub010/internal/ui"
)

func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check vault tasks for problems",
		Long: `Check every task in the vault against the configured status and
priority catalogs, recurrence rule syntax, and date ordering. Notes
edited by hand can drift in ways the TUI and CLI would have rejected.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := loadEnv()
			if err != nil {
				return err
			}

			tasks, err := store.List()
			if err != nil {
				return err
			}

			warnings := lint.Check(tasks, cfg)
			if len(warnings) == 0 {
				fmt.Printf("%d task(s) checked, no problems found\n", len(tasks))
				return nil
			}

			for _, w := range warnings {
				fmt.Fprintln(os.Stderr, ui.Yellow("WARNING: ")+w.String())
			}
			return fmt.Errorf("%d problem(s) in %d task(s)", len(warnings), len(tasks))
		},
	}
}
