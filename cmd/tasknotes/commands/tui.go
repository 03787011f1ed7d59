package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thisisthedave/tasknotes-sub010/internal/tui"
)

// NewTUICmd creates the 'tui' subcommand.
func NewTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch interactive TUI",
		Long:  "Launch the full-screen interactive terminal user interface",
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunTUI()
		},
	}
}

// RunTUI starts the bubbletea program with alt-screen.
func RunTUI() error {
	cfg, store, err := loadEnv()
	if err != nil {
		return err
	}
	if err := tui.Run(store, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
