package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/thisisthedave/tasknotes-sub010/cmd/tasknotes/commands"
	"github.com/thisisthedave/tasknotes-sub010/internal/config"
	taskerr "github.com/thisisthedave/tasknotes-sub010/internal/errors"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "tasknotes",
		Short:   "Task management over a folder of markdown notes",
		Long:    "Manage tasks stored as markdown notes with YAML frontmatter, with recurrence, contexts, tags and project links",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	}

	rootCmd.PersistentFlags().String("config", "", "Config file path")
	rootCmd.PersistentFlags().String("vault", "", "Vault directory override")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cfgPath, _ := cmd.Flags().GetString("config"); cfgPath != "" {
			config.SetOverridePath(cfgPath)
		}
		if vaultPath, _ := cmd.Flags().GetString("vault"); vaultPath != "" {
			commands.SetVaultOverride(vaultPath)
		}
		return nil
	}

	rootCmd.AddCommand(commands.NewAddCmd())
	rootCmd.AddCommand(commands.NewListCmd())
	rootCmd.AddCommand(commands.NewEditCmd())
	rootCmd.AddCommand(commands.NewDoneCmd())
	rootCmd.AddCommand(commands.NewDeleteCmd())
	rootCmd.AddCommand(commands.NewExportCmd())
	rootCmd.AddCommand(commands.NewImportCmd())
	rootCmd.AddCommand(commands.NewServeCmd())
	rootCmd.AddCommand(commands.NewCheckCmd())
	rootCmd.AddCommand(commands.NewConfigCmd())
	rootCmd.AddCommand(commands.NewCompletionCmd())
	rootCmd.AddCommand(commands.NewTUICmd())
	rootCmd.AddCommand(newVersionCmd())

	// Launch TUI when invoked with no subcommand
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return commands.RunTUI()
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var parseErr *taskerr.ParseError
		var validErr *taskerr.ValidationError
		var notFoundErr *taskerr.NotFoundError
		switch {
		case errors.As(err, &parseErr):
			os.Exit(1)
		case errors.As(err, &validErr):
			os.Exit(2)
		case errors.As(err, &notFoundErr):
			os.Exit(3)
		default:
			os.Exit(1)
		}
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version, build info, and platform details",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tasknotes %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", buildDate)
			fmt.Printf("  go:        %s\n", runtime.Version())
			fmt.Printf("  os/arch:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
