package commands

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/thisisthedave/tasknotes-sub010/internal/config"
)

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tasknotes configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(config.ConfigPath())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(config.ConfigDir(), 0755); err != nil {
				return err
			}
			configPath := config.ConfigPath()
			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("config already exists at %s", configPath)
			}
			defaultConfig := `# tasknotes configuration
vault_path = ""
default_timezone = "UTC"
suggestion_limit = 10
listen_addr = "127.0.0.1:8734"

[[statuses]]
value = "open"
label = "Open"
color = "blue"
order = 1

[[statuses]]
value = "in-progress"
label = "In Progress"
color = "yellow"
order = 2

[[statuses]]
value = "done"
label = "Done"
color = "green"
order = 3
is_complete = true

[[priorities]]
value = "normal"
label = "Normal"
color = "blue"
weight = 1

[[priorities]]
value = "high"
label = "High"
color = "yellow"
weight = 2

[[priorities]]
value = "urgent"
label = "Urgent"
color = "red"
weight = 3
`
			if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
				return err
			}
			fmt.Printf("Created config at %s\n", configPath)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print current configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return toml.NewEncoder(os.Stdout).Encode(cfg)
		},
	})

	return cmd
}
