package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thisisthedave/tasknotes-sub010/internal/model"
	"github.com/thisisthedave/tasknotes-sub010/internal/recurrence"
	"github.com/thisisthedave/tasknotes-sub010/internal/vault"
)

func NewAddCmd() *cobra.Command {
	var status, priority, due, scheduled, rule, estimate string
	var contexts, tags, projects []string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a new task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := loadEnv()
			if err != nil {
				return err
			}

			task := &model.Task{
				Title:      strings.Join(args, " "),
				Status:     status,
				Priority:   priority,
				Contexts:   contexts,
				Tags:       tags,
				Projects:   vault.FormatLinks(projects),
				Recurrence: rule,
			}
			if task.Status == "" {
				task.Status = model.DefaultStatus(cfg.Statuses)
			}
			if task.Priority == "" {
				task.Priority = model.DefaultPriority(cfg.Priorities)
			}

			if due != "" {
				d, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("invalid --due date: %w", err)
				}
				task.Due = &d
			}
			if scheduled != "" {
				d, err := time.Parse("2006-01-02", scheduled)
				if err != nil {
					return fmt.Errorf("invalid --scheduled date: %w", err)
				}
				task.Scheduled = &d
			}
			if estimate != "" {
				d, err := time.ParseDuration(estimate)
				if err != nil {
					return fmt.Errorf("invalid --estimate duration: %w", err)
				}
				task.TimeEstimate = int(d.Minutes())
			}
			if rule != "" {
				if err := recurrence.Validate(rule); err != nil {
					return fmt.Errorf("invalid --repeat rule: %w", err)
				}
			}

			if err := store.Create(task); err != nil {
				return err
			}

			fmt.Printf("Added %s (%s)\n", task.Title, task.UID)
			if task.IsRecurring() {
				fmt.Printf("  repeats: %s\n", recurrence.Summarize(task.Recurrence))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Initial status (default: configured default)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (default: configured default)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&scheduled, "scheduled", "", "Scheduled date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&rule, "repeat", "", "Recurrence rule (e.g. FREQ=WEEKLY;BYDAY=MO)")
	cmd.Flags().StringVar(&estimate, "estimate", "", "Time estimate (e.g. 1h30m)")
	cmd.Flags().StringSliceVar(&contexts, "context", nil, "Context (repeatable)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable)")
	cmd.Flags().StringSliceVar(&projects, "project", nil, "Project note name (repeatable)")

	return cmd
}
