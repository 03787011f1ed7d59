package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thisisthedave/tasknotes-sub010/internal/recurrence"
)

func NewDoneCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "done <uid>",
		Short: "Complete a task",
		Long: `Complete a task by UID.

A recurring task is not closed: its due date rolls forward to the next
occurrence of its rule. A one-off task gets the completing status and a
completion timestamp.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := loadEnv()
			if err != nil {
				return err
			}

			done := status
			if done == "" {
				for _, s := range cfg.Statuses {
					if s.IsComplete {
						done = s.Value
						break
					}
				}
			}
			if done == "" {
				return fmt.Errorf("no completing status configured; pass --status")
			}

			task, err := store.Complete(args[0], done, cfg.Location())
			if err != nil {
				return err
			}

			if task.IsRecurring() {
				fmt.Printf("Rescheduled %s (%s)\n", task.Title, recurrence.Summarize(task.Recurrence))
				if task.Due != nil {
					fmt.Printf("  next due: %s\n", task.Due.Format("2006-01-02"))
				}
			} else {
				fmt.Printf("Completed %s\n", task.Title)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Completing status value override")
	return cmd
}

func NewDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <uid>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadEnv()
			if err != nil {
				return err
			}
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}
