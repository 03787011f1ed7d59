package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <uid> <property> <value>",
		Short: "Update one property of a task",
		Long: `Update one property of a task by UID.

Properties: title, status, priority, due, scheduled, recurrence,
estimate, contexts, tags, projects. Dates use YYYY-MM-DD (empty value
clears the date). List properties take comma-separated values.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadEnv()
			if err != nil {
				return err
			}
			uid, property, value := args[0], args[1], args[2]
			if err := store.UpdateProperty(uid, property, value); err != nil {
				return err
			}
			fmt.Printf("Updated %s of %s\n", property, uid)
			return nil
		},
	}
	return cmd
}
