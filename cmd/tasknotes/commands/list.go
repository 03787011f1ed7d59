package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thisisthedave/tasknotes-sub010/internal/config"
	"github.com/thisisthedave/tasknotes-sub010/internal/model"
	"github.com/thisisthedave/tasknotes-sub010/internal/recurrence"
	"github.com/thisisthedave/tasknotes-sub010/internal/ui"
	"github.com/thisisthedave/tasknotes-sub010/internal/vault"
)

func NewListCmd() *cobra.Command {
	var status, context, tag, project string
	var all, jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := loadEnv()
			if err != nil {
				return err
			}

			tasks, err := store.List()
			if err != nil {
				return err
			}

			var shown []*model.Task
			for _, t := range tasks {
				if !all && status == "" && model.IsCompleteStatus(cfg.Statuses, t.Status) {
					continue
				}
				if status != "" && t.Status != status {
					continue
				}
				if context != "" && !containsFold(t.Contexts, context) {
					continue
				}
				if tag != "" && !containsFold(t.Tags, tag) {
					continue
				}
				if project != "" && !hasProject(t, project) {
					continue
				}
				shown = append(shown, t)
			}

			if jsonOutput {
				data, err := json.MarshalIndent(shown, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			if len(shown) == 0 {
				fmt.Println("No tasks.")
				return nil
			}
			for _, t := range shown {
				printTask(cfg, t)
			}
			fmt.Printf("\n%d task(s)\n", len(shown))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only tasks with this status")
	cmd.Flags().StringVar(&context, "context", "", "Only tasks with this context")
	cmd.Flags().StringVar(&tag, "tag", "", "Only tasks with this tag")
	cmd.Flags().StringVar(&project, "project", "", "Only tasks linked to this project note")
	cmd.Flags().BoolVar(&all, "all", false, "Include completed tasks")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON")

	return cmd
}

func printTask(cfg *config.Config, t *model.Task) {
	label := model.StatusLabel(cfg.Statuses, t.Status)
	for _, s := range cfg.Statuses {
		if s.Value == t.Status {
			label = ui.Colorize(s.Color, label)
			break
		}
	}

	line := fmt.Sprintf("%-14s %s", label, ui.Bold(t.Title))
	if t.Due != nil {
		line += ui.Gray("  due " + t.Due.Format("2006-01-02"))
	}
	if t.IsRecurring() {
		line += ui.Gray("  " + recurrence.Summarize(t.Recurrence))
	}
	fmt.Println(line)

	var meta []string
	if t.Priority != "" {
		meta = append(meta, t.Priority)
	}
	for _, c := range t.Contexts {
		meta = append(meta, "@"+c)
	}
	for _, tg := range t.Tags {
		meta = append(meta, "#"+tg)
	}
	for _, p := range t.Projects {
		meta = append(meta, p)
	}
	if len(meta) > 0 {
		fmt.Println("  " + ui.Gray(strings.Join(meta, " ")))
	}
	fmt.Println("  " + ui.Gray(t.UID))
}

func containsFold(list []string, want string) bool {
	for _, v := range list {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}

func hasProject(t *model.Task, name string) bool {
	for _, p := range t.Projects {
		if strings.EqualFold(vault.ParseLink(p), name) {
			return true
		}
	}
	return false
}
