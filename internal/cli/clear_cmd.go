package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/vibesync/vibesync/internal/board"
	"github.com/vibesync/vibesync/internal/cli/formatter"
	"github.com/vibesync/vibesync/internal/config"
)

func newClearCmd(app *App) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete tasks from a Vibe Kanban project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errors.New("clear requires an interactive terminal")
			}
			return app.runClear(cmd.Context(), filter)
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Only delete tasks whose title or content contains this text")

	return cmd
}

func (app *App) runClear(ctx context.Context, filter string) error {
	cfg, err := app.loadConfig()
	if err != nil {
		return err
	}

	mapping, err := selectOneMapping(cfg.Projects)
	if err != nil {
		return err
	}

	boardURL := board.ResolveURL(ctx, app.Logger, cfg.VibeAPIURL)
	client := board.NewClient(boardURL, app.Logger)

	fmt.Printf("Fetching tasks for %s...\n", mapping.GitHubRepo)
	tasks, err := client.FetchTasks(ctx, mapping.VibeProjectID)
	if err != nil {
		return err
	}
	tasks = filterTasks(tasks, filter)

	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}
	if filter != "" {
		fmt.Printf("Found %d tasks matching filter %q\n", len(tasks), filter)
	} else {
		fmt.Printf("Found %d tasks\n", len(tasks))
	}

	fmt.Println("\nTasks to delete:")
	fmt.Print(formatter.FormatTaskList(tasks))

	proceed, err := confirm(fmt.Sprintf("Delete %d task(s)?", len(tasks)), false)
	if err != nil {
		return err
	}
	if !proceed {
		fmt.Println("Cancelled.")
		return nil
	}

	deleted := 0
	for _, task := range tasks {
		if err := client.DeleteTask(ctx, task.ID); err != nil {
			fmt.Println(formatter.Bad("Failed to delete: " + task.Title))
			continue
		}
		fmt.Println("Deleted: " + task.Title)
		deleted++
	}
	fmt.Printf("\n%d/%d tasks deleted.\n", deleted, len(tasks))
	return nil
}

// filterTasks keeps tasks whose title or content contains the filter text,
// case-insensitively. An empty filter keeps everything.
func filterTasks(tasks []board.Task, filter string) []board.Task {
	if filter == "" {
		return tasks
	}
	needle := strings.ToLower(filter)

	var kept []board.Task
	for _, task := range tasks {
		if strings.Contains(strings.ToLower(task.Title), needle) ||
			strings.Contains(strings.ToLower(task.Content), needle) {
			kept = append(kept, task)
		}
	}
	return kept
}

// selectOneMapping picks the project to clear; skips the prompt when only
// one is configured.
func selectOneMapping(mappings []config.ProjectMapping) (config.ProjectMapping, error) {
	if len(mappings) == 1 {
		return mappings[0], nil
	}

	options := make([]huh.Option[int], 0, len(mappings))
	for i, m := range mappings {
		label := fmt.Sprintf("%s → %s", m.GitHubRepo, m.VibeProjectID)
		options = append(options, huh.NewOption(label, i))
	}

	var picked int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Which project to clear?").
				Options(options...).
				Value(&picked),
		),
	).WithTheme(syncHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return config.ProjectMapping{}, err
	}
	return mappings[picked], nil
}
