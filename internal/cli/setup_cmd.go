package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/vibesync/vibesync/internal/board"
	"github.com/vibesync/vibesync/internal/cli/formatter"
	"github.com/vibesync/vibesync/internal/config"
	"github.com/vibesync/vibesync/internal/github"
)

func newSetupCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create or update the config interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errors.New("setup requires an interactive terminal")
			}
			return app.runSetup(cmd.Context())
		},
	}
}

func (app *App) runSetup(ctx context.Context) error {
	path, err := config.ResolvePath(app.configPath)
	if err != nil {
		return err
	}

	fmt.Println(formatter.Header("Vibe Sync Setup"))

	if _, err := os.Stat(path); err == nil {
		overwrite, err := confirm(fmt.Sprintf("Config already exists at %s. Overwrite?", path), false)
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Setup cancelled.")
			return nil
		}
	}

	cfg := config.Default()

	boardURL, err := app.setupBoardURL(ctx)
	if err != nil {
		return err
	}
	cfg.VibeAPIURL = boardURL

	fmt.Printf("Connecting to %s...\n", cfg.VibeAPIURL)
	client := board.NewClient(cfg.VibeAPIURL, app.Logger)
	projects, err := client.FetchProjects(ctx)
	if err != nil {
		app.Logger.WithError(err).Debug("fetch projects failed")
	}

	ghClient := github.NewClient(1, app.Logger)
	username, err := ghClient.Username(ctx)
	if err == nil {
		fmt.Printf("GitHub user: %s\n", formatter.Bold(username))
	}

	selected, err := app.setupSelectProjects(projects)
	if err != nil {
		return err
	}

	for _, project := range selected {
		mapping, err := app.setupMapping(ctx, ghClient, project, username)
		if err != nil {
			return err
		}
		if mapping != nil {
			cfg.Projects = append(cfg.Projects, *mapping)
		}
	}
	if len(cfg.Projects) == 0 {
		fmt.Println("No projects configured. Setup cancelled.")
		return nil
	}

	interval, err := input(
		"Sync interval in seconds",
		strconv.Itoa(cfg.SyncIntervalSeconds),
		strconv.Itoa(cfg.SyncIntervalSeconds),
	)
	if err != nil {
		return err
	}
	if n, err := strconv.Atoi(strings.TrimSpace(interval)); err == nil && n > 0 {
		cfg.SyncIntervalSeconds = n
	}

	if err := cfg.Save(path); err != nil {
		return err
	}
	fmt.Printf("Config saved to %s\n", path)
	fmt.Println(formatter.Good("Setup complete! You can now run: vibe-sync"))
	return nil
}

// setupBoardURL discovers a running server, offers to start one, or asks for
// the URL.
func (app *App) setupBoardURL(ctx context.Context) (string, error) {
	fmt.Println("Searching for Vibe Kanban...")
	detected := board.Discover(ctx, app.Logger)

	if detected == "" {
		fmt.Println("Vibe Kanban is not running.")
		if _, err := board.LocateCLI(); err == nil {
			start, err := confirm("Start Vibe Kanban now?", true)
			if err != nil {
				return "", err
			}
			if start {
				url, err := board.StartServer(ctx, app.Logger)
				if err != nil {
					fmt.Println(formatter.Warn(err.Error()))
				} else {
					detected = url
				}
			}
		} else {
			fmt.Println(formatter.Warn("vibe-kanban CLI not found. Install with: npm install -g vibe-kanban"))
		}
	}

	if detected != "" {
		fmt.Printf("Found Vibe Kanban at %s\n", formatter.Good(detected))
		useDetected, err := confirm("Use this URL?", true)
		if err != nil {
			return "", err
		}
		if useDetected {
			return detected, nil
		}
		return input("Enter Vibe Kanban API URL", config.DefaultAPIURL, config.DefaultAPIURL)
	}

	fmt.Println("Could not connect to Vibe Kanban.")
	return input("Enter Vibe Kanban API URL", config.DefaultAPIURL, config.DefaultAPIURL)
}

// setupSelectProjects multi-selects board projects, falling back to manual
// project ID entry when the board could not be listed.
func (app *App) setupSelectProjects(projects []board.Project) ([]board.Project, error) {
	if len(projects) == 0 {
		fmt.Println("Could not fetch projects from Vibe Kanban.")
		fmt.Println("Make sure Vibe Kanban is running and the URL is correct.")
		manual, err := confirm("Enter project ID manually?", false)
		if err != nil || !manual {
			return nil, err
		}
		id, err := input("Vibe Project ID", "", "")
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(id) == "" {
			fmt.Println("No project ID provided. Setup cancelled.")
			return nil, nil
		}
		return []board.Project{{ID: strings.TrimSpace(id), Name: "Manual Entry"}}, nil
	}

	fmt.Printf("Found %d Vibe projects.\n", len(projects))
	options := make([]huh.Option[int], 0, len(projects))
	for i, p := range projects {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", p.Name, p.ID), i))
	}

	var picked []int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("Select projects to sync").
				Options(options...).
				Value(&picked),
		),
	).WithTheme(syncHuhTheme()).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return nil, err
	}

	selected := make([]board.Project, 0, len(picked))
	for _, i := range picked {
		selected = append(selected, projects[i])
	}
	return selected, nil
}

// setupMapping asks for the GitHub repo feeding one board project and
// verifies access with a one-issue probe. Returns nil when the project is
// skipped.
func (app *App) setupMapping(ctx context.Context, ghClient *github.Client, project board.Project, username string) (*config.ProjectMapping, error) {
	fmt.Printf("\nProject: %s\n", formatter.Bold(project.Name))

	var suggested string
	if username != "" && project.Name != "" && project.Name != "Manual Entry" {
		suggested = username + "/" + project.Name
	}
	repo, err := input("GitHub repo (owner/repo)", suggested, suggested)
	if err != nil {
		return nil, err
	}
	repo = strings.TrimSpace(repo)
	if repo == "" {
		fmt.Printf("Skipping %s - no repo provided.\n", project.Name)
		return nil, nil
	}

	fmt.Printf("Verifying access to %s...\n", repo)
	issues, err := ghClient.FetchOpenIssues(ctx, repo)
	if err != nil {
		fmt.Println(formatter.Warn("Could not verify access to " + repo))
		proceed, err := confirm("Add anyway?", false)
		if err != nil {
			return nil, err
		}
		if !proceed {
			return nil, nil
		}
	} else if len(issues) == 0 {
		fmt.Printf("Connected to %s (no open issues)\n", repo)
	} else {
		fmt.Printf("Connected to %s\n", repo)
	}

	return &config.ProjectMapping{GitHubRepo: repo, VibeProjectID: project.ID}, nil
}
