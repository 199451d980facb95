package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/vibesync/vibesync/internal/board"
	"github.com/vibesync/vibesync/internal/cli/formatter"
	"github.com/vibesync/vibesync/internal/config"
	"github.com/vibesync/vibesync/internal/github"
	"github.com/vibesync/vibesync/internal/syncer"
)

// runSync is the root command body: load config, narrow the mappings,
// resolve the board URL, and run the engine (or print the dry-run plan).
func (app *App) runSync(ctx context.Context, opts syncOptions) error {
	cfg, err := app.loadConfig()
	if err != nil {
		return err
	}

	if !opts.All && len(cfg.Projects) > 1 && app.interactive() {
		selected, err := selectMappings(cfg.Projects)
		if err != nil {
			return err
		}
		cfg.Projects = selected
	}

	boardURL := board.ResolveURL(ctx, app.Logger, cfg.VibeAPIURL)
	engine := syncer.NewEngine(
		cfg,
		github.NewClient(cfg.IssueLimit, app.Logger),
		board.NewClient(boardURL, app.Logger),
		app.Logger,
	)

	if opts.DryRun {
		fmt.Println("Dry-run mode: showing what would be synced")
		fmt.Print(formatter.FormatPlan(engine.Plan(ctx)))
		return nil
	}

	app.Logger.Info("starting vibe kanban github sync")
	if err := engine.Run(ctx, opts.Once); err != nil && ctx.Err() == nil {
		return err
	}
	app.Logger.Info("shutdown complete")
	return nil
}

// loadConfig resolves the config path and loads it, pointing the user at
// setup when nothing is configured yet. Missing config is the one fatal
// error in the system.
func (app *App) loadConfig() (*config.Config, error) {
	path, err := config.ResolvePath(app.configPath)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w (run: vibe-sync setup)", err)
	}
	if len(cfg.Projects) == 0 {
		return nil, fmt.Errorf("no projects configured in %s (run: vibe-sync setup)", path)
	}
	return cfg, nil
}

// selectMappings lets the user narrow which repos this run syncs. Selecting
// nothing keeps all of them.
func selectMappings(mappings []config.ProjectMapping) ([]config.ProjectMapping, error) {
	options := make([]huh.Option[int], 0, len(mappings))
	for i, m := range mappings {
		options = append(options, huh.NewOption(m.GitHubRepo, i))
	}

	var picked []int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("Which repos to sync? (none = all)").
				Options(options...).
				Value(&picked),
		),
	).WithTheme(syncHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return nil, err
	}
	if len(picked) == 0 {
		return mappings, nil
	}

	selected := make([]config.ProjectMapping, 0, len(picked))
	for _, i := range picked {
		selected = append(selected, mappings[i])
	}
	return selected, nil
}
