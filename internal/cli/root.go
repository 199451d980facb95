// Package cli implements the vibe-sync command surface.
package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds the collaborators CLI commands are wired with.
type App struct {
	Logger *logrus.Logger

	// IsInteractive reports whether stdin is a terminal; prompts are
	// skipped when it returns false.
	IsInteractive func() bool

	configPath string
	verbose    bool
}

// NewRootCmd creates the top-level "vibe-sync" command and registers all
// subcommands against the provided App. The root command itself runs the
// sync loop.
func NewRootCmd(app *App) *cobra.Command {
	var opts syncOptions

	root := &cobra.Command{
		Use:          "vibe-sync",
		Short:        "Sync GitHub issues to Vibe Kanban tasks",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if app.verbose {
				app.Logger.SetLevel(logrus.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runSync(cmd.Context(), opts)
		},
	}

	addGlobalFlags(root.PersistentFlags(), app)
	addSyncFlags(root.Flags(), &opts)

	root.AddCommand(
		newSetupCmd(app),
		newClearCmd(app),
	)

	return root
}

func addGlobalFlags(fs *pflag.FlagSet, app *App) {
	fs.StringVarP(&app.configPath, "config", "c", "", "Path to config file (default: ~/.config/vibe-sync/config.json)")
	fs.BoolVarP(&app.verbose, "verbose", "v", false, "Enable debug logging")
}

// syncOptions are the root command's flags.
type syncOptions struct {
	Once   bool
	All    bool
	DryRun bool
}

func addSyncFlags(fs *pflag.FlagSet, opts *syncOptions) {
	fs.BoolVarP(&opts.Once, "once", "1", false, "Run a single sync and exit (don't loop)")
	fs.BoolVarP(&opts.All, "all", "a", false, "Sync all configured repos without prompting")
	fs.BoolVarP(&opts.DryRun, "dry-run", "n", false, "Show what would be synced without creating tasks")
}

// interactive reports whether prompting the user is possible.
func (app *App) interactive() bool {
	return app.IsInteractive != nil && app.IsInteractive()
}
