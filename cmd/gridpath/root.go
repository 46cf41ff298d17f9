package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pdrpinto/gridpath"
	"github.com/pdrpinto/gridpath/internal/config"
	"github.com/pdrpinto/gridpath/internal/logging"
	"github.com/spf13/cobra"
)

// settings are resolved once per invocation, before any subcommand runs.
type settings struct {
	cfg    config.Config
	logger *slog.Logger
}

var app = settings{cfg: config.Default(), logger: logging.NewNop()}

var rootCmd = &cobra.Command{
	Use:   "gridpath",
	Short: "Shortest paths on a grid with A*",
	Long: `gridpath finds shortest 4-connected paths between a start and a goal cell
on a grid of open cells and walls. Solve grids from text files, edit them
interactively in the terminal, or serve the engine over HTTP.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "gridpath.yaml", "Configuration file (YAML or JSON)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().Bool("traversable-walls", false, "Let the search cross walls at the wall penalty")
}

func loadSettings(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
		if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("traversable-walls") {
		cfg.Search.TraversableWalls, _ = cmd.Flags().GetBool("traversable-walls")
	}
	app.cfg = cfg
	app.logger = logging.New(cfg.LogLevel())
	app.logger.Debug("configuration loaded", "path", path, "rows", cfg.Grid.Rows, "cols", cfg.Grid.Cols)
	return nil
}

// searchOptions builds engine options from the loaded configuration.
func searchOptions(extra ...gridpath.Option) ([]gridpath.Option, error) {
	opts, err := app.cfg.SearchOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, gridpath.WithLogger(app.logger))
	return append(opts, extra...), nil
}
