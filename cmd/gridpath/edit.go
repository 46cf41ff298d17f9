package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/pdrpinto/gridpath"
	"github.com/pdrpinto/gridpath/internal/editor"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a grid interactively and watch the path update",
	Long: `Opens a terminal grid editor. Click to toggle walls, shift-click to place
the start, ctrl-click to place the goal. The path is recomputed after every edit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, cols := app.cfg.Grid.Rows, app.cfg.Grid.Cols
		if cmd.Flags().Changed("rows") {
			rows, _ = cmd.Flags().GetInt("rows")
		}
		if cmd.Flags().Changed("cols") {
			cols, _ = cmd.Flags().GetInt("cols")
		}
		grid, err := gridpath.NewGrid(rows, cols)
		if err != nil {
			return err
		}
		opts, err := searchOptions()
		if err != nil {
			return err
		}

		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("failed to init terminal: %w", err)
		}
		defer screen.Fini()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app.logger.Debug("editor started", "rows", rows, "cols", cols)
		return editor.New(screen, grid, app.logger, opts...).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().Int("rows", 0, "Grid rows (overrides config)")
	editCmd.Flags().Int("cols", 0, "Grid columns (overrides config)")
}
