package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/pdrpinto/gridpath"
	"github.com/pdrpinto/gridpath/internal/render"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNoInput = errors.New("no grid given: pass a file or pipe a grid on stdin")

type solveOptions struct {
	JSON      bool
	FromStart bool
	NoColor   bool
}

var solveFlags solveOptions

var solveCmd = &cobra.Command{
	Use:   "solve [file]",
	Short: "Find the shortest path in a text grid",
	Long: `Reads a grid ('.' open, '#' wall, 'S' start, 'G' goal; one line per row)
from a file or stdin and prints it with the shortest path overlaid.
Paths are listed goal first unless --from-start is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open grid: %w", err)
			}
			defer f.Close()
			input = f
		} else if isTerminal(input) {
			return errNoInput
		}
		opts, err := searchOptions()
		if err != nil {
			return err
		}
		return runSolve(cmd.Context(), input, cmd.OutOrStdout(), solveFlags, opts)
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().BoolVar(&solveFlags.JSON, "json", false, "Print the result as JSON")
	solveCmd.Flags().BoolVar(&solveFlags.FromStart, "from-start", false, "List the path from start to goal")
	solveCmd.Flags().BoolVar(&solveFlags.NoColor, "no-color", false, "Disable colored output")
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type solveResult struct {
	Found    bool                  `json:"found"`
	Cost     int                   `json:"cost"`
	Expanded int                   `json:"expanded"`
	Path     []gridpath.Coordinate `json:"path"`
}

func runSolve(ctx context.Context, in io.Reader, out io.Writer, flags solveOptions, opts []gridpath.Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	grid, err := gridpath.ParseGrid(in)
	if err != nil {
		return err
	}
	result, err := gridpath.SearchGrid(ctx, grid, opts...)
	if err != nil {
		return err
	}

	path := result.Path
	if flags.FromStart {
		path = path.Reversed()
	}

	if flags.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(solveResult{
			Found:    result.Found,
			Cost:     result.TotalCost,
			Expanded: result.ExpandedNodes,
			Path:     append([]gridpath.Coordinate{}, path...),
		})
	}

	profile := termenv.Ascii
	if !flags.NoColor && isTerminal(out) {
		profile = termenv.EnvColorProfile()
	}
	fmt.Fprint(out, render.Grid(grid, result.Path, profile))
	if !result.Found {
		fmt.Fprintf(out, "no path (%d cells expanded)\n", result.ExpandedNodes)
		return nil
	}
	fmt.Fprintf(out, "path: %d cells, cost %d, %d expanded\n", path.Len(), result.TotalCost, result.ExpandedNodes)
	fmt.Fprintln(out, render.PathList(path))
	return nil
}
