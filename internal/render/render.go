// Package render draws grids and paths as terminal text.
package render

import (
	"strings"

	"github.com/muesli/termenv"
	"github.com/pdrpinto/gridpath"
)

// Palette holds hex colors for every cell category.
type Palette struct {
	Background string
	Empty      string
	Wall       string
	Start      string
	Goal       string
	Path       string
}

// DefaultPalette is a dark green theme: red walls, blue start, yellow goal.
var DefaultPalette = Palette{
	Background: "#1c3025",
	Empty:      "#44755b",
	Wall:       "#c2303d",
	Start:      "#304baf",
	Goal:       "#afaf30",
	Path:       "#00bfa3",
}

// Glyphs used for each cell category.
const (
	GlyphEmpty = '.'
	GlyphWall  = '#'
	GlyphStart = 'S'
	GlyphGoal  = 'G'
	GlyphPath  = '*'
)

// Cell is the glyph and color of one rendered position.
type Cell struct {
	Glyph rune
	Color string
}

// Classify decides how the cell at c is drawn. Path cells that are not
// endpoints are drawn as GlyphPath.
func (p Palette) Classify(grid *gridpath.Grid, onPath map[gridpath.Coordinate]bool, c gridpath.Coordinate) Cell {
	kind, _ := grid.Classify(c)
	switch kind {
	case gridpath.Wall:
		if onPath[c] {
			return Cell{GlyphPath, p.Wall}
		}
		return Cell{GlyphWall, p.Wall}
	case gridpath.Start:
		return Cell{GlyphStart, p.Start}
	case gridpath.Goal:
		return Cell{GlyphGoal, p.Goal}
	}
	if onPath[c] {
		return Cell{GlyphPath, p.Path}
	}
	return Cell{GlyphEmpty, p.Empty}
}

// PathSet indexes path for membership lookups.
func PathSet(path gridpath.Path) map[gridpath.Coordinate]bool {
	set := make(map[gridpath.Coordinate]bool, len(path))
	for _, c := range path {
		set[c] = true
	}
	return set
}

// Grid renders grid with path overlaid, one line per row. With the
// termenv.Ascii profile the output carries no escape sequences.
func Grid(grid *gridpath.Grid, path gridpath.Path, profile termenv.Profile) string {
	onPath := PathSet(path)
	var b strings.Builder
	for y := 0; y < grid.Rows(); y++ {
		for x := 0; x < grid.Cols(); x++ {
			cell := DefaultPalette.Classify(grid, onPath, gridpath.Coordinate{X: x, Y: y})
			b.WriteString(termenv.String(string(cell.Glyph)).Foreground(profile.Color(cell.Color)).String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// PathList formats path as "(x,y) -> (x,y) -> ...".
func PathList(path gridpath.Path) string {
	parts := make([]string, len(path))
	for i, c := range path {
		parts[i] = c.String()
	}
	return strings.Join(parts, " -> ")
}
