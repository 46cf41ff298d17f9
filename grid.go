package gridpath

import (
	"fmt"
	"strings"
)

// Default grid extent used when no dimensions are configured.
const (
	DefaultRows = 10
	DefaultCols = 10
)

// CellKind classifies a single grid position.
type CellKind uint8

const (
	Empty CellKind = iota
	Wall
	Start
	Goal
)

func (k CellKind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Start:
		return "start"
	case Goal:
		return "goal"
	}
	return fmt.Sprintf("Unknown CellKind: %d", uint8(k))
}

// MaxCells bounds rows*cols for NewGrid.
const MaxCells = 1 << 26

// Grid is a fixed-size rows x cols map from Coordinate to CellKind.
//
// Set writes any known CellKind without checking the markers. The editing helpers (PlaceStart,
// PlaceGoal, ToggleWall, Clear) keep at most one Start and one Goal on the
// grid by clearing the previous holder first.
type Grid struct {
	rows, cols int
	cells      []CellKind

	start, goal       Coordinate
	hasStart, hasGoal bool
}

// NewGrid creates an all-Empty grid. This is the configure_grid operation.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid grid dimensions %dx%d", rows, cols)
	}
	if rows > MaxCells/cols {
		return nil, fmt.Errorf("grid %dx%d exceeds %d cells", rows, cols, MaxCells)
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]CellKind, rows*cols),
	}, nil
}

// Rows returns the number of rows (Y extent).
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns (X extent).
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether c lies within [0,cols) x [0,rows).
func (g *Grid) InBounds(c Coordinate) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.cols && c.Y < g.rows
}

func (g *Grid) index(c Coordinate) int { return c.Y*g.cols + c.X }

func (g *Grid) checkBounds(c Coordinate) error {
	if !g.InBounds(c) {
		return &OutOfBoundsError{Coord: c, Rows: g.rows, Cols: g.cols}
	}
	return nil
}

// Classify returns the kind of the cell at c.
func (g *Grid) Classify(c Coordinate) (CellKind, error) {
	if err := g.checkBounds(c); err != nil {
		return Empty, err
	}
	return g.cells[g.index(c)], nil
}

// isWall is the unchecked lookup used on the search hot path.
func (g *Grid) isWall(c Coordinate) bool {
	return g.InBounds(c) && g.cells[g.index(c)] == Wall
}

// Set overwrites the cell at c. The single-Start/single-Goal invariant is
// not checked here; only the marker bookkeeping follows the write.
func (g *Grid) Set(c Coordinate, kind CellKind) error {
	if kind > Goal {
		return fmt.Errorf("unknown cell kind %d", uint8(kind))
	}
	if err := g.checkBounds(c); err != nil {
		return err
	}
	i := g.index(c)
	switch g.cells[i] {
	case Start:
		if g.hasStart && g.start == c {
			g.hasStart = false
		}
	case Goal:
		if g.hasGoal && g.goal == c {
			g.hasGoal = false
		}
	}
	g.cells[i] = kind
	switch kind {
	case Start:
		g.start, g.hasStart = c, true
	case Goal:
		g.goal, g.hasGoal = c, true
	}
	return nil
}

// PlaceStart moves the Start marker to c, clearing the previous holder.
func (g *Grid) PlaceStart(c Coordinate) error {
	if err := g.checkBounds(c); err != nil {
		return err
	}
	if g.hasStart {
		g.cells[g.index(g.start)] = Empty
		g.hasStart = false
	}
	return g.Set(c, Start)
}

// PlaceGoal moves the Goal marker to c, clearing the previous holder.
func (g *Grid) PlaceGoal(c Coordinate) error {
	if err := g.checkBounds(c); err != nil {
		return err
	}
	if g.hasGoal {
		g.cells[g.index(g.goal)] = Empty
		g.hasGoal = false
	}
	return g.Set(c, Goal)
}

// ToggleWall turns an Empty cell into a Wall and any other cell into Empty.
// Toggling a Start or Goal cell removes that marker.
func (g *Grid) ToggleWall(c Coordinate) error {
	kind, err := g.Classify(c)
	if err != nil {
		return err
	}
	if kind == Empty {
		return g.Set(c, Wall)
	}
	return g.Set(c, Empty)
}

// Clear resets every cell to Empty and drops both markers.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Empty
	}
	g.hasStart, g.hasGoal = false, false
}

// Start returns the Start marker position, if one is placed.
func (g *Grid) Start() (Coordinate, bool) { return g.start, g.hasStart }

// Goal returns the Goal marker position, if one is placed.
func (g *Grid) Goal() (Coordinate, bool) { return g.goal, g.hasGoal }

// Endpoints returns both markers or an ErrInvalidQuery error naming the missing one.
func (g *Grid) Endpoints() (start, goal Coordinate, err error) {
	switch {
	case !g.hasStart && !g.hasGoal:
		return start, goal, &QueryError{Reason: "start and goal not set"}
	case !g.hasStart:
		return start, goal, &QueryError{Reason: "start not set"}
	case !g.hasGoal:
		return start, goal, &QueryError{Reason: "goal not set"}
	}
	return g.start, g.goal, nil
}

// Walls returns the coordinates of every Wall cell in row-major order.
func (g *Grid) Walls() []Coordinate {
	var out []Coordinate
	for i, k := range g.cells {
		if k == Wall {
			out = append(out, Coordinate{X: i % g.cols, Y: i / g.cols})
		}
	}
	return out
}

// Clone returns an independent copy of g.
func (g *Grid) Clone() *Grid {
	c := *g
	c.cells = append([]CellKind(nil), g.cells...)
	return &c
}

// String renders the grid in the text format accepted by ParseGrid.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.cols + 1) * g.rows)
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			b.WriteByte(cellGlyphs[g.cells[y*g.cols+x]])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
