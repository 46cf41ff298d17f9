package gridpath

import "fmt"

// Coordinate identifies a grid cell by column (X) and row (Y).
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Orthogonal step offsets. Enumeration order is fixed so searches are repeatable.
var steps4 = [4]Coordinate{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Add returns the component-wise sum of c and d.
func (c Coordinate) Add(d Coordinate) Coordinate {
	return Coordinate{X: c.X + d.X, Y: c.Y + d.Y}
}

// Neighbors4 returns the four orthogonal neighbours of c. No bounds are applied.
func (c Coordinate) Neighbors4() [4]Coordinate {
	var out [4]Coordinate
	for i, d := range steps4 {
		out[i] = c.Add(d)
	}
	return out
}

// Adjacent reports whether c and d differ by exactly one unit along exactly one axis.
func (c Coordinate) Adjacent(d Coordinate) bool {
	dx, dy := abs(c.X-d.X), abs(c.Y-d.Y)
	return dx+dy == 1
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
