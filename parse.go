package gridpath

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Text glyphs, indexed by CellKind.
var cellGlyphs = [...]byte{Empty: '.', Wall: '#', Start: 'S', Goal: 'G'}

// ParseGrid reads a grid in text form: one line per row, '.' for Empty,
// '#' for Wall, 'S' for Start and 'G' for Goal. Every row must have the same
// width. Blank lines are skipped. At most one Start and one Goal are allowed.
func ParseGrid(r io.Reader) (*Grid, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read grid: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("failed to parse grid: no rows")
	}

	cols := len(lines[0])
	g, err := NewGrid(len(lines), cols)
	if err != nil {
		return nil, err
	}
	for y, line := range lines {
		if len(line) != cols {
			return nil, fmt.Errorf("failed to parse grid: row %d has width %d, want %d", y, len(line), cols)
		}
		for x := 0; x < cols; x++ {
			c := Coordinate{X: x, Y: y}
			switch line[x] {
			case '.':
			case '#':
				g.cells[g.index(c)] = Wall
			case 'S':
				if g.hasStart {
					return nil, fmt.Errorf("failed to parse grid: second start at %s", c)
				}
				_ = g.Set(c, Start)
			case 'G':
				if g.hasGoal {
					return nil, fmt.Errorf("failed to parse grid: second goal at %s", c)
				}
				_ = g.Set(c, Goal)
			default:
				return nil, fmt.Errorf("failed to parse grid: unexpected %q at %s", line[x], c)
			}
		}
	}
	return g, nil
}
