package gridpath

import "github.com/pdrpinto/gridpath/internal"

// Path is an ordered sequence of cells. Paths returned by a search run from
// the goal back to the start; use Reversed for start-to-goal order. An empty
// Path means no path exists.
type Path []Coordinate

// Len returns the number of cells, endpoints included.
func (p Path) Len() int { return len(p) }

// Empty reports whether p holds no cells.
func (p Path) Empty() bool { return len(p) == 0 }

// Reversed returns a copy of p in the opposite order.
func (p Path) Reversed() Path {
	return Path(internal.Reverse(p))
}

// Valid reports whether every consecutive pair of cells is one orthogonal step apart.
func (p Path) Valid() bool {
	for i := 1; i < len(p); i++ {
		if !p[i-1].Adjacent(p[i]) {
			return false
		}
	}
	return true
}

// Contains reports whether c is on the path.
func (p Path) Contains(c Coordinate) bool {
	for _, q := range p {
		if q == c {
			return true
		}
	}
	return false
}
