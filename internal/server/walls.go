package server

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/pdrpinto/gridpath"
)

// WallParams controls RandomGrid.
type WallParams struct {
	Width, Height int
	Clusters      int
	Steps         int
	Density       float64
	Seed          int64
}

// Bounded caps the random-walk work at a small multiple of the grid area:
// at most one cluster per cell, 4*area steps per walk and 16*area steps in total.
func (p WallParams) Bounded() WallParams {
	area := p.Width * p.Height
	p.Clusters = min(max(p.Clusters, 0), area)
	p.Steps = min(max(p.Steps, 0), 4*area)
	if p.Clusters > 0 && p.Clusters*p.Steps > 16*area {
		p.Steps = max(1, 16*area/p.Clusters)
	}
	return p
}

// RandomGrid builds a grid with clustered walls grown by random walks and
// distinct random start and goal cells, which are never walls. The walk
// counts are clamped with Bounded, and ctx is checked between clusters.
func RandomGrid(ctx context.Context, p WallParams) (*gridpath.Grid, gridpath.Coordinate, gridpath.Coordinate, error) {
	var start, goal gridpath.Coordinate
	if p.Width*p.Height < 2 {
		return nil, start, goal, fmt.Errorf("grid %dx%d too small for distinct start and goal", p.Width, p.Height)
	}
	g, err := gridpath.NewGrid(p.Height, p.Width)
	if err != nil {
		return nil, start, goal, err
	}
	p = p.Bounded()
	r := rand.New(rand.NewSource(p.Seed))

	// random start/goal
	for start == goal {
		start = gridpath.Coordinate{X: r.Intn(p.Width), Y: r.Intn(p.Height)}
		goal = gridpath.Coordinate{X: r.Intn(p.Width), Y: r.Intn(p.Height)}
	}

	// clustered random walls via random walks
	for c := 0; c < p.Clusters; c++ {
		if err := ctx.Err(); err != nil {
			return nil, start, goal, err
		}
		pos := gridpath.Coordinate{X: r.Intn(p.Width), Y: r.Intn(p.Height)}
		for s := 0; s < p.Steps; s++ {
			if r.Float64() < p.Density && pos != start && pos != goal {
				_ = g.Set(pos, gridpath.Wall)
			}
			next := pos.Neighbors4()[r.Intn(4)]
			if g.InBounds(next) {
				pos = next
			}
		}
	}

	_ = g.PlaceStart(start)
	_ = g.PlaceGoal(goal)
	return g, start, goal, nil
}
