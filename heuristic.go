package gridpath

import (
	"fmt"
	"math"
	"strings"
)

// DefaultWallPenalty is the estimate returned for Wall candidates on grids
// small enough that no real path can cost as much.
const DefaultWallPenalty = 10000

// Estimator estimates the remaining cost from candidate to goal.
type Estimator interface {
	Estimate(grid *Grid, goal, candidate Coordinate) int
}

// EstimatorFunc adapts a plain function to Estimator.
type EstimatorFunc func(grid *Grid, goal, candidate Coordinate) int

// Estimate calls f.
func (f EstimatorFunc) Estimate(grid *Grid, goal, candidate Coordinate) int {
	return f(grid, goal, candidate)
}

// Euclidean is the straight-line distance truncated to whole cost units.
var Euclidean EstimatorFunc = func(_ *Grid, goal, candidate Coordinate) int {
	dx := float64(goal.X - candidate.X)
	dy := float64(goal.Y - candidate.Y)
	return int(math.Sqrt(dx*dx + dy*dy))
}

// Manhattan is the 4-connected step distance.
var Manhattan EstimatorFunc = func(_ *Grid, goal, candidate Coordinate) int {
	return abs(goal.X-candidate.X) + abs(goal.Y-candidate.Y)
}

// Zero turns the search into Dijkstra's algorithm.
var Zero EstimatorFunc = func(*Grid, Coordinate, Coordinate) int { return 0 }

// WallPenalty returns the smallest sentinel that still exceeds every
// achievable path cost on grid, never less than DefaultWallPenalty.
func WallPenalty(grid *Grid) int {
	return max(DefaultWallPenalty, grid.rows*grid.cols+1)
}

type penalized struct {
	inner   Estimator
	penalty int
}

// Penalized wraps inner so that Wall candidates estimate to penalty.
// A penalty <= 0 selects WallPenalty(grid) at evaluation time.
func Penalized(inner Estimator, penalty int) Estimator {
	return penalized{inner: inner, penalty: penalty}
}

func (p penalized) Estimate(grid *Grid, goal, candidate Coordinate) int {
	if grid.isWall(candidate) {
		if p.penalty > 0 {
			return p.penalty
		}
		return WallPenalty(grid)
	}
	return p.inner.Estimate(grid, goal, candidate)
}

// DefaultEstimator is Euclidean distance with the wall penalty applied.
func DefaultEstimator() Estimator {
	return Penalized(Euclidean, 0)
}

// EstimatorByName resolves a configured heuristic name. Every named
// estimator except zero/dijkstra carries the wall penalty.
func EstimatorByName(name string, penalty int) (Estimator, error) {
	switch strings.ToLower(name) {
	case "", "euclidean":
		return Penalized(Euclidean, penalty), nil
	case "manhattan":
		return Penalized(Manhattan, penalty), nil
	case "zero", "dijkstra":
		return Zero, nil
	}
	return nil, fmt.Errorf("unknown heuristic %q", name)
}
