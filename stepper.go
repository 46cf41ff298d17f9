package gridpath

import (
	"fmt"
	"math"
	"slices"

	"github.com/pdrpinto/gridpath/internal"
)

// State is the phase of a search.
type State uint8

const (
	StateInitializing State = iota
	StateExpanding
	StateFound
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateExpanding:
		return "expanding"
	case StateFound:
		return "found"
	case StateExhausted:
		return "exhausted"
	}
	return fmt.Sprintf("Unknown State: %d", uint8(s))
}

// Terminal reports whether no further steps can change the outcome.
func (s State) Terminal() bool { return s == StateFound || s == StateExhausted }

// Unreached is the g- and f-score of a cell no path has reached yet.
const Unreached = math.MaxInt

// CostRecord holds the best known cost from the start (G) and that cost
// plus the heuristic estimate to the goal (F).
type CostRecord struct {
	G int
	F int
}

// openNode is the frontier payload. f orders the frontier; h breaks ties.
type openNode struct {
	coord Coordinate
	f, h  int
}

func lessOpenNode(a, b openNode) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	return a.h < b.h
}

// StepSnapshot exposes the per-iteration state of the search.
type StepSnapshot struct {
	Current   Coordinate
	State     State
	Open      []Coordinate
	Expanded  []Coordinate
	Path      Path
	StepIndex int
}

// Stepper runs A* one expansion at a time. Search drives a Stepper to
// completion; visualizers call Step directly. A Stepper is not safe for
// concurrent use and the grid must not change while it runs.
type Stepper struct {
	grid             *Grid
	start, goal      Coordinate
	estimator        Estimator
	traversableWalls bool

	frontier *Frontier[openNode]
	present  map[Coordinate]*Entry[openNode]
	costs    []CostRecord
	cameFrom map[Coordinate]Coordinate
	expanded map[Coordinate]bool

	state         State
	current       Coordinate
	stepCount     int
	expandedCount int
	path          Path
}

// NewStepper validates the query and initializes the search: every cost
// record is Unreached except the start, which is pushed onto the frontier.
func NewStepper(grid *Grid, start, goal Coordinate, options ...Option) (*Stepper, error) {
	return newStepper(grid, start, goal, buildOptions(options))
}

func newStepper(grid *Grid, start, goal Coordinate, opts Options) (*Stepper, error) {
	if grid == nil {
		return nil, &QueryError{Reason: "nil grid"}
	}
	if !grid.InBounds(start) {
		return nil, &QueryError{Reason: fmt.Sprintf("start %s outside %dx%d grid", start, grid.rows, grid.cols)}
	}
	if !grid.InBounds(goal) {
		return nil, &QueryError{Reason: fmt.Sprintf("goal %s outside %dx%d grid", goal, grid.rows, grid.cols)}
	}

	s := &Stepper{
		grid:             grid,
		start:            start,
		goal:             goal,
		estimator:        opts.Estimator,
		traversableWalls: opts.TraversableWalls,
		frontier:         NewFrontier(lessOpenNode),
		present:          make(map[Coordinate]*Entry[openNode]),
		costs:            make([]CostRecord, grid.rows*grid.cols),
		cameFrom:         make(map[Coordinate]Coordinate),
		expanded:         make(map[Coordinate]bool),
		state:            StateInitializing,
		current:          start,
	}
	for i := range s.costs {
		s.costs[i] = CostRecord{G: Unreached, F: Unreached}
	}
	h := s.estimator.Estimate(grid, goal, start)
	s.costs[grid.index(start)] = CostRecord{G: 0, F: h}
	s.present[start] = s.frontier.Push(openNode{coord: start, f: h, h: h})
	s.state = StateExpanding
	return s, nil
}

// advance performs a single iteration of the expansion loop.
func (s *Stepper) advance() {
	if s.state.Terminal() {
		return
	}
	best, err := s.frontier.PopBest()
	if err != nil {
		s.state = StateExhausted
		return
	}
	s.stepCount++
	current := best.coord
	s.current = current
	delete(s.present, current)

	if current == s.goal {
		s.state = StateFound
		s.path = Path(internal.ReconstructPath(s.cameFrom, current))
		return
	}

	s.expanded[current] = true
	s.expandedCount++
	tentativeG := s.costs[s.grid.index(current)].G + 1

	for _, neighbor := range current.Neighbors4() {
		if !s.grid.InBounds(neighbor) {
			continue
		}
		if !s.traversableWalls && s.grid.isWall(neighbor) {
			continue
		}
		record := &s.costs[s.grid.index(neighbor)]
		if tentativeG >= record.G {
			continue
		}
		h := s.estimator.Estimate(s.grid, s.goal, neighbor)
		record.G = tentativeG
		record.F = tentativeG + h
		s.cameFrom[neighbor] = current

		node := openNode{coord: neighbor, f: record.F, h: h}
		if entry, inOpen := s.present[neighbor]; inOpen {
			s.frontier.Update(entry, node)
		} else {
			s.present[neighbor] = s.frontier.Push(node)
		}
	}
}

// Step advances the search by one expansion and returns a snapshot.
// Once the search is terminal, Step only reports the final state.
func (s *Stepper) Step() StepSnapshot {
	s.advance()
	return s.Snapshot()
}

// Snapshot copies the current search state.
func (s *Stepper) Snapshot() StepSnapshot {
	open := make([]Coordinate, 0, len(s.present))
	for c := range s.present {
		open = append(open, c)
	}
	expanded := make([]Coordinate, 0, len(s.expanded))
	for c := range s.expanded {
		expanded = append(expanded, c)
	}
	slices.SortFunc(open, compareCoordinates)
	slices.SortFunc(expanded, compareCoordinates)

	return StepSnapshot{
		Current:   s.current,
		State:     s.state,
		Open:      open,
		Expanded:  expanded,
		Path:      slices.Clone(s.path),
		StepIndex: s.stepCount,
	}
}

// State returns the current phase.
func (s *Stepper) State() State { return s.state }

// Cost returns the cost record of c.
func (s *Stepper) Cost(c Coordinate) (CostRecord, error) {
	if err := s.grid.checkBounds(c); err != nil {
		return CostRecord{}, err
	}
	return s.costs[s.grid.index(c)], nil
}

// Predecessors returns a copy of the predecessor map built so far.
func (s *Stepper) Predecessors() map[Coordinate]Coordinate {
	out := make(map[Coordinate]Coordinate, len(s.cameFrom))
	for k, v := range s.cameFrom {
		out[k] = v
	}
	return out
}

// Result summarizes the search. Path is empty unless the state is StateFound.
func (s *Stepper) Result() Result {
	result := Result{
		ExpandedNodes: s.expandedCount,
		Found:         s.state == StateFound,
	}
	if result.Found {
		result.Path = slices.Clone(s.path)
		result.TotalCost = s.costs[s.grid.index(s.goal)].G
	}
	return result
}

func compareCoordinates(a, b Coordinate) int {
	if a.Y != b.Y {
		return a.Y - b.Y
	}
	return a.X - b.X
}
