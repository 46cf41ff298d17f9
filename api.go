package gridpath

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// Result contains the outcome of a search.
type Result struct {
	Path          Path
	TotalCost     int
	ExpandedNodes int
	Found         bool
}

// SearchStats describes a completed search for an Observer.
type SearchStats struct {
	Start, Goal   Coordinate
	Found         bool
	PathLength    int
	ExpandedNodes int
	Duration      time.Duration
}

// Observer receives a SearchStats after every completed Search.
// Implementations must be safe for concurrent use when used with SearchBatch.
type Observer interface {
	ObserveSearch(stats SearchStats)
}

// Options defines parameters for the search.
type Options struct {
	NumberOfWorkers  int
	Estimator        Estimator
	TraversableWalls bool
	Logger           *slog.Logger
	Observer         Observer
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many worker goroutines SearchBatch runs.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithEstimator replaces the default Euclidean-with-wall-penalty heuristic.
func WithEstimator(estimator Estimator) Option {
	return func(options *Options) { options.Estimator = estimator }
}

// WithTraversableWalls lets the search expand into Wall cells. Walls are
// then only discouraged by the heuristic's wall penalty instead of being
// excluded from neighbour enumeration.
func WithTraversableWalls() Option {
	return func(options *Options) { options.TraversableWalls = true }
}

// WithLogger sets the logger used for per-search debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// WithObserver registers an observer for completed searches.
func WithObserver(observer Observer) Option {
	return func(options *Options) { options.Observer = observer }
}

func buildOptions(options []Option) Options {
	searchOptions := Options{
		NumberOfWorkers: runtime.NumCPU(),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Estimator == nil {
		searchOptions.Estimator = DefaultEstimator()
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = slog.New(slog.DiscardHandler)
	}
	return searchOptions
}

// Search runs A* from start to goal on grid.
//
// An unreachable goal is a normal outcome: the Result has Found set to false,
// an empty Path and a nil error. An error is returned only for an invalid
// query (ErrInvalidQuery) or when ctx is done before the search terminates.
// The returned Path runs from goal back to start.
func Search(
	ctx context.Context,
	grid *Grid,
	start Coordinate,
	goal Coordinate,
	options ...Option,
) (Result, error) {
	searchOptions := buildOptions(options)
	began := time.Now()

	stepper, err := newStepper(grid, start, goal, searchOptions)
	if err != nil {
		return Result{}, err
	}
	for !stepper.state.Terminal() {
		if err := ctx.Err(); err != nil {
			return stepper.Result(), err
		}
		stepper.advance()
	}

	result := stepper.Result()
	elapsed := time.Since(began)
	searchOptions.Logger.Debug("search finished",
		"start", start.String(),
		"goal", goal.String(),
		"found", result.Found,
		"path_length", len(result.Path),
		"expanded", result.ExpandedNodes,
		"duration", elapsed,
	)
	if searchOptions.Observer != nil {
		searchOptions.Observer.ObserveSearch(SearchStats{
			Start:         start,
			Goal:          goal,
			Found:         result.Found,
			PathLength:    len(result.Path),
			ExpandedNodes: result.ExpandedNodes,
			Duration:      elapsed,
		})
	}
	return result, nil
}

// FindPath returns the goal-to-start path between start and goal, or an
// empty Path when none exists.
func FindPath(grid *Grid, start, goal Coordinate, options ...Option) (Path, error) {
	result, err := Search(context.Background(), grid, start, goal, options...)
	if err != nil {
		return nil, err
	}
	return result.Path, nil
}

// SearchGrid searches between the Start and Goal markers placed on grid.
func SearchGrid(ctx context.Context, grid *Grid, options ...Option) (Result, error) {
	if grid == nil {
		return Result{}, &QueryError{Reason: "nil grid"}
	}
	start, goal, err := grid.Endpoints()
	if err != nil {
		return Result{}, err
	}
	return Search(ctx, grid, start, goal, options...)
}
