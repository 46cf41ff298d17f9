package gridpath

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrid(t *testing.T, rows, cols int) *Grid {
	t.Helper()
	g, err := NewGrid(rows, cols)
	require.NoError(t, err)
	return g
}

func mustParse(t *testing.T, text string) *Grid {
	t.Helper()
	g, err := ParseGrid(strings.NewReader(text))
	require.NoError(t, err)
	return g
}

func manhattan(a, b Coordinate) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func assertWellFormed(t *testing.T, g *Grid, path Path, start, goal Coordinate) {
	t.Helper()
	require.NotEmpty(t, path)
	assert.Equal(t, goal, path[0], "path must begin at the goal")
	assert.Equal(t, start, path[len(path)-1], "path must end at the start")
	assert.True(t, path.Valid(), "every step must be orthogonal: %v", path)
	for _, c := range path {
		assert.True(t, g.InBounds(c), "%s out of bounds", c)
	}
}

func TestSearch_OpenGridMatchesManhattanDistance(t *testing.T) {
	g := mustGrid(t, 10, 10)
	tests := []struct {
		name        string
		start, goal Coordinate
	}{
		{"corner to corner", Coordinate{0, 0}, Coordinate{9, 9}},
		{"reverse corners", Coordinate{9, 9}, Coordinate{0, 0}},
		{"same row", Coordinate{2, 4}, Coordinate{8, 4}},
		{"same column", Coordinate{3, 0}, Coordinate{3, 7}},
		{"adjacent", Coordinate{5, 5}, Coordinate{5, 6}},
		{"anti diagonal", Coordinate{9, 0}, Coordinate{0, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := FindPath(g, tt.start, tt.goal)
			require.NoError(t, err)
			assert.Len(t, path, manhattan(tt.start, tt.goal)+1)
			assertWellFormed(t, g, path, tt.start, tt.goal)
		})
	}
}

func TestSearch_CornerToCornerOnDefaultGrid(t *testing.T) {
	g := mustGrid(t, DefaultRows, DefaultCols)
	result, err := Search(context.Background(), g, Coordinate{0, 0}, Coordinate{9, 9})
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, 19, result.Path.Len())
	assert.Equal(t, 18, result.TotalCost)
	assertWellFormed(t, g, result.Path, Coordinate{0, 0}, Coordinate{9, 9})
}

func TestSearch_RoutesThroughGapInWallColumn(t *testing.T) {
	g := mustGrid(t, 10, 10)
	for y := 0; y <= 8; y++ {
		require.NoError(t, g.Set(Coordinate{5, y}, Wall))
	}
	start, goal := Coordinate{0, 0}, Coordinate{9, 0}

	for _, tc := range []struct {
		name string
		opts []Option
	}{
		{"impassable walls", nil},
		{"traversable walls", []Option{WithTraversableWalls()}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path, err := FindPath(g, start, goal, tc.opts...)
			require.NoError(t, err)
			assertWellFormed(t, g, path, start, goal)
			assert.True(t, path.Contains(Coordinate{5, 9}), "path must use the gap: %v", path)
			assert.Len(t, path, 28)
			for _, c := range path {
				kind, err := g.Classify(c)
				require.NoError(t, err)
				assert.NotEqual(t, Wall, kind, "path crosses wall at %s", c)
			}
		})
	}
}

func TestSearch_ApproachesGoalThroughSingleOpening(t *testing.T) {
	g := mustParse(t, `
S..
.#.
.#G
`)
	path, err := FindPath(g, Coordinate{0, 0}, Coordinate{2, 2})
	require.NoError(t, err)
	assertWellFormed(t, g, path, Coordinate{0, 0}, Coordinate{2, 2})
	assert.Equal(t, Path{{2, 2}, {2, 1}, {2, 0}, {1, 0}, {0, 0}}, path)
}

func TestSearch_WalledOffGoalYieldsEmptyPath(t *testing.T) {
	tests := []struct {
		name string
		grid string
	}{
		{"full wall column", "S.#..\n..#..\n..#.G\n"},
		{"goal enclosed", ".....\n.S.#.\n..#G#\n...#.\n"},
		{"start enclosed", "#S#..\n.#...\n....G\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustParse(t, tt.grid)
			result, err := SearchGrid(context.Background(), g)
			require.NoError(t, err, "an unreachable goal is not an error")
			assert.False(t, result.Found)
			assert.Empty(t, result.Path)
			assert.Zero(t, result.TotalCost)
		})
	}
}

func TestSearch_TraversableWallsCrossWhenNoGapExists(t *testing.T) {
	g := mustParse(t, "S.#..\n..#..\n..#.G\n")
	result, err := SearchGrid(context.Background(), g, WithTraversableWalls())
	require.NoError(t, err)
	require.True(t, result.Found)
	start, goal, _ := g.Endpoints()
	assertWellFormed(t, g, result.Path, start, goal)

	walls := 0
	for _, c := range result.Path {
		if kind, _ := g.Classify(c); kind == Wall {
			walls++
		}
	}
	assert.Equal(t, 1, walls, "the penalty should limit the crossing to one wall cell")
}

func TestSearch_GoalOnWallIsUnreachable(t *testing.T) {
	g := mustGrid(t, 4, 4)
	require.NoError(t, g.Set(Coordinate{3, 3}, Wall))
	path, err := FindPath(g, Coordinate{0, 0}, Coordinate{3, 3})
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestSearch_StartEqualsGoal(t *testing.T) {
	g := mustGrid(t, 10, 10)
	path, err := FindPath(g, Coordinate{4, 4}, Coordinate{4, 4})
	require.NoError(t, err)
	assert.Equal(t, Path{{4, 4}}, path)
}

func TestSearch_InvalidQuery(t *testing.T) {
	g := mustGrid(t, 10, 10)
	tests := []struct {
		name        string
		grid        *Grid
		start, goal Coordinate
	}{
		{"start negative", g, Coordinate{-1, 0}, Coordinate{9, 9}},
		{"start past columns", g, Coordinate{10, 0}, Coordinate{9, 9}},
		{"goal past rows", g, Coordinate{0, 0}, Coordinate{0, 10}},
		{"goal negative", g, Coordinate{0, 0}, Coordinate{3, -2}},
		{"nil grid", nil, Coordinate{0, 0}, Coordinate{1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindPath(tt.grid, tt.start, tt.goal)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidQuery)
			var queryErr *QueryError
			assert.True(t, errors.As(err, &queryErr))
		})
	}
}

func TestSearchGrid_MissingMarkers(t *testing.T) {
	g := mustGrid(t, 3, 3)
	_, err := SearchGrid(context.Background(), g)
	assert.ErrorIs(t, err, ErrInvalidQuery)

	require.NoError(t, g.PlaceStart(Coordinate{0, 0}))
	_, err = SearchGrid(context.Background(), g)
	require.ErrorIs(t, err, ErrInvalidQuery)
	assert.Contains(t, err.Error(), "goal not set")

	require.NoError(t, g.PlaceGoal(Coordinate{2, 2}))
	result, err := SearchGrid(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Path.Len())
}

func TestSearch_Idempotent(t *testing.T) {
	g := mustParse(t, `
S....#....
.##..#.##.
..#..#..#.
..#.....#.
..####..#.
.......##G
`)
	first, err := SearchGrid(context.Background(), g)
	require.NoError(t, err)
	require.True(t, first.Found)
	for i := 0; i < 5; i++ {
		again, err := SearchGrid(context.Background(), g)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSearch_AlternateEstimatorsAgreeOnLength(t *testing.T) {
	g := mustParse(t, `
S...#.....
.##.#.###.
..#...#...
..#####.#.
........#G
`)
	baseline, err := SearchGrid(context.Background(), g)
	require.NoError(t, err)
	require.True(t, baseline.Found)

	for name, estimator := range map[string]Estimator{
		"manhattan": Penalized(Manhattan, 0),
		"dijkstra":  Zero,
	} {
		t.Run(name, func(t *testing.T) {
			result, err := SearchGrid(context.Background(), g, WithEstimator(estimator))
			require.NoError(t, err)
			assert.Equal(t, baseline.Path.Len(), result.Path.Len())
			assert.Equal(t, baseline.TotalCost, result.TotalCost)
		})
	}

	t.Run("dijkstra expands at least as much", func(t *testing.T) {
		result, err := SearchGrid(context.Background(), g, WithEstimator(Zero))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.ExpandedNodes, baseline.ExpandedNodes)
	})
}

func TestSearch_CanceledContext(t *testing.T) {
	g := mustGrid(t, 10, 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Search(ctx, g, Coordinate{0, 0}, Coordinate{9, 9})
	assert.ErrorIs(t, err, context.Canceled)
}

type recordingObserver struct {
	mu    sync.Mutex
	stats []SearchStats
}

func (o *recordingObserver) ObserveSearch(stats SearchStats) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stats = append(o.stats, stats)
}

func TestSearch_NotifiesObserver(t *testing.T) {
	g := mustGrid(t, 5, 5)
	observer := &recordingObserver{}

	_, err := FindPath(g, Coordinate{0, 0}, Coordinate{4, 0}, WithObserver(observer))
	require.NoError(t, err)
	_, err = FindPath(g, Coordinate{0, 0}, Coordinate{9, 0}, WithObserver(observer))
	require.Error(t, err)

	require.Len(t, observer.stats, 1, "rejected queries are not observed")
	stats := observer.stats[0]
	assert.True(t, stats.Found)
	assert.Equal(t, 5, stats.PathLength)
	assert.Equal(t, Coordinate{4, 0}, stats.Goal)
	assert.Positive(t, stats.ExpandedNodes)
}

func TestSearch_PredecessorMapIsAcyclic(t *testing.T) {
	g := mustParse(t, `
..........
.####.###.
.#S.#...#.
.#..###.#.
.#......#.
.########.
.........G
`)
	for _, opts := range [][]Option{nil, {WithTraversableWalls()}, {WithEstimator(Zero)}} {
		start, goal, err := g.Endpoints()
		require.NoError(t, err)
		stepper, err := NewStepper(g, start, goal, opts...)
		require.NoError(t, err)
		for !stepper.State().Terminal() {
			stepper.Step()
		}
		require.Equal(t, StateFound, stepper.State())

		cameFrom := stepper.Predecessors()
		for node, pred := range cameFrom {
			assert.True(t, node.Adjacent(pred), "%s -> %s is not one step", node, pred)
			nodeCost, _ := stepper.Cost(node)
			predCost, _ := stepper.Cost(pred)
			assert.Less(t, predCost.G, nodeCost.G, "g must strictly decrease along predecessors")

			current, hops := node, 0
			for {
				next, ok := cameFrom[current]
				if !ok {
					break
				}
				current = next
				hops++
				require.LessOrEqual(t, hops, len(cameFrom), "cycle through %s", node)
			}
			assert.Equal(t, start, current, "every chain must end at the start")
		}
	}
}

func TestBuildOptions_DefaultLoggerDiscards(t *testing.T) {
	opts := buildOptions(nil)
	assert.Equal(t, slog.DiscardHandler, opts.Logger.Handler())
	assert.False(t, opts.Logger.Enabled(context.Background(), slog.LevelError))
}
