package editor

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pdrpinto/gridpath"
	"github.com/pdrpinto/gridpath/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEditor(t *testing.T, rows, cols int) (*Editor, tcell.SimulationScreen, *gridpath.Grid) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(100, 30)

	grid, err := gridpath.NewGrid(rows, cols)
	require.NoError(t, err)
	return New(screen, grid, logging.NewNop()), screen, grid
}

// click presses and releases button 1 over cell c.
func click(e *Editor, c gridpath.Coordinate, mods tcell.ModMask) {
	x, y := originX+c.X*cellWidth, originY+c.Y
	e.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, mods))
	e.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func kindAt(t *testing.T, g *gridpath.Grid, c gridpath.Coordinate) gridpath.CellKind {
	t.Helper()
	kind, err := g.Classify(c)
	require.NoError(t, err)
	return kind
}

func TestMouseEditing(t *testing.T) {
	e, _, grid := newTestEditor(t, 5, 5)
	assert.Equal(t, "place a start and a goal", e.Status())

	click(e, gridpath.Coordinate{X: 0, Y: 0}, tcell.ModShift)
	click(e, gridpath.Coordinate{X: 4, Y: 4}, tcell.ModCtrl)
	require.Len(t, e.Path(), 9)
	assert.Contains(t, e.Status(), "path: 9 cells")

	// Moving the start clears the previous one.
	click(e, gridpath.Coordinate{X: 0, Y: 4}, tcell.ModShift)
	assert.Equal(t, gridpath.Empty, kindAt(t, grid, gridpath.Coordinate{X: 0, Y: 0}))
	assert.Equal(t, gridpath.Start, kindAt(t, grid, gridpath.Coordinate{X: 0, Y: 4}))
	assert.Len(t, e.Path(), 5)

	click(e, gridpath.Coordinate{X: 2, Y: 4}, tcell.ModNone)
	assert.Equal(t, gridpath.Wall, kindAt(t, grid, gridpath.Coordinate{X: 2, Y: 4}))
	assert.Len(t, e.Path(), 7, "path detours around the new wall")

	click(e, gridpath.Coordinate{X: 2, Y: 4}, tcell.ModNone)
	assert.Equal(t, gridpath.Empty, kindAt(t, grid, gridpath.Coordinate{X: 2, Y: 4}))
}

func TestMouseHoldDoesNotRepeat(t *testing.T) {
	e, _, grid := newTestEditor(t, 3, 3)
	c := gridpath.Coordinate{X: 1, Y: 1}
	x, y := originX+c.X*cellWidth, originY+c.Y

	e.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	e.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	assert.Equal(t, gridpath.Wall, kindAt(t, grid, c))

	e.HandleEvent(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone))
	e.HandleEvent(tcell.NewEventMouse(60, 20, tcell.Button1, tcell.ModNone))
	assert.Equal(t, []gridpath.Coordinate{c}, grid.Walls(), "clicks outside the grid are ignored")
}

func TestKeyboardEditing(t *testing.T) {
	e, _, grid := newTestEditor(t, 3, 4)

	e.handleRune('s')
	e.handleKey(tcell.KeyRight)
	e.handleKey(tcell.KeyRight)
	e.handleKey(tcell.KeyRight)
	e.handleKey(tcell.KeyRight) // clamped at the edge
	e.handleKey(tcell.KeyDown)
	e.handleKey(tcell.KeyDown)
	assert.Equal(t, gridpath.Coordinate{X: 3, Y: 2}, e.Cursor())
	e.handleRune('g')
	assert.Len(t, e.Path(), 6)

	e.handleKey(tcell.KeyLeft)
	e.handleRune(' ')
	assert.Equal(t, gridpath.Wall, kindAt(t, grid, gridpath.Coordinate{X: 2, Y: 2}))
	assert.Len(t, e.Path(), 6)

	e.handleRune('c')
	assert.Empty(t, grid.Walls())
	assert.Empty(t, e.Path())
	assert.True(t, e.handleRune('q'))
}

func TestNoPathStatus(t *testing.T) {
	e, _, _ := newTestEditor(t, 1, 3)
	click(e, gridpath.Coordinate{X: 0, Y: 0}, tcell.ModShift)
	click(e, gridpath.Coordinate{X: 2, Y: 0}, tcell.ModCtrl)
	click(e, gridpath.Coordinate{X: 1, Y: 0}, tcell.ModNone)
	assert.Empty(t, e.Path())
	assert.Contains(t, e.Status(), "no path")
}

func TestDrawShowsGlyphs(t *testing.T) {
	e, screen, _ := newTestEditor(t, 3, 3)
	click(e, gridpath.Coordinate{X: 0, Y: 0}, tcell.ModShift)
	click(e, gridpath.Coordinate{X: 2, Y: 0}, tcell.ModCtrl)
	click(e, gridpath.Coordinate{X: 1, Y: 1}, tcell.ModNone)
	e.Draw()

	glyph := func(c gridpath.Coordinate) rune {
		r, _, _, _ := screen.GetContent(originX+c.X*cellWidth, originY+c.Y)
		return r
	}
	assert.Equal(t, 'S', glyph(gridpath.Coordinate{X: 0, Y: 0}))
	assert.Equal(t, '*', glyph(gridpath.Coordinate{X: 1, Y: 0}))
	assert.Equal(t, 'G', glyph(gridpath.Coordinate{X: 2, Y: 0}))
	assert.Equal(t, '#', glyph(gridpath.Coordinate{X: 1, Y: 1}))
	assert.Equal(t, '.', glyph(gridpath.Coordinate{X: 0, Y: 2}))

	r, _, _, _ := screen.GetContent(0, originY+3+1)
	assert.Equal(t, 'p', r, "status line starts with the path summary")
}

func TestRunStopsOnQuitAndCancel(t *testing.T) {
	e, screen, _ := newTestEditor(t, 2, 2)

	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background()) }()
	require.NoError(t, screen.PostEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("editor did not quit on escape")
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() { done <- e.Run(ctx) }()
	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("editor did not stop on cancel")
	}
}
