// Package editor is an interactive terminal grid editor. It paints walls and
// endpoints with the mouse or keyboard and re-runs the search after every edit.
package editor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/pdrpinto/gridpath"
	"github.com/pdrpinto/gridpath/internal/render"
)

// Screen layout: a help line, a blank line, the grid, then a status line.
const (
	originX   = 1
	originY   = 2
	cellWidth = 2
)

const helpLine = "click: wall  shift-click/s: start  ctrl-click/g: goal  space: wall  c: clear  q: quit"

// Editor owns the grid while it runs; the grid is only searched between edits.
type Editor struct {
	screen  tcell.Screen
	grid    *gridpath.Grid
	logger  *slog.Logger
	options []gridpath.Option

	result      gridpath.Result
	status      string
	cursor      gridpath.Coordinate
	lastButtons tcell.ButtonMask
}

// New creates an editor over an initialized screen.
func New(screen tcell.Screen, grid *gridpath.Grid, logger *slog.Logger, options ...gridpath.Option) *Editor {
	e := &Editor{
		screen:  screen,
		grid:    grid,
		logger:  logger,
		options: options,
	}
	e.recompute()
	return e
}

// Run processes events until the user quits, the screen is finalized or ctx is done.
func (e *Editor) Run(ctx context.Context) error {
	e.screen.EnableMouse()
	defer e.screen.DisableMouse()

	stop := context.AfterFunc(ctx, func() {
		_ = e.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	e.Draw()
	for {
		ev := e.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok && ctx.Err() != nil {
			return ctx.Err()
		}
		if e.HandleEvent(ev) {
			return nil
		}
		e.Draw()
	}
}

// HandleEvent applies one input event and reports whether the editor should quit.
func (e *Editor) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		e.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			return e.handleRune(ev.Rune())
		default:
			e.handleKey(ev.Key())
		}
	case *tcell.EventMouse:
		e.handleMouse(ev)
	}
	return false
}

func (e *Editor) handleKey(key tcell.Key) {
	d := gridpath.Coordinate{}
	switch key {
	case tcell.KeyUp:
		d.Y = -1
	case tcell.KeyDown:
		d.Y = 1
	case tcell.KeyLeft:
		d.X = -1
	case tcell.KeyRight:
		d.X = 1
	default:
		return
	}
	if next := e.cursor.Add(d); e.grid.InBounds(next) {
		e.cursor = next
	}
}

func (e *Editor) handleRune(r rune) bool {
	switch r {
	case 'q':
		return true
	case ' ':
		e.edit(e.grid.ToggleWall, e.cursor)
	case 's':
		e.edit(e.grid.PlaceStart, e.cursor)
	case 'g':
		e.edit(e.grid.PlaceGoal, e.cursor)
	case 'c':
		e.grid.Clear()
		e.recompute()
	}
	return false
}

func (e *Editor) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && e.lastButtons&tcell.Button1 == 0
	e.lastButtons = buttons
	if !pressed {
		return
	}
	cell, ok := e.cellAt(ev.Position())
	if !ok {
		return
	}
	e.cursor = cell
	switch mods := ev.Modifiers(); {
	case mods&tcell.ModShift != 0:
		e.edit(e.grid.PlaceStart, cell)
	case mods&tcell.ModCtrl != 0:
		e.edit(e.grid.PlaceGoal, cell)
	default:
		e.edit(e.grid.ToggleWall, cell)
	}
}

// cellAt maps a screen position to a grid cell.
func (e *Editor) cellAt(x, y int) (gridpath.Coordinate, bool) {
	if x < originX || y < originY {
		return gridpath.Coordinate{}, false
	}
	c := gridpath.Coordinate{X: (x - originX) / cellWidth, Y: y - originY}
	return c, e.grid.InBounds(c)
}

func (e *Editor) edit(op func(gridpath.Coordinate) error, c gridpath.Coordinate) {
	if err := op(c); err != nil {
		e.logger.Warn("edit rejected", "cell", c.String(), "error", err)
		return
	}
	e.recompute()
}

// recompute re-runs the search whenever both endpoints are placed.
func (e *Editor) recompute() {
	e.result = gridpath.Result{}
	if _, _, err := e.grid.Endpoints(); err != nil {
		e.status = "place a start and a goal"
		return
	}
	result, err := gridpath.SearchGrid(context.Background(), e.grid, e.options...)
	if err != nil {
		e.logger.Error("search failed", "error", err)
		e.status = err.Error()
		return
	}
	e.result = result
	if result.Found {
		e.status = fmt.Sprintf("path: %d cells, cost %d, %d expanded", result.Path.Len(), result.TotalCost, result.ExpandedNodes)
	} else {
		e.status = fmt.Sprintf("no path, %d expanded", result.ExpandedNodes)
	}
}

// Path returns the most recently computed path (goal first).
func (e *Editor) Path() gridpath.Path { return e.result.Path }

// Status returns the status line text.
func (e *Editor) Status() string { return e.status }

// Cursor returns the keyboard cursor position.
func (e *Editor) Cursor() gridpath.Coordinate { return e.cursor }

// Draw renders the grid, path overlay, cursor and status line.
func (e *Editor) Draw() {
	palette := render.DefaultPalette
	background := tcell.StyleDefault.Background(tcell.GetColor(palette.Background))
	e.screen.SetStyle(background)
	e.screen.Clear()

	text := background.Foreground(tcell.ColorWhite)
	e.drawText(0, 0, text, helpLine)

	onPath := render.PathSet(e.result.Path)
	for y := 0; y < e.grid.Rows(); y++ {
		for x := 0; x < e.grid.Cols(); x++ {
			c := gridpath.Coordinate{X: x, Y: y}
			cell := palette.Classify(e.grid, onPath, c)
			style := tcell.StyleDefault.
				Background(tcell.GetColor(cell.Color)).
				Foreground(tcell.ColorBlack)
			trail := ' '
			if c == e.cursor {
				style = style.Underline(true)
				trail = '<'
			}
			sx := originX + x*cellWidth
			e.screen.SetContent(sx, originY+y, cell.Glyph, nil, style)
			e.screen.SetContent(sx+1, originY+y, trail, nil, style)
		}
	}
	e.drawText(0, originY+e.grid.Rows()+1, text, e.status)
	e.screen.Show()
}

func (e *Editor) drawText(x, y int, style tcell.Style, s string) {
	for i, r := range []rune(s) {
		e.screen.SetContent(x+i, y, r, nil, style)
	}
}
