package gridpath

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned when a coordinate lies outside the grid extent.
var ErrOutOfBounds = errors.New("coordinate out of bounds")

// ErrInvalidQuery is returned when a search is requested with a missing or
// out-of-bounds start or goal.
var ErrInvalidQuery = errors.New("invalid search query")

// ErrEmptyFrontier is returned when the best element of an empty frontier is requested.
var ErrEmptyFrontier = errors.New("frontier is empty")

// OutOfBoundsError reports the offending coordinate together with the grid extent.
type OutOfBoundsError struct {
	Coord Coordinate
	Rows  int
	Cols  int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%s outside %dx%d grid", e.Coord, e.Rows, e.Cols)
}

func (e *OutOfBoundsError) Unwrap() error { return ErrOutOfBounds }

// QueryError describes why a search query was rejected.
type QueryError struct {
	Reason string
}

func (e *QueryError) Error() string {
	return "invalid search query: " + e.Reason
}

func (e *QueryError) Unwrap() error { return ErrInvalidQuery }
