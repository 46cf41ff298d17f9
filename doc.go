// Package gridpath finds shortest 4-connected paths on a rectangular grid
// of passable and impassable cells using A*.
//
// It exposes two main entry points:
//
//   - Search (and the FindPath shorthand): run the algorithm to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//
// A Grid is an owned value passed explicitly to every search. Paths are
// returned goal-first; Path.Reversed yields start-to-goal order. An
// unreachable goal is reported as an empty Path, never as an error.
//
// The heuristic is pluggable through the Estimator interface. The default is
// Euclidean distance with a large penalty for Wall cells. Walls are excluded
// from neighbour enumeration unless WithTraversableWalls is given, in which
// case the penalty alone steers the search around them. Excluding walls by
// default departs from the penalty-only formulation, in which a walled-in
// goal is still reached by crossing a wall.
package gridpath
