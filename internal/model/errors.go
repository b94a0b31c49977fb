package model

import "github.com/rotisserie/eris"

// ErrDomain marks physically or geometrically invalid input: non-positive
// frequencies or distances, out-of-range coordinates, degenerate polygons.
// Callers match it with eris.Is. Degenerate-but-legal inputs (no towers,
// empty gap lists, zero-area polygons) are not domain errors and produce
// well-defined empty or zero results instead.
var ErrDomain = eris.New("invalid domain input")
