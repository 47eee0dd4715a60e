package generator

import "svw.info/pyramath/internal/ports"

// maxSelectionAttempts bounds how often the open-block selection is reshuffled.
const maxSelectionAttempts = 20

// PyramidGenerator creates pyramids whose open blocks stay solvable, checked
// with the provided Solver.
type PyramidGenerator struct {
	Solver ports.Solver
}

// NewPyramidGenerator wires a generator that uses the given solver for solvability checks.
func NewPyramidGenerator(s ports.Solver) *PyramidGenerator {
	return &PyramidGenerator{Solver: s}
}
