package validator

import (
	"fmt"

	"svw.info/pyramath/internal/domain"
	"svw.info/pyramath/internal/ports"
)

var errUnsolvable = fmt.Errorf("%w: pyramid is not solvable from its visible blocks", domain.ErrUnsolvableConfiguration)

// PyramidValidator compares player answers with the solution recomputed from
// visible blocks only.
type PyramidValidator struct {
	Solver ports.Solver
}

func New(s ports.Solver) *PyramidValidator { return &PyramidValidator{Solver: s} }

// Complete reports whether every open block has an answer. Correctness is not checked.
func (v *PyramidValidator) Complete(l *domain.PyramidLevel) bool {
	for _, b := range l.Pyramid.Blocks {
		if !b.IsOpen {
			continue
		}
		if _, ok := l.Values[b.ID]; !ok {
			return false
		}
	}
	return true
}

// Validate returns the ids of filled open blocks whose answer is wrong.
func (v *PyramidValidator) Validate(l *domain.PyramidLevel) (bool, []int, error) {
	if err := l.Pyramid.Check(); err != nil {
		return false, nil, err
	}
	sol, ok := v.Solver.Solve(&l.Pyramid, ports.SolveOptions{IgnoreOpen: true})
	if !ok {
		return false, nil, errUnsolvable
	}
	conf := make([]int, 0, 4)
	for _, b := range l.Pyramid.Blocks {
		if !b.IsOpen {
			continue
		}
		got, filled := l.Values[b.ID]
		if filled && got != sol[b.ID] {
			conf = append(conf, b.ID)
		}
	}
	return len(conf) == 0, conf, nil
}
