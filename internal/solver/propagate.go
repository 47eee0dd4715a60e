package solver

import (
	"svw.info/pyramath/internal/domain"
	"svw.info/pyramath/internal/ports"
)

// PropagationSolver fills a pyramid by repeatedly applying two rules until
// nothing changes:
//
//	parent unknown, both children known  -> parent = left + right
//	parent known, exactly one child known -> missing child = parent - known
//
// Every application fixes one more block, so the loop ends after at most
// len(Blocks) passes.
type PropagationSolver struct{}

func NewPropagationSolver() *PropagationSolver { return &PropagationSolver{} }

// ChildIndices returns the (up to two) blocks on the floor below id.
func (s *PropagationSolver) ChildIndices(p *domain.Pyramid, id int) []int {
	n := len(p.Blocks)
	if id < 0 || id >= n {
		return nil
	}
	f := domain.FloorOf(id)
	next := domain.FloorStart(f + 1)
	c := next + (id - domain.FloorStart(f))
	out := make([]int, 0, 2)
	for _, i := range [2]int{c, c + 1} {
		if i < n {
			out = append(out, i)
		}
	}
	return out
}

// Solve returns every block value, or false if some block stays undetermined.
func (s *PropagationSolver) Solve(p *domain.Pyramid, opts ports.SolveOptions) (map[int]int, bool) {
	n := len(p.Blocks)
	vals := make([]int, n)
	known := make([]bool, n)
	unknown := 0
	for i, b := range p.Blocks {
		if b.Value == nil || (opts.IgnoreOpen && b.IsOpen) {
			unknown++
			continue
		}
		vals[i] = *b.Value
		known[i] = true
	}

	for changed := true; changed && unknown > 0; {
		changed = false
		for i := 0; i < n; i++ {
			kids := s.ChildIndices(p, i)
			if len(kids) != 2 {
				continue
			}
			l, r := kids[0], kids[1]
			switch {
			case !known[i] && known[l] && known[r]:
				vals[i] = vals[l] + vals[r]
				known[i] = true
			case known[i] && !known[l] && known[r]:
				vals[l] = vals[i] - vals[r]
				known[l] = true
			case known[i] && known[l] && !known[r]:
				vals[r] = vals[i] - vals[l]
				known[r] = true
			default:
				continue
			}
			unknown--
			changed = true
		}
	}
	if unknown > 0 {
		return nil, false
	}

	out := make(map[int]int, n)
	for i, v := range vals {
		out[p.Blocks[i].ID] = v
	}
	return out, true
}

// Fill writes a full solution into p's blocks.
func Fill(p *domain.Pyramid, sol map[int]int) {
	for i := range p.Blocks {
		v := sol[p.Blocks[i].ID]
		p.Blocks[i].Value = &v
	}
}
