package hint

import (
	"fmt"

	"svw.info/pyramath/internal/domain"
	"svw.info/pyramath/internal/ports"
)

// Propagation suggests the first open block that one solver rule fills from
// what the player can currently see.
type Propagation struct {
	Solver ports.Solver
}

func NewPropagation(s ports.Solver) *Propagation { return &Propagation{Solver: s} }

// Hint scans open blocks in id order. Visible blocks and the player's answers
// count as known; answers are not checked for correctness here.
func (h *Propagation) Hint(l *domain.PyramidLevel, max domain.StrategyTier) (domain.Hint, bool, error) {
	p := &l.Pyramid
	if err := p.Check(); err != nil {
		return domain.Hint{}, false, err
	}
	known := func(id int) (int, bool) {
		b := p.Blocks[id]
		if b.IsOpen {
			v, ok := l.Values[id]
			return v, ok
		}
		if b.Value == nil {
			return 0, false
		}
		return *b.Value, true
	}

	for _, b := range p.Blocks {
		if !b.IsOpen {
			continue
		}
		if _, ok := l.Values[b.ID]; ok {
			continue
		}
		if kids := h.Solver.ChildIndices(p, b.ID); len(kids) == 2 {
			lv, lok := known(kids[0])
			rv, rok := known(kids[1])
			if lok && rok {
				return domain.Hint{
					Message:  fmt.Sprintf("Block %d is the sum of block %d and block %d", b.ID, kids[0], kids[1]),
					BlockID:  b.ID,
					Value:    lv + rv,
					Sources:  kids,
					Strategy: domain.StrategySum,
				}, true, nil
			}
		}
		if max < domain.StrategyDifference {
			continue
		}
		for _, ps := range parents(p, b.ID) {
			pv, pok := known(ps[0])
			sv, sok := known(ps[1])
			if pok && sok {
				return domain.Hint{
					Message:  fmt.Sprintf("Block %d is block %d minus block %d", b.ID, ps[0], ps[1]),
					BlockID:  b.ID,
					Value:    pv - sv,
					Sources:  []int{ps[0], ps[1]},
					Strategy: domain.StrategyDifference,
				}, true, nil
			}
		}
	}
	return domain.Hint{}, false, nil
}

// parents returns {parent, sibling} pairs for block id, left parent first.
func parents(p *domain.Pyramid, id int) [][2]int {
	f := domain.FloorOf(id)
	if f == 0 || id >= len(p.Blocks) {
		return nil
	}
	pos := id - domain.FloorStart(f)
	up := domain.FloorStart(f - 1)
	var out [][2]int
	if pos > 0 {
		out = append(out, [2]int{up + pos - 1, id - 1})
	}
	if pos < f {
		out = append(out, [2]int{up + pos, id + 1})
	}
	return out
}
