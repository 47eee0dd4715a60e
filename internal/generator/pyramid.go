package generator

import (
	"fmt"
	"slices"
	"time"

	"github.com/zyedidia/generic/mapset"

	"svw.info/pyramath/internal/domain"
	"svw.info/pyramath/internal/ports"
	"svw.info/pyramath/internal/random"
	"svw.info/pyramath/internal/solver"
)

// Generate creates a pyramid level: a random bottom floor, every other block
// back-filled, then open and blocked blocks chosen so the visible blocks still
// determine every hidden one.
func (g *PyramidGenerator) Generate(settings domain.PyramidSettings, src random.Source) (*domain.PyramidLevel, ports.Stats, error) {
	start := time.Now()
	if err := checkSettings(settings); err != nil {
		return nil, ports.Stats{}, err
	}
	n := settings.FloorCount

	// 1) bottom floor, 2) propagate upwards
	p := domain.NewPyramid(n, settings.Operation)
	for i := domain.FloorStart(n - 1); i < len(p.Blocks); i++ {
		v := random.IntRange(src, settings.NumberRange.Min, settings.NumberRange.Max)
		p.Blocks[i].Value = &v
	}
	full, ok := g.Solver.Solve(p, ports.SolveOptions{})
	if !ok {
		return nil, ports.Stats{}, fmt.Errorf("generator: bottom floor did not determine pyramid")
	}
	solver.Fill(p, full)

	// 3) open blocks, reshuffling until the requested count stays solvable
	candidates := onFloorsExcept(n, settings.RestrictedOpenFloors)
	var open mapset.Set[int]
	attempts := 0
	for {
		attempts++
		if attempts > maxSelectionAttempts {
			return nil, ports.Stats{Attempts: attempts - 1, Duration: time.Since(start)},
				fmt.Errorf("%w: %d open blocks on %d floors", domain.ErrExhaustedRetries, settings.OpenBlockCount, n)
		}
		open = g.pickOpen(p, random.Shuffle(candidates, src), settings.OpenBlockCount)
		if open.Size() == settings.OpenBlockCount {
			break
		}
	}
	for i := range p.Blocks {
		p.Blocks[i].IsOpen = open.Has(i)
	}

	// 4) decorative blocked blocks, never open
	blockedPool := make([]int, 0, len(p.Blocks))
	for _, id := range onFloorsExcept(n, settings.RestrictedBlockedFloors) {
		if !open.Has(id) {
			blockedPool = append(blockedPool, id)
		}
	}
	for i, id := range random.Shuffle(blockedPool, src) {
		if i >= settings.BlockedBlockCount {
			break
		}
		p.Blocks[id].IsBlocked = true
	}

	l := &domain.PyramidLevel{Pyramid: *p, Values: make(map[int]int)}
	return l, ports.Stats{Attempts: attempts, Duration: time.Since(start)}, nil
}

// pickOpen greedily hides blocks in order, undoing any hide that leaves the
// pyramid unsolvable from what remains visible.
func (g *PyramidGenerator) pickOpen(p *domain.Pyramid, order []int, want int) mapset.Set[int] {
	open := mapset.New[int]()
	for _, id := range order {
		if open.Size() == want {
			break
		}
		p.Blocks[id].IsOpen = true
		if _, ok := g.Solver.Solve(p, ports.SolveOptions{IgnoreOpen: true}); ok {
			open.Put(id)
			continue
		}
		p.Blocks[id].IsOpen = false
	}
	for i := range p.Blocks {
		p.Blocks[i].IsOpen = false
	}
	return open
}

func checkSettings(s domain.PyramidSettings) error {
	switch {
	case s.FloorCount < 1:
		return fmt.Errorf("%w: floor count %d", domain.ErrInvalidSettings, s.FloorCount)
	case !s.NumberRange.Valid():
		return fmt.Errorf("%w: number range %d..%d", domain.ErrInvalidSettings, s.NumberRange.Min, s.NumberRange.Max)
	case s.OpenBlockCount < 0 || s.BlockedBlockCount < 0:
		return fmt.Errorf("%w: negative block count", domain.ErrInvalidSettings)
	}
	if limit := domain.MaxOpenBlocks(s.FloorCount); s.OpenBlockCount > limit {
		return fmt.Errorf("%w: %d open blocks, at most %d on %d floors",
			domain.ErrUnsolvableConfiguration, s.OpenBlockCount, limit, s.FloorCount)
	}
	if total := domain.BlockCount(s.FloorCount); s.OpenBlockCount+s.BlockedBlockCount > total {
		return fmt.Errorf("%w: %d open and %d blocked exceed %d blocks",
			domain.ErrUnsolvableConfiguration, s.OpenBlockCount, s.BlockedBlockCount, total)
	}
	return nil
}

// onFloorsExcept lists block ids whose floor is not in skip.
func onFloorsExcept(floors int, skip []int) []int {
	ids := make([]int, 0, domain.BlockCount(floors))
	for f := 0; f < floors; f++ {
		if slices.Contains(skip, f) {
			continue
		}
		for i := domain.FloorStart(f); i < domain.FloorStart(f+1); i++ {
			ids = append(ids, i)
		}
	}
	return ids
}
