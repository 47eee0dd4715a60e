package ports

import (
	"context"
	"time"

	"svw.info/pyramath/internal/config"
	"svw.info/pyramath/internal/domain"
	"svw.info/pyramath/internal/random"
)

// Stats captures how much work a generation took.
type Stats struct {
	Attempts int
	Duration time.Duration
}

// SolveOptions controls which blocks the solver may read.
type SolveOptions struct {
	// IgnoreOpen treats open blocks as unknown even if they carry a value.
	IgnoreOpen bool
}

// Solver propagates pyramid values.
type Solver interface {
	ChildIndices(p *domain.Pyramid, id int) []int
	Solve(p *domain.Pyramid, opts SolveOptions) (map[int]int, bool)
}

// Generator creates pyramid levels from settings and a random source.
type Generator interface {
	Generate(settings domain.PyramidSettings, src random.Source) (*domain.PyramidLevel, Stats, error)
}

// Validator checks player answers against the recomputed solution.
type Validator interface {
	Validate(l *domain.PyramidLevel) (ok bool, conflicts []int, err error)
	Complete(l *domain.PyramidLevel) bool
}

// Hinter returns the next deducible open block up to a max strategy tier.
type Hinter interface {
	Hint(l *domain.PyramidLevel, max domain.StrategyTier) (domain.Hint, bool, error)
}

// RewardGenerator builds treasure-room calculations.
type RewardGenerator interface {
	Generate(settings domain.RewardSettings, src random.Source) (*domain.RewardCalculation, error)
}

// CompareGenerator builds comparison levels.
type CompareGenerator interface {
	Generate(settings domain.CompareSettings, req domain.CompareRequirements, src random.Source) (*domain.CompareLevel, error)
}

// TargetFinder searches a formula reaching one of several targets.
type TargetFinder interface {
	Find(picked []int, ops []domain.Operator, targets []int, src random.Source) (*domain.Formula, bool)
}

// CatalogStore loads journey, tomb and compare-stage configuration.
type CatalogStore interface {
	Load(ctx context.Context) (*config.Catalog, error)
}
