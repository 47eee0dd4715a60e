package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"svw.info/pyramath/internal/config"
	"svw.info/pyramath/internal/domain"
	"svw.info/pyramath/internal/ports"
	"svw.info/pyramath/internal/random"
)

type Service struct {
	Generator ports.Generator
	Validator ports.Validator
	Hinter    ports.Hinter
	Rewards   ports.RewardGenerator
	Compares  ports.CompareGenerator
	Targets   ports.TargetFinder
	Catalogs  ports.CatalogStore
	Log       *slog.Logger

	mu      sync.Mutex
	catalog *config.Catalog
}

func NewService(g ports.Generator, v ports.Validator, h ports.Hinter, r ports.RewardGenerator,
	c ports.CompareGenerator, t ports.TargetFinder, cs ports.CatalogStore, log *slog.Logger) *Service {
	return &Service{Generator: g, Validator: v, Hinter: h, Rewards: r, Compares: c, Targets: t, Catalogs: cs, Log: log}
}

var errNotConfigured = errors.New("usecase dependency not configured")

// maxStreams bounds the streams one level or run may try when a generator
// exhausts its retries.
const maxStreams = 3

// stream returns the k-th stream of index under root. Stream 0 is the plain
// level stream, so a level that succeeds on it never changes.
func stream(root int64, index, k int) *random.Stream {
	if k == 0 {
		return random.LevelStream(root, index)
	}
	return random.LevelStream(random.DeriveSeed(root, index), k)
}

// reseed runs gen on up to maxStreams derived streams and stops at the first
// result that is not ErrExhaustedRetries. It returns the stream index used.
func reseed[T any](log *slog.Logger, what string, root int64, index int, gen func(random.Source) (T, error)) (T, int, error) {
	var (
		v   T
		err error
	)
	for k := 0; k < maxStreams; k++ {
		v, err = gen(stream(root, index, k))
		if !errors.Is(err, domain.ErrExhaustedRetries) {
			return v, k, err
		}
		log.Warn(what+" exhausted retries", "root", root, "index", index, "stream", k, "err", err)
	}
	return v, maxStreams - 1, err
}

func (u *Service) log() *slog.Logger {
	if u.Log == nil {
		return slog.Default()
	}
	return u.Log
}

// Catalog loads the catalog once and serves the cached copy afterwards.
func (u *Service) Catalog(ctx context.Context) (*config.Catalog, error) {
	if u.Catalogs == nil {
		return nil, errNotConfigured
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.catalog != nil {
		return u.catalog, nil
	}
	c, err := u.Catalogs.Load(ctx)
	if err != nil {
		return nil, err
	}
	u.catalog = c
	return c, nil
}

// GeneratePyramid builds level of a journey from the stream derived from rootSeed.
func (u *Service) GeneratePyramid(ctx context.Context, journeyID string, rootSeed int64, level int) (*domain.PyramidLevel, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	cat, err := u.Catalog(ctx)
	if err != nil {
		return nil, ports.Stats{}, err
	}
	j, err := cat.Journey(journeyID)
	if err != nil {
		return nil, ports.Stats{}, err
	}
	settings, err := j.PyramidSettings(level)
	if err != nil {
		return nil, ports.Stats{}, err
	}
	l, st, err := u.Generator.Generate(settings, random.LevelStream(rootSeed, level))
	if err != nil {
		u.log().Warn("pyramid generation failed", "journey", journeyID, "root", rootSeed, "level", level, "err", err)
		return nil, st, err
	}
	u.log().Debug("pyramid generated",
		"journey", journeyID,
		"root", rootSeed,
		"level", level,
		"seed", random.DeriveSeed(rootSeed, level),
		"floors", settings.FloorCount,
		"open", settings.OpenBlockCount,
		"attempts", st.Attempts,
		"dur", st.Duration,
	)
	return l, st, nil
}

// GenerateReward builds the calculation for one run of a tomb. A run whose
// stream exhausts its retries is retried on derived streams.
func (u *Service) GenerateReward(ctx context.Context, tombID string, rootSeed int64, run int) (*domain.RewardCalculation, error) {
	if u.Rewards == nil {
		return nil, errNotConfigured
	}
	cat, err := u.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	t, err := cat.Tomb(tombID)
	if err != nil {
		return nil, err
	}
	settings, err := t.RewardSettings()
	if err != nil {
		return nil, err
	}
	rc, k, err := reseed(u.log(), "reward", rootSeed, run, func(src random.Source) (*domain.RewardCalculation, error) {
		return u.Rewards.Generate(settings, src)
	})
	if err != nil {
		u.log().Warn("reward generation failed", "tomb", tombID, "root", rootSeed, "run", run, "err", err)
		return nil, err
	}
	u.log().Debug("reward generated",
		"tomb", tombID,
		"root", rootSeed,
		"run", run,
		"seed", random.DeriveSeed(rootSeed, run),
		"stream", k,
		"picked", rc.PickedNumbers,
	)
	return rc, nil
}

// GenerateCompare builds one comparison level of a stage, retrying on derived
// streams like GenerateReward.
func (u *Service) GenerateCompare(ctx context.Context, stageID string, rootSeed int64, level int, req domain.CompareRequirements) (*domain.CompareLevel, error) {
	if u.Compares == nil {
		return nil, errNotConfigured
	}
	cat, err := u.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	s, err := cat.CompareStage(stageID)
	if err != nil {
		return nil, err
	}
	settings, err := s.CompareSettings()
	if err != nil {
		return nil, err
	}
	cl, k, err := reseed(u.log(), "compare", rootSeed, level, func(src random.Source) (*domain.CompareLevel, error) {
		return u.Compares.Generate(settings, req, src)
	})
	if err != nil {
		u.log().Warn("compare generation failed", "stage", stageID, "root", rootSeed, "level", level, "err", err)
		return nil, err
	}
	u.log().Debug("compare generated",
		"stage", stageID,
		"root", rootSeed,
		"level", level,
		"seed", random.DeriveSeed(rootSeed, level),
		"stream", k,
		"digit", req.Digit,
		"largest", req.Largest,
	)
	return cl, nil
}

// TargetRequest describes one target search.
type TargetRequest struct {
	Picked    []int
	Operators []domain.Operator
	Targets   []int
	Seed      int64
}

// FindTarget searches a formula reaching one of req.Targets. found is false
// when the search budget ran out.
func (u *Service) FindTarget(ctx context.Context, req TargetRequest) (*domain.Formula, bool, error) {
	if u.Targets == nil {
		return nil, false, errNotConfigured
	}
	f, ok := u.Targets.Find(req.Picked, req.Operators, req.Targets, random.New(req.Seed))
	u.log().Debug("target search", "picked", req.Picked, "targets", req.Targets, "seed", req.Seed, "found", ok)
	return f, ok, nil
}

func (u *Service) Validate(ctx context.Context, l *domain.PyramidLevel) (bool, []int, error) {
	if u.Validator == nil {
		return false, nil, errNotConfigured
	}
	return u.Validator.Validate(l)
}

// Complete reports whether every open block of l has an answer.
func (u *Service) Complete(ctx context.Context, l *domain.PyramidLevel) (bool, error) {
	if u.Validator == nil {
		return false, errNotConfigured
	}
	if err := l.Pyramid.Check(); err != nil {
		return false, err
	}
	return u.Validator.Complete(l), nil
}

func (u *Service) Hint(ctx context.Context, l *domain.PyramidLevel, max domain.StrategyTier) (domain.Hint, bool, error) {
	if u.Hinter == nil {
		return domain.Hint{}, false, errNotConfigured
	}
	return u.Hinter.Hint(l, max)
}
