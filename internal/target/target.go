// Package target searches for a formula that reaches one of several target
// values from a multiset of required numbers.
package target

import (
	"slices"

	"github.com/zyedidia/generic/mapset"

	"svw.info/pyramath/internal/domain"
	"svw.info/pyramath/internal/random"
)

const (
	DefaultSampleSize = 5
	DefaultMaxDepth   = 3

	// MaxExtra is the largest optional extra number tried.
	MaxExtra = 10
	// maxRepeat is how often one picked number may appear in a pool.
	maxRepeat = 3
	// maxPool bounds the pool a memo key can hold; it caps MaxDepth.
	maxPool = 16
)

// Searcher holds the sampling and depth budget of a search.
type Searcher struct {
	SampleSize int
	MaxDepth   int
}

// NewSearcher returns a searcher with the default budget.
func NewSearcher() *Searcher {
	return &Searcher{SampleSize: DefaultSampleSize, MaxDepth: DefaultMaxDepth}
}

// Find runs FindWithOptionalExtra with the searcher's budget.
func (s *Searcher) Find(picked []int, ops []domain.Operator, targets []int, src random.Source) (*domain.Formula, bool) {
	f := FindWithOptionalExtra(picked, ops, targets, src, s.SampleSize, s.MaxDepth)
	return f, f != nil
}

// FindWithOptionalExtra samples pools where every picked number appears one
// to three times, first without an extra number and then with each extra in
// 1..MaxExtra. Every pool member must be used. It returns nil when no
// extra, pool and target combination succeeds within the budget.
func FindWithOptionalExtra(picked []int, ops []domain.Operator, targets []int, src random.Source, sampleSize, maxDepth int) *domain.Formula {
	if len(picked) == 0 || len(ops) == 0 || len(targets) == 0 {
		return nil
	}
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	maxDepth = min(maxDepth, maxPool-1)

	for extra := 0; extra <= MaxExtra; extra++ {
		for s := 0; s < sampleSize; s++ {
			pool := samplePool(picked, extra, src)
			for _, t := range targets {
				sr := &search{ops: ops, target: t, maxDepth: maxDepth, failed: mapset.New[poolKey]()}
				if f := sr.run(pool, 0); f != nil {
					return f
				}
			}
		}
	}
	return nil
}

// samplePool shuffles picked and repeats each number one to three times.
func samplePool(picked []int, extra int, src random.Source) []domain.Operand {
	var pool []domain.Operand
	for _, v := range random.Shuffle(picked, src) {
		n := random.IntRange(src, 1, maxRepeat)
		for k := 0; k < n; k++ {
			pool = append(pool, domain.Number(v))
		}
	}
	if extra > 0 {
		pool = append(pool, domain.Number(extra))
	}
	return pool
}

// poolKey identifies a pool by its sorted values and the target.
type poolKey struct {
	target int
	n      int
	values [maxPool]int
}

func keyOf(pool []domain.Operand, target int) poolKey {
	k := poolKey{target: target, n: len(pool)}
	for i, o := range pool {
		k.values[i] = o.Value()
	}
	slices.Sort(k.values[:k.n])
	return k
}

// search is one memoized pairwise reduction towards a single target. It
// lives for a single call.
type search struct {
	ops      []domain.Operator
	target   int
	maxDepth int
	failed   mapset.Set[poolKey]
}

func (s *search) run(pool []domain.Operand, depth int) *domain.Formula {
	if len(pool) == 1 {
		if pool[0].Kind == domain.KindFormula && pool[0].Value() == s.target {
			return pool[0].Formula
		}
		return nil
	}
	// each step merges two members, so the pool must shrink to one in time
	if len(pool)-1 > s.maxDepth-depth {
		return nil
	}
	key := keyOf(pool, s.target)
	if s.failed.Has(key) {
		return nil
	}

	for i := 0; i < len(pool); i++ {
		for j := i + 1; j < len(pool); j++ {
			rest := make([]domain.Operand, 0, len(pool)-1)
			rest = append(rest, domain.Operand{})
			for k, o := range pool {
				if k != i && k != j {
					rest = append(rest, o)
				}
			}
			for _, op := range s.ops {
				pairs := [][2]domain.Operand{{pool[i], pool[j]}, {pool[j], pool[i]}}
				if op.Commutative() {
					pairs = pairs[:1]
				}
				for _, p := range pairs {
					v, ok := op.Apply(p[0].Value(), p[1].Value())
					if !ok || v <= 0 {
						continue
					}
					rest[0] = domain.Nested(&domain.Formula{Left: p[0], Right: p[1], Operation: op, Result: domain.Number(v)})
					if f := s.run(rest, depth+1); f != nil {
						return f
					}
				}
			}
		}
	}
	s.failed.Put(key)
	return nil
}
