package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/pyramath/internal/domain"
	"svw.info/pyramath/internal/ports"
	"svw.info/pyramath/internal/random"
	"svw.info/pyramath/internal/solver"
)

func settings(floors, open, blocked int) domain.PyramidSettings {
	return domain.PyramidSettings{
		FloorCount:        floors,
		OpenBlockCount:    open,
		BlockedBlockCount: blocked,
		NumberRange:       domain.NumberRange{Min: 1, Max: 10},
	}
}

func TestGenerateBlockCounts(t *testing.T) {
	g := NewPyramidGenerator(solver.NewPropagationSolver())
	cases := []struct {
		floors int
		blocks int
	}{
		{1, 1},
		{2, 3},
		{4, 10},
		{8, 36},
	}
	for _, tc := range cases {
		l, _, err := g.Generate(settings(tc.floors, 0, 0), random.New(12345))
		require.NoError(t, err)
		assert.Len(t, l.Pyramid.Blocks, tc.blocks, "floors=%d", tc.floors)
		assert.Equal(t, tc.floors, l.Pyramid.FloorCount)
	}
}

func TestGenerateSumsAndRange(t *testing.T) {
	s := solver.NewPropagationSolver()
	g := NewPyramidGenerator(s)
	l, _, err := g.Generate(settings(6, 8, 2), random.New(7))
	require.NoError(t, err)

	p := &l.Pyramid
	for i, b := range p.Blocks {
		require.NotNil(t, b.Value, "block %d", i)
		kids := s.ChildIndices(p, i)
		if len(kids) == 2 {
			assert.Equal(t, *p.Blocks[kids[0]].Value+*p.Blocks[kids[1]].Value, *b.Value, "block %d", i)
			continue
		}
		assert.True(t, *b.Value >= 1 && *b.Value <= 10, "bottom value %d", *b.Value)
	}
}

func TestGenerateOpenAndBlocked(t *testing.T) {
	s := solver.NewPropagationSolver()
	g := NewPyramidGenerator(s)

	for seed := int64(1); seed <= 25; seed++ {
		l, st, err := g.Generate(settings(5, 7, 3), random.New(seed))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, st.Attempts, 1)

		open, blocked := 0, 0
		for _, b := range l.Pyramid.Blocks {
			if b.IsOpen {
				open++
			}
			if b.IsBlocked {
				blocked++
				assert.False(t, b.IsOpen, "blocked block %d is also open", b.ID)
			}
		}
		assert.Equal(t, 7, open)
		assert.Equal(t, 3, blocked)

		sol, ok := s.Solve(&l.Pyramid, ports.SolveOptions{IgnoreOpen: true})
		require.True(t, ok, "seed %d: hidden blocks not recoverable", seed)
		for _, b := range l.Pyramid.Blocks {
			assert.Equal(t, *b.Value, sol[b.ID])
		}
	}
}

func TestGenerateAtStructuralBound(t *testing.T) {
	g := NewPyramidGenerator(solver.NewPropagationSolver())
	for _, floors := range []int{3, 4, 6, 8, 10} {
		max := domain.MaxOpenBlocks(floors)
		l, _, err := g.Generate(settings(floors, max, 0), random.New(int64(floors)))
		require.NoError(t, err, "floors=%d open=%d", floors, max)

		open := 0
		for _, b := range l.Pyramid.Blocks {
			if b.IsOpen {
				open++
			}
		}
		assert.Equal(t, max, open)
	}
}

func TestGenerateRestrictedFloors(t *testing.T) {
	g := NewPyramidGenerator(solver.NewPropagationSolver())
	st := settings(5, 4, 4)
	st.RestrictedOpenFloors = []int{4}
	st.RestrictedBlockedFloors = []int{0, 1}

	l, _, err := g.Generate(st, random.New(99))
	require.NoError(t, err)
	for _, b := range l.Pyramid.Blocks {
		f := domain.FloorOf(b.ID)
		if b.IsOpen {
			assert.NotEqual(t, 4, f, "open block %d on restricted floor", b.ID)
		}
		if b.IsBlocked {
			assert.NotContains(t, []int{0, 1}, f, "blocked block %d on restricted floor", b.ID)
		}
	}
}

func TestGenerateRejectsBadSettings(t *testing.T) {
	g := NewPyramidGenerator(solver.NewPropagationSolver())
	cases := []struct {
		name string
		s    domain.PyramidSettings
		err  error
	}{
		{"NoFloors", settings(0, 0, 0), domain.ErrInvalidSettings},
		{"InvertedRange", domain.PyramidSettings{FloorCount: 3, NumberRange: domain.NumberRange{Min: 5, Max: 1}}, domain.ErrInvalidSettings},
		{"TooManyOpen", settings(4, 7, 0), domain.ErrUnsolvableConfiguration},
		{"TallOverflow", settings(10, domain.BlockCount(10)-10, 0), domain.ErrUnsolvableConfiguration},
		{"TooManyBlocked", settings(3, 3, 4), domain.ErrUnsolvableConfiguration},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := g.Generate(tc.s, random.New(1))
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	g := NewPyramidGenerator(solver.NewPropagationSolver())
	a, _, err := g.Generate(settings(7, 12, 2), random.New(4242))
	require.NoError(t, err)
	b, _, err := g.Generate(settings(7, 12, 2), random.New(4242))
	require.NoError(t, err)
	assert.Equal(t, a.Pyramid, b.Pyramid)
}
