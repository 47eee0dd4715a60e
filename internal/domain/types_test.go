package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxOpenBlocks(t *testing.T) {
	cases := []struct{ floors, want int }{
		{1, 0},
		{3, 3},
		{4, 6},
		{8, 28},
		{9, 35},
		{10, 43},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MaxOpenBlocks(tc.floors), "floors %d", tc.floors)
	}
}

func TestFloorOf(t *testing.T) {
	for f := 0; f < 12; f++ {
		for i := FloorStart(f); i < FloorStart(f+1); i++ {
			require.Equal(t, f, FloorOf(i), "index %d", i)
		}
	}
}

func TestLevelSetOnlyOpen(t *testing.T) {
	p := NewPyramid(3, PyramidAddition)
	p.Blocks[1].IsOpen = true
	l := &PyramidLevel{Pyramid: *p}

	assert.True(t, l.Set(1, 7))
	assert.False(t, l.Set(2, 7))
	assert.False(t, l.Set(9, 7))
	assert.Equal(t, map[int]int{1: 7}, l.Values)

	l.Clear(1)
	assert.Empty(t, l.Values)
}

func TestMasked(t *testing.T) {
	p := NewPyramid(2, PyramidAddition)
	for i, v := range []int{5, 2, 3} {
		v := v
		p.Blocks[i].Value = &v
	}
	p.Blocks[0].IsOpen = true
	l := &PyramidLevel{Pyramid: *p, Values: map[int]int{0: 4}}

	m := l.Masked()
	assert.Nil(t, m.Pyramid.Blocks[0].Value)
	assert.Equal(t, 2, *m.Pyramid.Blocks[1].Value)
	assert.Equal(t, 5, *l.Pyramid.Blocks[0].Value, "original keeps its solution")

	m.Values[0] = 9
	assert.Equal(t, 4, l.Values[0])
}

func TestOperatorApply(t *testing.T) {
	cases := []struct {
		op   Operator
		a, b int
		want int
		ok   bool
	}{
		{Add, 2, 3, 5, true},
		{Subtract, 2, 3, -1, true},
		{Multiply, 4, 3, 12, true},
		{Divide, 12, 4, 3, true},
		{Divide, 12, 5, 0, false},
		{Divide, 12, 0, 0, false},
		{Operator("%"), 1, 1, 0, false},
	}
	for _, tc := range cases {
		got, ok := tc.op.Apply(tc.a, tc.b)
		assert.Equal(t, tc.ok, ok, "%d %s %d", tc.a, tc.op, tc.b)
		assert.Equal(t, tc.want, got)
	}
}

func TestParseOperators(t *testing.T) {
	ops, err := ParseOperators([]string{"+", "-", "x", ":"})
	require.NoError(t, err)
	assert.Equal(t, []Operator{Add, Subtract, Multiply, Divide}, ops)

	_, err = ParseOperators([]string{"^"})
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestPyramidCheck(t *testing.T) {
	require.NoError(t, NewPyramid(4, PyramidAddition).Check())

	cases := map[string]func(p *Pyramid){
		"NoFloors":    func(p *Pyramid) { p.FloorCount = 0; p.Blocks = nil },
		"ShortBlocks": func(p *Pyramid) { p.Blocks = p.Blocks[:5] },
		"ExtraBlock":  func(p *Pyramid) { p.Blocks = append(p.Blocks, Block{ID: 6}) },
		"NegativeID":  func(p *Pyramid) { p.Blocks[0].ID = -1 },
		"Swapped":     func(p *Pyramid) { p.Blocks[1], p.Blocks[2] = p.Blocks[2], p.Blocks[1] },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := NewPyramid(3, PyramidAddition)
			mutate(p)
			assert.ErrorIs(t, p.Check(), ErrInvalidSettings)
		})
	}
}
