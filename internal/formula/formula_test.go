package formula_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/pyramath/internal/domain"
	"svw.info/pyramath/internal/formula"
	"svw.info/pyramath/internal/random"
)

var arith = []domain.Operator{domain.Add, domain.Subtract, domain.Multiply}

func TestCreateVerifiedKnownSeeds(t *testing.T) {
	cases := []struct {
		seed int64
		nums []int
		want string
	}{
		{3515, []int{6, 6, 1, 7}, "6 + 6 * 1 - 7 = 5"},
		{12345, []int{1, 2, 3, 4}, "1 * 2 * 3 * 4 = 24"},
	}
	for _, tc := range cases {
		f, err := formula.CreateVerified(formula.Numbers(tc.nums...), arith, random.New(tc.seed))
		require.NoError(t, err)
		assert.Equal(t, tc.want, formula.String(f, nil, formula.AnswerShown))
	}
}

func TestCreateVerifiedAlwaysPositiveInteger(t *testing.T) {
	all := []domain.Operator{domain.Add, domain.Subtract, domain.Multiply, domain.Divide}
	for seed := int64(0); seed < 300; seed++ {
		src := random.New(seed)
		n := random.IntRange(src, 2, 6)
		nums := make([]int, n)
		for i := range nums {
			nums[i] = random.IntRange(src, 1, 12)
		}
		f, err := formula.CreateVerified(formula.Numbers(nums...), all, src)
		require.NoError(t, err, "seed %d nums %v", seed, nums)

		v, ok := formula.Evaluate(f)
		require.True(t, ok, "seed %d: tree does not reproduce its result", seed)
		assert.Positive(t, v)
		assert.Equal(t, n, formula.Operands(f))
	}
}

func TestCreateVerifiedExhausts(t *testing.T) {
	_, err := formula.CreateVerified(formula.Numbers(3, 3), []domain.Operator{domain.Subtract}, random.New(1))
	assert.ErrorIs(t, err, domain.ErrExhaustedRetries)

	_, err = formula.CreateVerified(formula.Numbers(3, 3, 3), []domain.Operator{domain.Subtract}, random.New(1))
	assert.ErrorIs(t, err, domain.ErrExhaustedRetries)
}

func TestCreateRejectsBadInput(t *testing.T) {
	_, err := formula.CreateVerified(formula.Numbers(3), arith, random.New(1))
	assert.ErrorIs(t, err, domain.ErrInvalidSettings)

	_, err = formula.CreateVerified(formula.Numbers(3, 4), nil, random.New(1))
	assert.ErrorIs(t, err, domain.ErrInvalidSettings)
}

func TestStringParentheses(t *testing.T) {
	// 6 - ((2 + 8) / 2)
	sum := &domain.Formula{Left: domain.Number(2), Right: domain.Number(8), Operation: domain.Add, Result: domain.Number(10)}
	half := &domain.Formula{Left: domain.Nested(sum), Right: domain.Number(2), Operation: domain.Divide, Result: domain.Number(5)}
	top := &domain.Formula{Left: domain.Number(6), Right: domain.Nested(half), Operation: domain.Subtract, Result: domain.Number(1)}

	assert.Equal(t, "6 - ((2 + 8) / 2) = 1", formula.String(top, nil, formula.AnswerShown))
	assert.Equal(t, "6 - ((2 + 8) / 2) = ?", formula.String(top, nil, formula.AnswerHidden))
	assert.Equal(t, "6 - ((2 + 8) / 2)", formula.String(top, nil, formula.AnswerOmitted))

	// left-hand subtraction and right-hand addition need none
	diff := &domain.Formula{Left: domain.Number(9), Right: domain.Number(4), Operation: domain.Subtract, Result: domain.Number(5)}
	chain := &domain.Formula{Left: domain.Nested(diff), Right: domain.Nested(sum), Operation: domain.Add, Result: domain.Number(15)}
	assert.Equal(t, "9 - 4 + 2 + 8 = 15", formula.String(chain, nil, formula.AnswerShown))

	// lower precedence under * is wrapped on both sides
	prod := &domain.Formula{Left: domain.Nested(diff), Right: domain.Nested(sum), Operation: domain.Multiply, Result: domain.Number(50)}
	assert.Equal(t, "(9 - 4) * (2 + 8) = 50", formula.String(prod, nil, formula.AnswerShown))

	v, ok := formula.Evaluate(top)
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestStringGlyphs(t *testing.T) {
	f := &domain.Formula{
		Left:      domain.Symbol(7, 4),
		Right:     domain.Number(3),
		Operation: domain.Add,
		Result:    domain.Symbol(8, 7),
	}
	glyphs := map[domain.SymbolID]string{7: "ankh", 8: "eye"}
	assert.Equal(t, "ankh + 3 = eye", formula.String(f, glyphs, formula.AnswerShown))
	assert.Equal(t, "4 + 3 = 7", formula.String(f, nil, formula.AnswerShown))
	assert.Equal(t, []domain.SymbolID{7, 8}, formula.Symbols(f))
}

func TestSymbolOperandsKeepValues(t *testing.T) {
	ops := []domain.Operand{domain.Symbol(1, 2), domain.Symbol(2, 5), domain.Symbol(1, 2)}
	f, err := formula.CreateVerified(ops, []domain.Operator{domain.Add}, random.New(5))
	require.NoError(t, err)
	assert.Equal(t, 9, f.Result.Value())
	assert.ElementsMatch(t, []domain.SymbolID{1, 2, 1}, formula.Symbols(f))
}
