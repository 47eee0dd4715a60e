// Package formula builds random arithmetic expression trees over a multiset
// of operands and renders them in infix notation.
//
// Create splits a shuffled operand list at a random point, builds a verified
// sub-formula for each half and joins them with a random operator.
// CreateVerified repeats Create until the result is a positive integer.
package formula

import (
	"errors"
	"fmt"

	"svw.info/pyramath/internal/domain"
	"svw.info/pyramath/internal/random"
)

// MaxAttempts bounds CreateVerified.
const MaxAttempts = 100

// errRejected marks a formula whose result is not a positive integer.
var errRejected = errors.New("formula: result is not a positive integer")

// Create builds one random formula. It fails with a rejection when the top
// level result is not a positive integer; nested halves are always verified.
func Create(operands []domain.Operand, ops []domain.Operator, src random.Source) (*domain.Formula, error) {
	if err := checkInput(operands, ops); err != nil {
		return nil, err
	}
	if len(operands) == 2 {
		return combine(operands[0], operands[1], random.Pick(src, ops))
	}

	shuffled := random.Shuffle(operands, src)
	split := random.IntN(src, len(shuffled)-1) + 1
	left, err := side(shuffled[:split], ops, src)
	if err != nil {
		return nil, err
	}
	right, err := side(shuffled[split:], ops, src)
	if err != nil {
		return nil, err
	}
	return combine(left, right, random.Pick(src, ops))
}

// CreateVerified retries Create until its result is a positive integer. After
// MaxAttempts rejections it returns domain.ErrExhaustedRetries.
func CreateVerified(operands []domain.Operand, ops []domain.Operator, src random.Source) (*domain.Formula, error) {
	for i := 0; i < MaxAttempts; i++ {
		f, err := Create(operands, ops, src)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, errRejected) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: no positive integer formula over %d operands with %v",
		domain.ErrExhaustedRetries, len(operands), ops)
}

// Numbers wraps plain literals as operands.
func Numbers(vs ...int) []domain.Operand {
	out := make([]domain.Operand, len(vs))
	for i, v := range vs {
		out[i] = domain.Number(v)
	}
	return out
}

func side(operands []domain.Operand, ops []domain.Operator, src random.Source) (domain.Operand, error) {
	if len(operands) == 1 {
		return operands[0], nil
	}
	f, err := CreateVerified(operands, ops, src)
	if err != nil {
		return domain.Operand{}, err
	}
	return domain.Nested(f), nil
}

func combine(left, right domain.Operand, op domain.Operator) (*domain.Formula, error) {
	v, ok := op.Apply(left.Value(), right.Value())
	if !ok || v <= 0 {
		return nil, errRejected
	}
	return &domain.Formula{Left: left, Right: right, Operation: op, Result: domain.Number(v)}, nil
}

func checkInput(operands []domain.Operand, ops []domain.Operator) error {
	if len(operands) < 2 {
		return fmt.Errorf("%w: need at least two operands, got %d", domain.ErrInvalidSettings, len(operands))
	}
	if len(ops) == 0 {
		return fmt.Errorf("%w: empty operator set", domain.ErrInvalidSettings)
	}
	return nil
}

// Evaluate recomputes f bottom-up. ok is false if any node does not reproduce
// its stored result or divides inexactly.
func Evaluate(f *domain.Formula) (int, bool) {
	l, ok := operandValue(f.Left)
	if !ok {
		return 0, false
	}
	r, ok := operandValue(f.Right)
	if !ok {
		return 0, false
	}
	v, ok := f.Operation.Apply(l, r)
	if !ok || v != f.Result.Value() {
		return 0, false
	}
	return v, true
}

func operandValue(o domain.Operand) (int, bool) {
	switch o.Kind {
	case domain.KindFormula:
		return Evaluate(o.Formula)
	default:
		return o.Number, true
	}
}

// Walk visits every operand of f depth-first, left to right, then f's result.
func Walk(f *domain.Formula, fn func(domain.Operand)) {
	for _, o := range [2]domain.Operand{f.Left, f.Right} {
		if o.Kind == domain.KindFormula {
			Walk(o.Formula, fn)
			continue
		}
		fn(o)
	}
	fn(f.Result)
}

// Symbols lists every symbol reference in f, repeats included, operands
// before a symbolic result. Results of nested nodes are never symbolic.
func Symbols(f *domain.Formula) []domain.SymbolID {
	var out []domain.SymbolID
	Walk(f, func(o domain.Operand) {
		if o.Kind == domain.KindSymbol {
			out = append(out, o.Symbol)
		}
	})
	return out
}

// Operands counts leaf operands.
func Operands(f *domain.Formula) int {
	n := 0
	for _, o := range [2]domain.Operand{f.Left, f.Right} {
		if o.Kind == domain.KindFormula {
			n += Operands(o.Formula)
			continue
		}
		n++
	}
	return n
}
