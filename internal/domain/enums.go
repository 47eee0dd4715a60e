package domain

import "fmt"

// Operator is one of the four arithmetic operations a formula node applies.
type Operator string

const (
	Add      Operator = "+"
	Subtract Operator = "-"
	Multiply Operator = "*"
	Divide   Operator = "/"
)

// Precedence reports binding strength: * and / bind tighter than + and -.
func (o Operator) Precedence() int {
	switch o {
	case Multiply, Divide:
		return 2
	default:
		return 1
	}
}

// Commutative reports whether operand order is irrelevant.
func (o Operator) Commutative() bool {
	return o == Add || o == Multiply
}

// Apply computes a o b. ok is false when the result is not an integer
// (inexact or zero division) or the operator is unknown.
func (o Operator) Apply(a, b int) (int, bool) {
	switch o {
	case Add:
		return a + b, true
	case Subtract:
		return a - b, true
	case Multiply:
		return a * b, true
	case Divide:
		if b == 0 || a%b != 0 {
			return 0, false
		}
		return a / b, true
	}
	return 0, false
}

// ParseOperators converts "+", "-", "*", "/" (also "x" and ":") into operators.
func ParseOperators(ss []string) ([]Operator, error) {
	out := make([]Operator, 0, len(ss))
	for _, s := range ss {
		switch s {
		case "+":
			out = append(out, Add)
		case "-":
			out = append(out, Subtract)
		case "*", "x":
			out = append(out, Multiply)
		case "/", ":":
			out = append(out, Divide)
		default:
			return nil, fmt.Errorf("%w: unknown operator %q", ErrInvalidSettings, s)
		}
	}
	return out, nil
}

// PyramidOperation is how a pyramid is presented. The solver always sums children.
type PyramidOperation int

const (
	PyramidAddition PyramidOperation = iota
	PyramidSubtraction
)

// Largest says whether the larger side of a comparison carries the digit.
type Largest string

const (
	LargestAlways Largest = "always"
	LargestNever  Largest = "never"
)

// StrategyTier limits which propagation rule a pyramid hint may use.
type StrategyTier int

const (
	StrategySum        StrategyTier = iota // parent from two known children
	StrategyDifference                     // child from parent and sibling
)
