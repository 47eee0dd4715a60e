package domain

import "encoding/json"

// SymbolID is an opaque glyph id standing in for a number until revealed.
type SymbolID int

// OperandKind tags the three operand variants.
type OperandKind uint8

const (
	KindNumber OperandKind = iota
	KindSymbol
	KindFormula
)

func (k OperandKind) String() string {
	switch k {
	case KindSymbol:
		return "symbol"
	case KindFormula:
		return "formula"
	default:
		return "number"
	}
}

// Operand is a literal, a symbol bound to its true value, or a nested formula.
type Operand struct {
	Kind    OperandKind
	Number  int // literal value, or the bound value of a symbol
	Symbol  SymbolID
	Formula *Formula
}

// Number wraps a literal.
func Number(v int) Operand { return Operand{Kind: KindNumber, Number: v} }

// Symbol wraps a symbol reference carrying its true value.
func Symbol(id SymbolID, v int) Operand { return Operand{Kind: KindSymbol, Symbol: id, Number: v} }

// Nested wraps a sub-formula.
func Nested(f *Formula) Operand { return Operand{Kind: KindFormula, Formula: f} }

// Value is the numeric value the operand stands for.
func (o Operand) Value() int {
	if o.Kind == KindFormula {
		return o.Formula.Result.Value()
	}
	return o.Number
}

// Formula is one binary node. Result is a number or, when hidden, a symbol.
type Formula struct {
	Left      Operand
	Right     Operand
	Operation Operator
	Result    Operand
}

type operandJSON struct {
	Kind    string    `json:"kind"`
	Value   int       `json:"value"`
	Symbol  *SymbolID `json:"symbol,omitempty"`
	Formula *Formula  `json:"formula,omitempty"`
}

// MarshalJSON encodes the operand with an explicit kind tag.
func (o Operand) MarshalJSON() ([]byte, error) {
	out := operandJSON{Kind: o.Kind.String(), Value: o.Value()}
	switch o.Kind {
	case KindSymbol:
		id := o.Symbol
		out.Symbol = &id
	case KindFormula:
		out.Formula = o.Formula
	}
	return json.Marshal(out)
}

// MarshalJSON encodes the node as {left, right, operation, result}.
func (f *Formula) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Left      Operand  `json:"left"`
		Right     Operand  `json:"right"`
		Operation Operator `json:"operation"`
		Result    Operand  `json:"result"`
	}{f.Left, f.Right, f.Operation, f.Result})
}
