package formula

import (
	"strconv"
	"strings"

	"svw.info/pyramath/internal/domain"
)

// AnswerMode controls how the result is rendered.
type AnswerMode int

const (
	AnswerShown   AnswerMode = iota // "... = 5"
	AnswerHidden                    // "... = ?"
	AnswerOmitted                   // "..."
)

// String renders f in infix notation with minimal parentheses. Symbols found
// in glyphs are rendered as their glyph, all others as their bound value.
//
// A nested operand is parenthesised when it binds looser than its parent, and
// always when it is the right side of - or /.
func String(f *domain.Formula, glyphs map[domain.SymbolID]string, mode AnswerMode) string {
	var sb strings.Builder
	writeNode(&sb, f, glyphs)
	switch mode {
	case AnswerShown:
		sb.WriteString(" = ")
		writeLeaf(&sb, f.Result, glyphs)
	case AnswerHidden:
		sb.WriteString(" = ?")
	}
	return sb.String()
}

func writeNode(sb *strings.Builder, f *domain.Formula, glyphs map[domain.SymbolID]string) {
	writeOperand(sb, f.Left, f.Operation, false, glyphs)
	sb.WriteByte(' ')
	sb.WriteString(string(f.Operation))
	sb.WriteByte(' ')
	writeOperand(sb, f.Right, f.Operation, true, glyphs)
}

func writeOperand(sb *strings.Builder, o domain.Operand, parent domain.Operator, right bool, glyphs map[domain.SymbolID]string) {
	if o.Kind != domain.KindFormula {
		writeLeaf(sb, o, glyphs)
		return
	}
	if !needsParens(o.Formula.Operation, parent, right) {
		writeNode(sb, o.Formula, glyphs)
		return
	}
	sb.WriteByte('(')
	writeNode(sb, o.Formula, glyphs)
	sb.WriteByte(')')
}

func needsParens(child, parent domain.Operator, right bool) bool {
	if child.Precedence() < parent.Precedence() {
		return true
	}
	return right && (parent == domain.Subtract || parent == domain.Divide)
}

func writeLeaf(sb *strings.Builder, o domain.Operand, glyphs map[domain.SymbolID]string) {
	if o.Kind == domain.KindSymbol {
		if g, ok := glyphs[o.Symbol]; ok {
			sb.WriteString(g)
			return
		}
	}
	sb.WriteString(strconv.Itoa(o.Value()))
}
