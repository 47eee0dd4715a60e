// Package reward builds treasure-room calculations: a chain of hint formulas
// revealing one symbol each, followed by a main formula over every symbol.
package reward

import (
	"fmt"
	"slices"

	"github.com/zyedidia/generic/mapset"

	"svw.info/pyramath/internal/domain"
	"svw.info/pyramath/internal/formula"
	"svw.info/pyramath/internal/random"
)

// Engine generates RewardCalculations.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

// Generate picks distinct numbers, builds one hint per number in pick order,
// then the main formula over all symbols.
func (e *Engine) Generate(settings domain.RewardSettings, src random.Source) (*domain.RewardCalculation, error) {
	if err := checkSettings(settings); err != nil {
		return nil, err
	}

	picked, err := pickDistinct(settings.AmountSymbols, settings.NumberRange, src)
	if err != nil {
		return nil, err
	}
	sorted := slices.Clone(picked)
	slices.Sort(sorted)

	mapping := make(map[domain.SymbolID]int, len(sorted))
	byValue := make(map[int]domain.Operand, len(sorted))
	all := make([]domain.Operand, len(sorted))
	for i, v := range sorted {
		id := settings.SymbolIDs[i]
		mapping[id] = v
		byValue[v] = domain.Symbol(id, v)
		all[i] = byValue[v]
	}

	hints := make([]*domain.Formula, len(picked))
	for i, v := range picked {
		known := make([]domain.Operand, i)
		for k := 0; k < i; k++ {
			known[k] = byValue[picked[k]]
		}
		h, err := hint(byValue[v], known, settings.NumberRange, settings.Operators, src)
		if err != nil {
			return nil, fmt.Errorf("reward: hint %d: %w", i, err)
		}
		hints[i] = h
	}

	operands := append(slices.Clone(all), random.Pick(src, all))
	main, err := formula.CreateVerified(operands, settings.Operators, src)
	if err != nil {
		return nil, fmt.Errorf("reward: main formula: %w", err)
	}

	counts := make(map[domain.SymbolID]int, len(mapping))
	for _, f := range append(slices.Clone(hints), main) {
		for _, id := range formula.Symbols(f) {
			counts[id]++
		}
	}

	return &domain.RewardCalculation{
		PickedNumbers: picked,
		SymbolMapping: mapping,
		SymbolCounts:  counts,
		HintFormulas:  hints,
		MainFormula:   main,
	}, nil
}

// hint builds "anchor op literal = target". The first hint anchors on a
// literal, later ones on an already revealed symbol; the literal is solved
// from the target through the inverse operator. When no revealed symbol
// works (say a small target under + and *), a literal anchor is used instead.
func hint(target domain.Operand, known []domain.Operand, r domain.NumberRange, ops []domain.Operator, src random.Source) (*domain.Formula, error) {
	literal := func() domain.Operand { return domain.Number(random.IntRange(src, r.Min, r.Max)) }
	if len(known) > 0 {
		f, ok := solveHint(target, func() domain.Operand { return random.Pick(src, known) }, ops, src)
		if ok {
			return f, nil
		}
	}
	if f, ok := solveHint(target, literal, ops, src); ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: no hint for %d", domain.ErrExhaustedRetries, target.Value())
}

func solveHint(target domain.Operand, anchorOf func() domain.Operand, ops []domain.Operator, src random.Source) (*domain.Formula, bool) {
	for i := 0; i < formula.MaxAttempts; i++ {
		op := random.Pick(src, ops)
		anchor := anchorOf()
		lit, ok := inverse(op, anchor.Value(), target.Value())
		if !ok || lit <= 0 {
			continue
		}
		pair := []domain.Operand{anchor, domain.Number(lit)}
		if op.Commutative() {
			pair = random.Shuffle(pair, src)
		}
		return &domain.Formula{Left: pair[0], Right: pair[1], Operation: op, Result: target}, true
	}
	return nil, false
}

// inverse solves anchor op x = target for x.
func inverse(op domain.Operator, anchor, target int) (int, bool) {
	switch op {
	case domain.Add:
		return target - anchor, true
	case domain.Subtract:
		return anchor - target, true
	case domain.Multiply:
		return domain.Divide.Apply(target, anchor)
	case domain.Divide:
		return domain.Divide.Apply(anchor, target)
	}
	return 0, false
}

// pickDistinct draws n distinct integers from r by rejecting repeats.
func pickDistinct(n int, r domain.NumberRange, src random.Source) ([]int, error) {
	seen := mapset.New[int]()
	out := make([]int, 0, n)
	for draws := 0; len(out) < n; draws++ {
		if draws >= n*formula.MaxAttempts {
			return nil, fmt.Errorf("%w: %d distinct numbers in %d..%d", domain.ErrExhaustedRetries, n, r.Min, r.Max)
		}
		v := random.IntRange(src, r.Min, r.Max)
		if seen.Has(v) {
			continue
		}
		seen.Put(v)
		out = append(out, v)
	}
	return out, nil
}

func checkSettings(s domain.RewardSettings) error {
	switch {
	case s.AmountSymbols < 1:
		return fmt.Errorf("%w: amount of symbols %d", domain.ErrInvalidSettings, s.AmountSymbols)
	case !s.NumberRange.Valid() || s.NumberRange.Min < 1:
		return fmt.Errorf("%w: number range %d..%d", domain.ErrInvalidSettings, s.NumberRange.Min, s.NumberRange.Max)
	case s.NumberRange.Width() < s.AmountSymbols:
		return fmt.Errorf("%w: %d distinct numbers do not fit in %d..%d",
			domain.ErrInvalidSettings, s.AmountSymbols, s.NumberRange.Min, s.NumberRange.Max)
	case len(s.SymbolIDs) < s.AmountSymbols:
		return fmt.Errorf("%w: %d symbol ids for %d symbols", domain.ErrInvalidSettings, len(s.SymbolIDs), s.AmountSymbols)
	case len(s.Operators) == 0:
		return fmt.Errorf("%w: empty operator set", domain.ErrInvalidSettings)
	}
	ids := mapset.New[domain.SymbolID]()
	for _, id := range s.SymbolIDs[:s.AmountSymbols] {
		if ids.Has(id) {
			return fmt.Errorf("%w: duplicate symbol id %d", domain.ErrInvalidSettings, id)
		}
		ids.Put(id)
	}
	return nil
}
