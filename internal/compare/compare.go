// Package compare generates pairs of formulas whose results obey a strict
// ordering and a decimal digit rule.
package compare

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/zyedidia/generic/mapset"

	"svw.info/pyramath/internal/domain"
	"svw.info/pyramath/internal/formula"
	"svw.info/pyramath/internal/random"
)

const (
	maxAttempts   = 100
	widenAfter    = 50 // attempts before the operand count starts growing
	widenInterval = 10
)

// Generator produces CompareLevels.
type Generator struct{}

func NewGenerator() *Generator { return &Generator{} }

// Generate builds settings.CompareAmount independent comparisons.
func (g *Generator) Generate(settings domain.CompareSettings, req domain.CompareRequirements, src random.Source) (*domain.CompareLevel, error) {
	if err := checkSettings(settings, req); err != nil {
		return nil, err
	}
	level := &domain.CompareLevel{Requirements: req, Comparisons: make([]domain.Comparison, 0, settings.CompareAmount)}
	for i := 0; i < settings.CompareAmount; i++ {
		c, err := comparison(settings, req, src)
		if err != nil {
			return nil, fmt.Errorf("compare: comparison %d: %w", i, err)
		}
		level.Comparisons = append(level.Comparisons, c)
	}
	return level, nil
}

func comparison(settings domain.CompareSettings, req domain.CompareRequirements, src random.Source) (domain.Comparison, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		symbols := symbolsAt(settings.NumberOfSymbols, attempt)
		leftLarger := src.Float64() < 0.5
		// an unsatisfiable operand draw only costs this attempt
		left, err := formula.CreateVerified(operands(symbols, settings.NumberRange, src), settings.Operators, src)
		if errors.Is(err, domain.ErrExhaustedRetries) {
			continue
		}
		if err != nil {
			return domain.Comparison{}, err
		}
		right, err := formula.CreateVerified(operands(symbols, settings.NumberRange, src), settings.Operators, src)
		if errors.Is(err, domain.ErrExhaustedRetries) {
			continue
		}
		if err != nil {
			return domain.Comparison{}, err
		}
		c := domain.Comparison{Left: left, Right: right}
		if Satisfies(c, leftLarger, req) {
			return c, nil
		}
	}
	return domain.Comparison{}, fmt.Errorf("%w: comparison for digit %d (%s)", domain.ErrExhaustedRetries, req.Digit, req.Largest)
}

// symbolsAt is the per-side operand count for a 1-based attempt: base up to
// widenAfter, then one more every widenInterval attempts.
func symbolsAt(base, attempt int) int {
	if attempt <= widenAfter {
		return base
	}
	return base + (attempt-widenAfter)/widenInterval
}

// Satisfies reports whether c has the intended side strictly larger and the
// digit on the side req.Largest names.
func Satisfies(c domain.Comparison, leftLarger bool, req domain.CompareRequirements) bool {
	winner, loser := c.Left.Result.Value(), c.Right.Result.Value()
	if !leftLarger {
		winner, loser = loser, winner
	}
	if winner <= loser {
		return false
	}
	if req.Largest == domain.LargestNever {
		winner, loser = loser, winner
	}
	return HasDigit(winner, req.Digit) && !HasDigit(loser, req.Digit)
}

// Holds checks a finished comparison regardless of which side was meant to win.
func Holds(c domain.Comparison, req domain.CompareRequirements) bool {
	return Satisfies(c, true, req) || Satisfies(c, false, req)
}

// HasDigit reports whether the decimal form of v contains d.
func HasDigit(v, d int) bool {
	return digits(v).Has(byte('0' + d))
}

func digits(v int) mapset.Set[byte] {
	s := mapset.New[byte]()
	for _, c := range []byte(strconv.Itoa(v)) {
		s.Put(c)
	}
	return s
}

func operands(n int, r domain.NumberRange, src random.Source) []domain.Operand {
	out := make([]domain.Operand, n)
	for i := range out {
		out[i] = domain.Number(random.IntRange(src, r.Min, r.Max))
	}
	return out
}

func checkSettings(s domain.CompareSettings, req domain.CompareRequirements) error {
	switch {
	case s.CompareAmount < 0:
		return fmt.Errorf("%w: compare amount %d", domain.ErrInvalidSettings, s.CompareAmount)
	case s.NumberOfSymbols < 2:
		return fmt.Errorf("%w: need at least two symbols per side, got %d", domain.ErrInvalidSettings, s.NumberOfSymbols)
	case !s.NumberRange.Valid() || s.NumberRange.Min < 1:
		return fmt.Errorf("%w: number range %d..%d", domain.ErrInvalidSettings, s.NumberRange.Min, s.NumberRange.Max)
	case len(s.Operators) == 0:
		return fmt.Errorf("%w: empty operator set", domain.ErrInvalidSettings)
	case req.Digit < 0 || req.Digit > 9:
		return fmt.Errorf("%w: digit %d", domain.ErrInvalidSettings, req.Digit)
	case req.Largest != domain.LargestAlways && req.Largest != domain.LargestNever:
		return fmt.Errorf("%w: largest %q", domain.ErrInvalidSettings, req.Largest)
	}
	return nil
}
