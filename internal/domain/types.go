package domain

import (
	"fmt"
	"math"
)

// Block is one pyramid cell. Value is nil until known.
type Block struct {
	ID        int  `json:"id"`
	Value     *int `json:"value,omitempty"`
	IsOpen    bool `json:"isOpen,omitempty"`
	IsBlocked bool `json:"isBlocked,omitempty"`
}

// Pyramid stores floors top-down in one flat slice: floor f starts at
// f*(f+1)/2 and holds f+1 blocks.
type Pyramid struct {
	FloorCount int              `json:"floorCount"`
	Operation  PyramidOperation `json:"operation"`
	Blocks     []Block          `json:"blocks"`
}

// BlockCount is the number of blocks in a pyramid with floors floors.
func BlockCount(floors int) int { return floors * (floors + 1) / 2 }

// MaxOpenBlocks is the largest open count that keeps a pyramid solvable from
// its visible blocks.
func MaxOpenBlocks(floors int) int {
	return BlockCount(floors) - floors - max(0, floors-8)
}

// FloorStart is the flat index of the first block on floor f.
func FloorStart(f int) int { return f * (f + 1) / 2 }

// FloorOf inverts FloorStart for a block index.
func FloorOf(i int) int {
	return int(math.Floor((math.Sqrt(float64(8*i+1)) - 1) / 2))
}

// NewPyramid allocates a pyramid with ids 0..n-1 and no values.
func NewPyramid(floors int, op PyramidOperation) *Pyramid {
	p := &Pyramid{FloorCount: floors, Operation: op, Blocks: make([]Block, BlockCount(floors))}
	for i := range p.Blocks {
		p.Blocks[i].ID = i
	}
	return p
}

// Check reports ErrInvalidSettings unless p holds exactly the blocks of its
// floor count in id order. Levels that arrive from outside are checked before
// anything indexes Blocks by id.
func (p *Pyramid) Check() error {
	if p.FloorCount < 1 {
		return fmt.Errorf("%w: floor count %d", ErrInvalidSettings, p.FloorCount)
	}
	if want := BlockCount(p.FloorCount); len(p.Blocks) != want {
		return fmt.Errorf("%w: %d floors need %d blocks, got %d", ErrInvalidSettings, p.FloorCount, want, len(p.Blocks))
	}
	for i, b := range p.Blocks {
		if b.ID != i {
			return fmt.Errorf("%w: block at position %d has id %d", ErrInvalidSettings, i, b.ID)
		}
	}
	return nil
}

// PyramidLevel pairs a pyramid with the player's answers for its open blocks.
type PyramidLevel struct {
	Pyramid Pyramid     `json:"pyramid"`
	Values  map[int]int `json:"values"`
}

// Set records a player answer. Only open blocks accept input.
func (l *PyramidLevel) Set(id, v int) bool {
	if id < 0 || id >= len(l.Pyramid.Blocks) || !l.Pyramid.Blocks[id].IsOpen {
		return false
	}
	if l.Values == nil {
		l.Values = make(map[int]int)
	}
	l.Values[id] = v
	return true
}

// Clear removes a player answer.
func (l *PyramidLevel) Clear(id int) { delete(l.Values, id) }

// Masked returns a copy with the values of open blocks removed, the way the
// level is handed to a player.
func (l *PyramidLevel) Masked() *PyramidLevel {
	out := &PyramidLevel{Pyramid: l.Pyramid, Values: make(map[int]int, len(l.Values))}
	out.Pyramid.Blocks = make([]Block, len(l.Pyramid.Blocks))
	for i, b := range l.Pyramid.Blocks {
		if b.IsOpen {
			b.Value = nil
		}
		out.Pyramid.Blocks[i] = b
	}
	for id, v := range l.Values {
		out.Values[id] = v
	}
	return out
}

// NumberRange is an inclusive [Min, Max] interval.
type NumberRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Valid reports Min <= Max.
func (r NumberRange) Valid() bool { return r.Min <= r.Max }

// Width is the count of integers in the range.
func (r NumberRange) Width() int { return r.Max - r.Min + 1 }

// PyramidSettings configures pyramid generation.
type PyramidSettings struct {
	FloorCount              int              `json:"floorCount"`
	OpenBlockCount          int              `json:"openBlockCount"`
	BlockedBlockCount       int              `json:"blockedBlockCount"`
	NumberRange             NumberRange      `json:"numberRange"`
	Operation               PyramidOperation `json:"operation"`
	RestrictedOpenFloors    []int            `json:"restrictedOpenFloors,omitempty"`
	RestrictedBlockedFloors []int            `json:"restrictedBlockedFloors,omitempty"`
}

// Hint points the player at the next deducible open block.
type Hint struct {
	Message  string       `json:"message,omitempty"`
	BlockID  int          `json:"blockId"`
	Value    int          `json:"value"`
	Sources  []int        `json:"sources,omitempty"`
	Strategy StrategyTier `json:"strategy"`
}

// RewardSettings configures a treasure-room calculation.
type RewardSettings struct {
	AmountSymbols int         `json:"amountSymbols"`
	NumberRange   NumberRange `json:"numberRange"`
	SymbolIDs     []SymbolID  `json:"symbolIds"`
	Operators     []Operator  `json:"operators"`
}

// RewardCalculation is a hint chain revealing symbols plus an obfuscated main formula.
type RewardCalculation struct {
	PickedNumbers []int            `json:"pickedNumbers"`
	SymbolMapping map[SymbolID]int `json:"symbolMapping"`
	SymbolCounts  map[SymbolID]int `json:"symbolCounts"`
	HintFormulas  []*Formula       `json:"hintFormulas"`
	MainFormula   *Formula         `json:"mainFormula"`
}

// CompareSettings configures comparison generation.
type CompareSettings struct {
	CompareAmount   int         `json:"compareAmount"`
	NumberOfSymbols int         `json:"numberOfSymbols"`
	NumberRange     NumberRange `json:"numberRange"`
	Operators       []Operator  `json:"operators"`
}

// CompareRequirements is the digit rule each comparison must satisfy.
type CompareRequirements struct {
	Digit   int     `json:"digit"`
	Largest Largest `json:"largest"`
}

// Comparison is one left/right pair.
type Comparison struct {
	Left  *Formula `json:"left"`
	Right *Formula `json:"right"`
}

// CompareLevel is a list of comparisons sharing one requirement.
type CompareLevel struct {
	Requirements CompareRequirements `json:"requirements"`
	Comparisons  []Comparison        `json:"comparisons"`
}
