// Package config holds the journey, tomb and compare-stage catalog the
// service looks settings up in.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"svw.info/pyramath/internal/domain"
)

type Catalog struct {
	Version       string         `yaml:"version" json:"version"`
	Journeys      []Journey      `yaml:"journeys" json:"journeys"`
	Tombs         []Tomb         `yaml:"tombs" json:"tombs"`
	CompareStages []CompareStage `yaml:"compare_stages" json:"compare_stages"`
}

// FloorRange bounds the pyramid height over a journey.
type FloorRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// Journey is a run of pyramid levels that grow from Floors.Min to Floors.Max.
type Journey struct {
	ID                      string             `yaml:"id" json:"id"`
	Name                    string             `yaml:"name" json:"name"`
	Levels                  int                `yaml:"levels" json:"levels"`
	Floors                  FloorRange         `yaml:"floors" json:"floors"`
	NumberRange             domain.NumberRange `yaml:"number_range" json:"number_range"`
	Operation               string             `yaml:"operation" json:"operation"`
	OpenRatio               float64            `yaml:"open_ratio" json:"open_ratio"`
	BlockedBlocks           int                `yaml:"blocked_blocks" json:"blocked_blocks"`
	RestrictedOpenFloors    []int              `yaml:"restricted_open_floors" json:"restricted_open_floors,omitempty"`
	RestrictedBlockedFloors []int              `yaml:"restricted_blocked_floors" json:"restricted_blocked_floors,omitempty"`
}

// Tomb configures a treasure-room calculation.
type Tomb struct {
	ID          string             `yaml:"id" json:"id"`
	Name        string             `yaml:"name" json:"name"`
	SymbolCount int                `yaml:"symbol_count" json:"symbol_count"`
	NumberRange domain.NumberRange `yaml:"number_range" json:"number_range"`
	Operators   []string           `yaml:"operators" json:"operators"`
	SymbolIDs   []int              `yaml:"symbol_ids" json:"symbol_ids"`
}

// CompareStage configures a comparison level.
type CompareStage struct {
	ID              string             `yaml:"id" json:"id"`
	Name            string             `yaml:"name" json:"name"`
	CompareAmount   int                `yaml:"compare_amount" json:"compare_amount"`
	NumberOfSymbols int                `yaml:"number_of_symbols" json:"number_of_symbols"`
	NumberRange     domain.NumberRange `yaml:"number_range" json:"number_range"`
	Operators       []string           `yaml:"operators" json:"operators"`
}

func (j *Journey) ApplyDefaults() {
	if j.Levels == 0 {
		j.Levels = 1
	}
	if j.Floors.Max < j.Floors.Min {
		j.Floors.Max = j.Floors.Min
	}
	if j.OpenRatio == 0 {
		j.OpenRatio = 0.5
	}
	if j.Operation == "" {
		j.Operation = "addition"
	}
}

func (t *Tomb) ApplyDefaults() {
	if len(t.SymbolIDs) == 0 {
		t.SymbolIDs = make([]int, t.SymbolCount)
		for i := range t.SymbolIDs {
			t.SymbolIDs[i] = i + 1
		}
	}
}

func (c *Catalog) ApplyDefaults() {
	for i := range c.Journeys {
		c.Journeys[i].ApplyDefaults()
	}
	for i := range c.Tombs {
		c.Tombs[i].ApplyDefaults()
	}
}

// Journey looks up a journey by id.
func (c *Catalog) Journey(id string) (Journey, error) {
	for _, j := range c.Journeys {
		if j.ID == id {
			return j, nil
		}
	}
	return Journey{}, fmt.Errorf("%w: journey %q", domain.ErrUnknownCatalogEntry, id)
}

// Tomb looks up a tomb by id.
func (c *Catalog) Tomb(id string) (Tomb, error) {
	for _, t := range c.Tombs {
		if t.ID == id {
			return t, nil
		}
	}
	return Tomb{}, fmt.Errorf("%w: tomb %q", domain.ErrUnknownCatalogEntry, id)
}

// CompareStage looks up a compare stage by id.
func (c *Catalog) CompareStage(id string) (CompareStage, error) {
	for _, s := range c.CompareStages {
		if s.ID == id {
			return s, nil
		}
	}
	return CompareStage{}, fmt.Errorf("%w: compare stage %q", domain.ErrUnknownCatalogEntry, id)
}

// Merge adds other's entries. An entry whose id already exists replaces it.
func (c *Catalog) Merge(other *Catalog) {
	if other.Version != "" {
		c.Version = other.Version
	}
	c.Journeys = mergeByID(c.Journeys, other.Journeys, func(j Journey) string { return j.ID })
	c.Tombs = mergeByID(c.Tombs, other.Tombs, func(t Tomb) string { return t.ID })
	c.CompareStages = mergeByID(c.CompareStages, other.CompareStages, func(s CompareStage) string { return s.ID })
}

func mergeByID[T any](dst, src []T, id func(T) string) []T {
	at := make(map[string]int, len(dst))
	for i, v := range dst {
		at[id(v)] = i
	}
	for _, v := range src {
		if i, ok := at[id(v)]; ok {
			dst[i] = v
			continue
		}
		at[id(v)] = len(dst)
		dst = append(dst, v)
	}
	return dst
}

// FloorsAt is the pyramid height for a 0-based level index, growing linearly
// over the journey and holding at Floors.Max past the last level.
func (j Journey) FloorsAt(level int) int {
	if j.Levels <= 1 || level <= 0 {
		return j.Floors.Min
	}
	if level >= j.Levels-1 {
		return j.Floors.Max
	}
	span := j.Floors.Max - j.Floors.Min
	return j.Floors.Min + level*span/(j.Levels-1)
}

// PyramidSettings resolves the settings for one level of the journey.
func (j Journey) PyramidSettings(level int) (domain.PyramidSettings, error) {
	op, err := parseOperation(j.Operation)
	if err != nil {
		return domain.PyramidSettings{}, err
	}
	floors := j.FloorsAt(level)
	open := int(math.Round(j.OpenRatio * float64(domain.MaxOpenBlocks(floors))))
	return domain.PyramidSettings{
		FloorCount:              floors,
		OpenBlockCount:          min(max(open, 1), domain.MaxOpenBlocks(floors)),
		BlockedBlockCount:       j.BlockedBlocks,
		NumberRange:             j.NumberRange,
		Operation:               op,
		RestrictedOpenFloors:    j.RestrictedOpenFloors,
		RestrictedBlockedFloors: j.RestrictedBlockedFloors,
	}, nil
}

// RewardSettings resolves the tomb into engine settings.
func (t Tomb) RewardSettings() (domain.RewardSettings, error) {
	ops, err := domain.ParseOperators(t.Operators)
	if err != nil {
		return domain.RewardSettings{}, fmt.Errorf("tomb %q: %w", t.ID, err)
	}
	ids := make([]domain.SymbolID, len(t.SymbolIDs))
	for i, id := range t.SymbolIDs {
		ids[i] = domain.SymbolID(id)
	}
	return domain.RewardSettings{
		AmountSymbols: t.SymbolCount,
		NumberRange:   t.NumberRange,
		SymbolIDs:     ids,
		Operators:     ops,
	}, nil
}

// CompareSettings resolves the stage into generator settings.
func (s CompareStage) CompareSettings() (domain.CompareSettings, error) {
	ops, err := domain.ParseOperators(s.Operators)
	if err != nil {
		return domain.CompareSettings{}, fmt.Errorf("compare stage %q: %w", s.ID, err)
	}
	return domain.CompareSettings{
		CompareAmount:   s.CompareAmount,
		NumberOfSymbols: s.NumberOfSymbols,
		NumberRange:     s.NumberRange,
		Operators:       ops,
	}, nil
}

func parseOperation(s string) (domain.PyramidOperation, error) {
	switch s {
	case "addition", "":
		return domain.PyramidAddition, nil
	case "subtraction":
		return domain.PyramidSubtraction, nil
	}
	return 0, fmt.Errorf("%w: pyramid operation %q", domain.ErrInvalidSettings, s)
}

// Decode reads one YAML catalog document.
func Decode(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := yaml.NewDecoder(r).Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	c.ApplyDefaults()
	return &c, nil
}

func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	return &c, nil
}
