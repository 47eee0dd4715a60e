package config

import "svw.info/pyramath/internal/domain"

// Default returns the built-in catalog used when no catalog files are found.
func Default() *Catalog {
	c := &Catalog{
		Version: "1",
		Journeys: []Journey{
			{
				ID:          "desert",
				Name:        "Desert Road",
				Levels:      10,
				Floors:      FloorRange{Min: 3, Max: 5},
				NumberRange: domain.NumberRange{Min: 1, Max: 10},
				Operation:   "addition",
				OpenRatio:   0.5,
			},
			{
				ID:                   "valley",
				Name:                 "Valley of Kings",
				Levels:               15,
				Floors:               FloorRange{Min: 4, Max: 7},
				NumberRange:          domain.NumberRange{Min: 1, Max: 20},
				Operation:            "addition",
				OpenRatio:            0.7,
				BlockedBlocks:        1,
				RestrictedOpenFloors: []int{0},
			},
			{
				ID:                      "pyramid",
				Name:                    "Great Pyramid",
				Levels:                  20,
				Floors:                  FloorRange{Min: 5, Max: 9},
				NumberRange:             domain.NumberRange{Min: 1, Max: 30},
				Operation:               "subtraction",
				OpenRatio:               0.9,
				BlockedBlocks:           2,
				RestrictedBlockedFloors: []int{0},
			},
		},
		Tombs: []Tomb{
			{
				ID:          "scribe",
				Name:        "Tomb of the Scribe",
				SymbolCount: 3,
				NumberRange: domain.NumberRange{Min: 1, Max: 10},
				Operators:   []string{"+", "-"},
				SymbolIDs:   []int{101, 102, 103},
			},
			{
				ID:          "vizier",
				Name:        "Tomb of the Vizier",
				SymbolCount: 4,
				NumberRange: domain.NumberRange{Min: 1, Max: 10},
				Operators:   []string{"+", "-", "*"},
				SymbolIDs:   []int{201, 202, 203, 204},
			},
			{
				ID:          "pharaoh",
				Name:        "Tomb of the Pharaoh",
				SymbolCount: 5,
				NumberRange: domain.NumberRange{Min: 1, Max: 10},
				Operators:   []string{"+", "-", "*", "/"},
				SymbolIDs:   []int{301, 302, 303, 304, 305},
			},
		},
		CompareStages: []CompareStage{
			{
				ID:              "bazaar",
				Name:            "Bazaar",
				CompareAmount:   4,
				NumberOfSymbols: 3,
				NumberRange:     domain.NumberRange{Min: 1, Max: 30},
				Operators:       []string{"+", "-", "*"},
			},
			{
				ID:              "oasis",
				Name:            "Oasis",
				CompareAmount:   6,
				NumberOfSymbols: 5,
				NumberRange:     domain.NumberRange{Min: 1, Max: 50},
				Operators:       []string{"+", "-", "*", "/"},
			},
		},
	}
	c.ApplyDefaults()
	return c
}
