package bot

import (
	"autobattler/internal/domain"
)

// Placement is one creature of a scripted bot board.
type Placement struct {
	Species domain.Species `json:"species"`
	X       int            `json:"x"`
	Y       int            `json:"y"`
	Items   []domain.Item  `json:"items,omitempty"`
}

// Step is the board a bot fields from Stage onwards.
type Step struct {
	Stage int         `json:"stage"`
	Board []Placement `json:"board"`
}

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	// BoardFor returns the team a bot fields at stage.
	BoardFor(stage int) []Placement
}
