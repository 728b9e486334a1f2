package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// PVEStage is a scripted encounter replacing player pairings on a stage.
type PVEStage struct {
	Stage  int    `json:"stage"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// GameConfig holds the stage tables and timings of a game.
type GameConfig struct {
	MaxPlayers int `json:"max_players"`

	ItemProposalStages    []int      `json:"item_proposal_stages"`
	AdditionalPicksStages []int      `json:"additional_picks_stages"`
	MythicalPicksStages   []int      `json:"mythical_picks_stages"`
	CarouselStages        []int      `json:"carousel_stages"`
	PVEStages             []PVEStage `json:"pve_stages"`

	// StageDurationSeconds overrides DefaultStageDurationSeconds per stage.
	StageDurationSeconds        map[int]int `json:"stage_duration_seconds"`
	DefaultStageDurationSeconds int         `json:"default_stage_duration_seconds"`

	FightingPhaseMillis     int `json:"fighting_phase_millis"`
	FirstCarouselMillis     int `json:"first_carousel_millis"`
	CarouselBaseMillis      int `json:"carousel_base_millis"`
	CarouselPerPlayerMillis int `json:"carousel_per_player_millis"`

	ShinyStage  int     `json:"shiny_stage"`
	ShinyChance float64 `json:"shiny_chance"`

	RareWanderingChance     float64 `json:"rare_wandering_chance"`
	RareWanderingMinSeconds int     `json:"rare_wandering_min_seconds"`
	RareWanderingMaxSeconds int     `json:"rare_wandering_max_seconds"`

	EndGameTeardownSeconds int `json:"end_game_teardown_seconds"`
}

// DefaultGameConfig returns the standard stage layout.
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		MaxPlayers:            8,
		ItemProposalStages:    []int{3, 13},
		AdditionalPicksStages: []int{5, 8},
		MythicalPicksStages:   []int{10, 20},
		CarouselStages:        []int{4, 10, 15, 20, 25, 30, 35},
		PVEStages: []PVEStage{
			{Stage: 1, Name: "Magikarp", Avatar: "magikarp"},
			{Stage: 2, Name: "Rattata", Avatar: "rattata"},
			{Stage: 3, Name: "Spearow", Avatar: "spearow"},
			{Stage: 9, Name: "Gyarados", Avatar: "gyarados"},
			{Stage: 15, Name: "Legendary Birds", Avatar: "zapdos"},
			{Stage: 20, Name: "Legendary Beasts", Avatar: "entei"},
			{Stage: 25, Name: "Legendary Titans", Avatar: "regice"},
			{Stage: 30, Name: "Swords of Justice", Avatar: "cobalion"},
			{Stage: 35, Name: "Lake Guardians", Avatar: "uxie"},
			{Stage: 40, Name: "Creation Trio", Avatar: "arceus"},
		},
		StageDurationSeconds:        map[int]int{1: 20},
		DefaultStageDurationSeconds: 30,
		FightingPhaseMillis:         40000,
		FirstCarouselMillis:         15000,
		CarouselBaseMillis:          14000,
		CarouselPerPlayerMillis:     2000,
		ShinyStage:                  9,
		ShinyChance:                 1.0 / 20,
		RareWanderingChance:         0.037,
		RareWanderingMinSeconds:     5,
		RareWanderingMaxSeconds:     20,
		EndGameTeardownSeconds:      30,
	}
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
// Fields missing from the file keep their default values.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c := DefaultGameConfig()
		if err := json.Unmarshal(data, c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, or the defaults when
// nothing was loaded.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		return DefaultGameConfig()
	}
	return cfg
}

// PickDuration is the length of the pick phase on a stage.
func (c *GameConfig) PickDuration(stage int) time.Duration {
	secs, ok := c.StageDurationSeconds[stage]
	if !ok {
		secs = c.DefaultStageDurationSeconds
	}
	return time.Duration(secs) * time.Second
}

// MinigameDuration is the carousel length for a stage.
func (c *GameConfig) MinigameDuration(stage, alivePlayers int) time.Duration {
	if len(c.CarouselStages) > 0 && stage == c.CarouselStages[0] {
		return time.Duration(c.FirstCarouselMillis) * time.Millisecond
	}
	ms := c.CarouselBaseMillis + alivePlayers*c.CarouselPerPlayerMillis
	return time.Duration(ms) * time.Millisecond
}

// FightDuration is the maximum length of the fight phase.
func (c *GameConfig) FightDuration() time.Duration {
	return time.Duration(c.FightingPhaseMillis) * time.Millisecond
}

// IsCarousel reports whether the stage inserts a minigame after its fight.
func (c *GameConfig) IsCarousel(stage int) bool { return contains(c.CarouselStages, stage) }

// IsItemProposal reports whether players are offered items on the stage.
func (c *GameConfig) IsItemProposal(stage int) bool { return contains(c.ItemProposalStages, stage) }

// AdditionalPickIndex returns which additional pick the stage hosts, or -1.
func (c *GameConfig) AdditionalPickIndex(stage int) int { return indexOf(c.AdditionalPicksStages, stage) }

// MythicalPickIndex returns which mythical pick the stage hosts, or -1.
func (c *GameConfig) MythicalPickIndex(stage int) int { return indexOf(c.MythicalPicksStages, stage) }

// PVEIndex returns the scripted encounter for the stage, or -1.
func (c *GameConfig) PVEIndex(stage int) int {
	for i, s := range c.PVEStages {
		if s.Stage == stage {
			return i
		}
	}
	return -1
}

func contains(stages []int, stage int) bool { return indexOf(stages, stage) >= 0 }

func indexOf(stages []int, stage int) int {
	for i, s := range stages {
		if s == stage {
			return i
		}
	}
	return -1
}
