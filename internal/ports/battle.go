package ports

import (
	"time"

	"autobattler/internal/domain"
)

// BattleSide is one player's half of a fight.
type BattleSide struct {
	PlayerID  string
	Name      string
	Avatar    string
	Team      []domain.Creature
	Synergies domain.Synergies
	Effects   []domain.Effect
}

// BattleSetup pairs a player with an opponent's board.
type BattleSetup struct {
	Stage    int
	Weather  domain.Weather
	Player   BattleSide
	Opponent BattleSide
}

// PVESetup pairs a player with a scripted encounter.
type PVESetup struct {
	Stage     int
	Encounter int
	Name      string
	Shiny     bool
	Player    BattleSide
}

// BattleSimulator resolves fights. The algorithm is opaque to the room.
type BattleSimulator interface {
	Weather(team, opponent []domain.Creature) domain.Weather
	Start(setup BattleSetup) Battle
	StartPVE(setup PVESetup) Battle
}

// Battle is one running fight, owned by a single player.
type Battle interface {
	ID() string
	// Update advances the fight and reports whether it is over.
	Update(dt time.Duration) bool
	Result() domain.BattleResult
	// Damage is the life the owning player loses for this fight.
	Damage(stage int) int
	Weather() domain.Weather
	Achievements() []domain.Title
	Stop()
}
