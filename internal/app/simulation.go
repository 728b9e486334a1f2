package app

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"autobattler/internal/domain"
	"autobattler/internal/ports"
)

// SimulationManager owns the fights of one FIGHT phase, one per player.
type SimulationManager struct {
	sim     ports.BattleSimulator
	battles map[string]ports.Battle
}

func NewSimulationManager(sim ports.BattleSimulator) *SimulationManager {
	return &SimulationManager{sim: sim, battles: make(map[string]ports.Battle)}
}

// Start opens a fight between a player and an opponent board.
func (m *SimulationManager) Start(setup ports.BattleSetup) ports.Battle {
	b := m.sim.Start(setup)
	m.battles[setup.Player.PlayerID] = b
	return b
}

// StartPVE opens a fight against a scripted encounter.
func (m *SimulationManager) StartPVE(setup ports.PVESetup) ports.Battle {
	b := m.sim.StartPVE(setup)
	m.battles[setup.Player.PlayerID] = b
	return b
}

// Weather is the condition computed for a pairing before it starts.
func (m *SimulationManager) Weather(team, opponent []domain.Creature) domain.Weather {
	return m.sim.Weather(team, opponent)
}

// Update advances every fight by dt and reports whether all of them are over.
// Fights are independent, so they advance concurrently.
func (m *SimulationManager) Update(ctx context.Context, dt time.Duration) bool {
	ids := m.ids()
	done := make([]bool, len(ids))
	g, _ := errgroup.WithContext(ctx)
	for i, id := range ids {
		b := m.battles[id]
		g.Go(func() error {
			done[i] = b.Update(dt)
			return nil
		})
	}
	_ = g.Wait()

	for _, d := range done {
		if !d {
			return false
		}
	}
	return true
}

// Has reports whether a player fought this phase.
func (m *SimulationManager) Has(playerID string) bool {
	_, ok := m.battles[playerID]
	return ok
}

func (m *SimulationManager) Result(playerID string) domain.BattleResult {
	if b, ok := m.battles[playerID]; ok {
		return b.Result()
	}
	return domain.ResultNone
}

// Damage is the life a player loses for the fight with the given id.
// A stale simulation id yields no damage.
func (m *SimulationManager) Damage(playerID, simulationID string, stage int) int {
	b, ok := m.battles[playerID]
	if !ok || b.ID() != simulationID {
		return 0
	}
	return b.Damage(stage)
}

func (m *SimulationManager) BattleWeather(playerID string) domain.Weather {
	if b, ok := m.battles[playerID]; ok {
		return b.Weather()
	}
	return domain.WeatherNeutral
}

func (m *SimulationManager) Achievements(playerID string) []domain.Title {
	if b, ok := m.battles[playerID]; ok {
		return b.Achievements()
	}
	return nil
}

// Stop halts every fight; results stay readable until Clear.
func (m *SimulationManager) Stop() {
	for _, b := range m.battles {
		b.Stop()
	}
}

func (m *SimulationManager) Clear() {
	m.battles = make(map[string]ports.Battle)
}

func (m *SimulationManager) Len() int { return len(m.battles) }

func (m *SimulationManager) ids() []string {
	ids := make([]string, 0, len(m.battles))
	for id := range m.battles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
