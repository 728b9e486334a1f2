package bot

import (
	"github.com/heroiclabs/nakama-common/runtime"

	"autobattler/internal/domain"
	"autobattler/internal/ports"
)

var _ ports.BotRoster = (*Roster)(nil)

// Roster rebuilds bot boards from their brains before each fight.
// It belongs to one room and is only used from its loop.
type Roster struct {
	registry *Registry
	factory  ports.CreatureFactory
	logger   runtime.Logger
	brains   map[string]Brain
}

// NewRoster builds a roster; registry may be nil, in which case every bot
// plays the medium default script.
func NewRoster(registry *Registry, factory ports.CreatureFactory, logger runtime.Logger) *Roster {
	return &Roster{
		registry: registry,
		factory:  factory,
		logger:   logger,
		brains:   make(map[string]Brain),
	}
}

// UpdateBots replaces every living bot's board with its scripted team for
// stage, trimmed to the bot's level.
func (r *Roster) UpdateBots(players []*domain.Player, stage int) {
	for _, p := range players {
		if !p.IsBot || !p.Alive {
			continue
		}
		brain := r.brainFor(p.ID)
		if brain == nil {
			continue
		}
		r.rebuild(p, brain.BoardFor(stage))
	}
}

func (r *Roster) rebuild(p *domain.Player, board []Placement) {
	p.Board = make(map[string]*domain.Creature, len(board))
	for _, pl := range board {
		if p.TeamSize() >= p.Experience.Level {
			break
		}
		if pl.Y < 1 || !domain.ValidTile(pl.X, pl.Y) || !p.IsTileEmpty(pl.X, pl.Y) {
			r.logger.Warn("UpdateBots: bot %s has an invalid tile %d,%d for %s", p.ID, pl.X, pl.Y, pl.Species)
			continue
		}
		c := r.factory.Create(pl.Species, p.Collection[pl.Species])
		c.X, c.Y = pl.X, pl.Y
		for _, it := range pl.Items {
			if !domain.CanCarry(c, it) {
				break
			}
			c.AddItem(it)
		}
		p.Board[c.ID] = c
	}
}

func (r *Roster) brainFor(playerID string) Brain {
	if b, ok := r.brains[playerID]; ok {
		return b
	}
	level, script := BotLevelMedium, []Step(nil)
	if r.registry != nil {
		if identity, ok := r.registry.Get(playerID); ok {
			level, script = ParseLevel(identity.Difficulty), identity.Script
		}
	}
	b, err := NewBrain(level, script)
	if err != nil {
		r.logger.Error("UpdateBots: no brain for %s: %v", playerID, err)
		return nil
	}
	r.brains[playerID] = b
	return b
}
