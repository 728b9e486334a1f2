package app

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"autobattler/internal/domain"
	"autobattler/internal/ports"
)

// TickCommand advances the room by the elapsed loop time.
type TickCommand struct {
	Delta time.Duration
}

func (TickCommand) Name() string { return "Tick" }

func (c TickCommand) Execute(ctx context.Context, r *Room) ([]Command, error) {
	r.advanceClock(c.Delta)
	if !r.Started || r.GameFinished {
		return nil, nil
	}
	r.setTime(time.Duration(r.Time)*time.Millisecond - c.Delta)

	fightOver := false
	switch r.Phase {
	case domain.PhaseFight:
		fightOver = r.sims.Update(ctx, c.Delta)
	case domain.PhaseMinigame:
		r.deps.Minigame.Update(c.Delta)
	}
	if r.Time < 0 || fightOver {
		return []Command{UpdatePhaseCommand{}}, nil
	}
	return nil, nil
}

// UpdatePhaseCommand ends the current phase and starts the next one.
type UpdatePhaseCommand struct{}

func (UpdatePhaseCommand) Name() string { return "UpdatePhase" }

func (UpdatePhaseCommand) Execute(ctx context.Context, r *Room) ([]Command, error) {
	if r.GameFinished {
		return nil, nil
	}
	switch r.Phase {
	case domain.PhasePick:
		// Offers resolve first so auto-granted creatures can be placed too.
		r.stopPickingPhase()
		if moves := r.checkForLazyTeam(); len(moves) > 0 {
			return append(moves, startFightCommand{}), nil
		}
		r.initializeFightingPhase(ctx)
	case domain.PhaseFight:
		r.stopFightingPhase(ctx)
		if r.GameFinished {
			return nil, nil
		}
		if r.cfg.IsCarousel(r.Stage) {
			r.initializeMinigamePhase()
		} else {
			r.initializePickingPhase(ctx)
		}
	case domain.PhaseMinigame:
		r.deps.Minigame.Stop(r.Players())
		r.initializePickingPhase(ctx)
	}
	return nil, nil
}

// startFightCommand runs after forced placement moves were applied.
type startFightCommand struct{}

func (startFightCommand) Name() string { return "StartFight" }

func (startFightCommand) Execute(ctx context.Context, r *Room) ([]Command, error) {
	if r.Phase != domain.PhasePick || r.GameFinished {
		return nil, nil
	}
	r.initializeFightingPhase(ctx)
	return nil, nil
}

func (r *Room) initializePickingPhase(ctx context.Context) {
	_, span := r.tracer.Start(ctx, "room.initializePickingPhase",
		trace.WithAttributes(attribute.Int("stage", r.Stage)))
	defer span.End()

	r.Phase = domain.PhasePick
	r.setTime(r.cfg.PickDuration(r.Stage))

	items := r.cfg.IsItemProposal(r.Stage)
	additional := r.cfg.AdditionalPickIndex(r.Stage)
	mythical := r.cfg.MythicalPickIndex(r.Stage)

	alive := r.AlivePlayers()
	if additional >= 0 {
		// Bots claim first so humans are only offered what is left.
		for _, p := range alive {
			if !p.IsBot {
				continue
			}
			if picks := r.drawAdditional(additional, 1); len(picks) == 1 {
				r.registerAdditional(picks[0])
			}
		}
	}
	for _, p := range alive {
		if items {
			p.ItemsProposition = r.deps.Items.RandomItems()
		}
		if additional >= 0 && !p.IsBot {
			p.PokemonsProposition = r.drawAdditional(additional, PropositionSize)
		}
		if mythical >= 0 {
			r.deps.Shop.AssignMythicalPropositions(p, r.deps.Creatures.MythicalPool(mythical))
		}
	}
}

func (r *Room) stopPickingPhase() {
	for _, p := range r.AlivePlayers() {
		r.resolvePropositions(p)
		r.updateEvolution(p)
		p.RefreshSynergies()
	}
}

func (r *Room) initializeFightingPhase(ctx context.Context) {
	_, span := r.tracer.Start(ctx, "room.initializeFightingPhase",
		trace.WithAttributes(attribute.Int("stage", r.Stage)))
	defer span.End()

	r.Phase = domain.PhaseFight
	r.setTime(r.cfg.FightDuration())
	if r.deps.Bots != nil {
		r.deps.Bots.UpdateBots(r.Players(), r.Stage)
	}
	r.ShinyEncounter = r.Stage == r.cfg.ShinyStage && r.rng.Float64() < r.cfg.ShinyChance

	alive := r.AlivePlayers()
	for _, p := range alive {
		p.RefreshSynergies()
	}

	if idx := r.cfg.PVEIndex(r.Stage); idx >= 0 {
		enc := r.cfg.PVEStages[idx]
		for _, p := range alive {
			b := r.sims.StartPVE(ports.PVESetup{
				Stage:     r.Stage,
				Encounter: idx,
				Name:      enc.Name,
				Shiny:     r.ShinyEncounter,
				Player:    sideOf(p),
			})
			p.OpponentID = ""
			p.OpponentName = enc.Name
			p.OpponentAvatar = enc.Avatar
			p.SimulationID = b.ID()
		}
		span.SetAttributes(attribute.Bool("pve", true))
		return
	}

	for _, p := range alive {
		opp := r.pickOpponent(p, alive)
		if opp == nil {
			continue
		}
		player, opponent := sideOf(p), sideOf(opp)
		b := r.sims.Start(ports.BattleSetup{
			Stage:    r.Stage,
			Weather:  r.sims.Weather(player.Team, opponent.Team),
			Player:   player,
			Opponent: opponent,
		})
		p.OpponentID = opp.ID
		p.OpponentName = opp.Name
		p.OpponentAvatar = opp.Avatar
		p.SimulationID = b.ID()
	}
	span.SetAttributes(attribute.Int("battles", r.sims.Len()))
}

// recentOpponentMemory is how many past opponents a pairing tries to avoid.
const recentOpponentMemory = 2

// pickOpponent chooses a random living opponent, avoiding recent ones when
// another choice exists.
func (r *Room) pickOpponent(p *domain.Player, alive []*domain.Player) *domain.Player {
	var all, fresh []*domain.Player
	recent := r.recentOpponents[p.ID]
	for _, o := range alive {
		if o.ID == p.ID {
			continue
		}
		all = append(all, o)
		seen := false
		for _, id := range recent {
			if id == o.ID {
				seen = true
				break
			}
		}
		if !seen {
			fresh = append(fresh, o)
		}
	}
	if len(all) == 0 {
		return nil
	}
	pool := fresh
	if len(pool) == 0 {
		pool = all
	}
	opp := pool[r.rng.Intn(len(pool))]

	recent = append(recent, opp.ID)
	if len(recent) > recentOpponentMemory {
		recent = recent[len(recent)-recentOpponentMemory:]
	}
	r.recentOpponents[p.ID] = recent
	return opp
}

func (r *Room) initializeMinigamePhase() {
	r.Phase = domain.PhaseMinigame
	r.setTime(r.cfg.MinigameDuration(r.Stage, len(r.AlivePlayers())))
	r.deps.Minigame.Initialize(r.Players(), r.Stage)
}
