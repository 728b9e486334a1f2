package app

import (
	"context"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"autobattler/internal/domain"
)

const (
	EndGameTitle = "End of the game"
	EndGameInfo  = "We have a winner !"
)

// stopFightingPhase resolves the round: streaks, life, ranks, deaths,
// income, rewards, evolutions and the next stage.
func (r *Room) stopFightingPhase(ctx context.Context) {
	_, span := r.tracer.Start(ctx, "room.stopFightingPhase",
		trace.WithAttributes(attribute.Int("stage", r.Stage)))
	defer span.End()

	pve := r.cfg.PVEIndex(r.Stage) >= 0
	results := make(map[string]domain.BattleResult, len(r.players))

	for _, p := range r.AlivePlayers() {
		if !r.sims.Has(p.ID) {
			continue
		}
		result := r.sims.Result(p.ID)
		results[p.ID] = result
		for _, t := range r.sims.Achievements(p.ID) {
			p.AddTitle(t)
		}
		if !pve {
			p.Streak = domain.NextStreak(p.Streak, result, p.LastPlayerBattleResult())
		}
		if result != domain.ResultWin {
			if dmg := r.sims.Damage(p.ID, p.SimulationID, r.Stage); dmg > 0 {
				p.TakeDamage(dmg)
				r.notify(p, EventPlayerDamage, PlayerDamagePayload{Amount: dmg})
			}
		}
		p.AddBattleResult(domain.BattleRecord{
			OpponentName:   p.OpponentName,
			OpponentAvatar: p.OpponentAvatar,
			Result:         result,
			PVE:            pve,
			Weather:        r.sims.BattleWeather(p.ID),
		})
	}

	domain.RankPlayers(r.Players())
	r.checkDeath()
	r.computeIncome()
	r.sims.Stop()

	for _, p := range r.AlivePlayers() {
		result := results[p.ID]
		if p.IsBot {
			p.Experience.SetLevel(min(domain.MaxLevel, (r.Stage+1)/2))
		} else {
			r.maybeRareWandering(p)
		}
		if pve && result == domain.ResultWin {
			p.Items.Add(r.deps.Items.RandomBasicItem())
			if r.ShinyEncounter {
				p.Items.Add(r.deps.Items.RandomBasicItem())
			}
		}
		if result == domain.ResultDefeat {
			r.maybeHatchEgg(p)
		}

		p.OpponentID, p.OpponentName, p.OpponentAvatar, p.SimulationID = "", "", "", ""

		if !p.IsBot {
			if p.ShopLocked {
				r.deps.Shop.RefillShop(p)
				p.ShopLocked = false
			} else {
				r.deps.Shop.AssignShop(p)
			}
		}
		r.tickEvolutionTimers(p)
		r.updateEvolution(p)
		p.RefreshSynergies()
	}
	r.sims.Clear()

	r.Stage++
	r.checkEndGame()
	span.SetAttributes(attribute.Int("alive", len(r.AlivePlayers())))
}

// checkDeath eliminates players out of life. A human's shop and board go
// back to the shared pool.
func (r *Room) checkDeath() {
	for _, p := range r.AlivePlayers() {
		if p.Life > 0 {
			continue
		}
		p.Alive = false
		r.logger.Info("checkDeath: %s eliminated at stage %d, rank %d", p.ID, r.Stage, p.Rank)
		if p.IsBot {
			continue
		}
		for i, s := range p.Shop {
			if s != domain.SpeciesNone {
				r.deps.Shop.ReleasePokemon(s)
			}
			p.Shop[i] = domain.SpeciesNone
		}
		for id, c := range p.Board {
			r.deps.Shop.ReleasePokemon(c.Species)
			delete(p.Board, id)
		}
		p.RefreshSynergies()
	}
}

func (r *Room) computeIncome() {
	for _, p := range r.AlivePlayers() {
		if p.IsBot {
			continue
		}
		income, interest := domain.Income(p.Money, p.Streak, p.LastBattleResult())
		p.Interest = interest
		p.Money += income
		r.notify(p, EventPlayerIncome, PlayerIncomePayload{Amount: income})
		p.Experience.AddExperience(domain.RoundExperience)
	}
}

func (r *Room) maybeRareWandering(p *domain.Player) {
	if r.rng.Float64() >= r.cfg.RareWanderingChance {
		return
	}
	lo, hi := float64(r.cfg.RareWanderingMinSeconds), float64(r.cfg.RareWanderingMaxSeconds)
	delay := time.Duration(math.Round((lo+(hi-lo)*r.rng.Float64())*1000)) * time.Millisecond
	id := p.ID
	r.after(delay, func() {
		r.emit(Event{Kind: EventRareWandering, Recipients: []string{id}})
	})
}

// maybeHatchEgg gives a losing player an egg when a hatching effect is on.
func (r *Room) maybeHatchEgg(p *domain.Player) {
	if p.BenchFull() {
		return
	}
	var chance float64
	switch {
	case p.HasEffect(domain.EffectBreeder):
		chance = 1
	case p.HasEffect(domain.EffectHatcher):
		chance = 0.2 * float64(p.Streak)
	default:
		return
	}
	if r.rng.Float64() < chance {
		p.PlaceOnBench(r.deps.Creatures.RandomEgg())
	}
}

// checkEndGame finishes the game once at most one player stands and
// schedules the room teardown.
func (r *Room) checkEndGame() {
	if len(r.AlivePlayers()) > 1 {
		return
	}
	r.GameFinished = true
	r.emit(Event{
		Kind:    EventBroadcastInfo,
		Payload: BroadcastInfoPayload{Title: EndGameTitle, Info: EndGameInfo},
	})
	r.logger.Info("checkEndGame: game finished at stage %d", r.Stage)
	r.after(time.Duration(r.cfg.EndGameTeardownSeconds)*time.Second, func() {
		r.emit(Event{Kind: EventGameEnd})
		r.disposed = true
		r.emit(Event{Kind: EventRoomDisposed})
	})
}

// notify sends a targeted event to a human player.
func (r *Room) notify(p *domain.Player, kind EventKind, payload any) {
	if p.IsBot {
		return
	}
	r.emit(Event{Kind: kind, Payload: payload, Recipients: []string{p.ID}})
}
