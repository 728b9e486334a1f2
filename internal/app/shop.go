package app

import (
	"context"
	"fmt"

	"autobattler/internal/domain"
)

// BuyCommand buys the creature offered in a shop slot.
type BuyCommand struct {
	PlayerID string
	Index    int
}

func (BuyCommand) Name() string { return "Buy" }

func (c BuyCommand) Execute(_ context.Context, r *Room) ([]Command, error) {
	p, err := r.livePlayer(c.PlayerID)
	if err != nil {
		return nil, err
	}
	if c.Index < 0 || c.Index >= len(p.Shop) || p.Shop[c.Index] == domain.SpeciesNone {
		return nil, ErrEmptySlot
	}
	species := p.Shop[c.Index]
	if species == domain.Magikarp {
		return nil, ErrNotPurchasable
	}
	cost := r.deps.Creatures.Cost(species)
	if p.Money < cost {
		return nil, fmt.Errorf("buy %s for %d: %w", species, cost, ErrNotEnoughMoney)
	}

	creature := r.deps.Creatures.Create(species, r.variant(p, species))
	if creature.Rarity == domain.RarityMythical && p.CountSpecies(species) > 0 {
		return nil, ErrDuplicateMythical
	}
	completesMerge := r.completesMerge(p, creature)
	if p.BenchFull() && !completesMerge {
		return nil, ErrBenchFull
	}

	p.Money -= cost
	if !p.PlaceOnBench(creature) {
		// Parked off the bench until the merge below consumes it.
		creature.X, creature.Y = -1, 0
		p.Board[creature.ID] = creature
	}
	domain.ApplyDynamicSynergies(p, creature)

	p.Shop[c.Index] = domain.SpeciesNone
	if creature.Rarity == domain.RarityMythical {
		r.deps.Shop.AssignShop(p)
	}

	r.updateEvolution(p)
	p.RefreshSynergies()
	return nil, nil
}

// RerollCommand draws a fresh shop for one money.
type RerollCommand struct {
	PlayerID string
}

func (RerollCommand) Name() string { return "Reroll" }

func (c RerollCommand) Execute(_ context.Context, r *Room) ([]Command, error) {
	p, err := r.livePlayer(c.PlayerID)
	if err != nil {
		return nil, err
	}
	if p.Money < domain.RerollCost {
		return nil, ErrNotEnoughMoney
	}
	r.deps.Shop.AssignShop(p)
	p.Money -= domain.RerollCost
	p.RerollCount++
	return nil, nil
}

// LockCommand toggles whether the shop survives the next round boundary.
type LockCommand struct {
	PlayerID string
}

func (LockCommand) Name() string { return "Lock" }

func (c LockCommand) Execute(_ context.Context, r *Room) ([]Command, error) {
	p, ok := r.players[c.PlayerID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	p.ShopLocked = !p.ShopLocked
	return nil, nil
}

// LevelUpCommand buys experience.
type LevelUpCommand struct {
	PlayerID string
}

func (LevelUpCommand) Name() string { return "LevelUp" }

func (c LevelUpCommand) Execute(_ context.Context, r *Room) ([]Command, error) {
	p, err := r.livePlayer(c.PlayerID)
	if err != nil {
		return nil, err
	}
	if p.Money < domain.LevelUpCost {
		return nil, ErrNotEnoughMoney
	}
	if !p.Experience.CanLevel() {
		return nil, ErrMaxLevel
	}
	p.Experience.AddExperience(domain.LevelUpExperience)
	p.Money -= domain.LevelUpCost
	return nil, nil
}

// SellCommand sells a creature back to the pool.
type SellCommand struct {
	PlayerID   string
	CreatureID string
}

func (SellCommand) Name() string { return "Sell" }

func (c SellCommand) Execute(_ context.Context, r *Room) ([]Command, error) {
	p, err := r.livePlayer(c.PlayerID)
	if err != nil {
		return nil, err
	}
	creature, ok := p.Board[c.CreatureID]
	if !ok {
		return nil, rejectBoard(p.ID, ErrUnknownCreature)
	}
	// Team creatures are locked in while they fight.
	if !creature.OnBench() && r.Phase != domain.PhasePick {
		return nil, rejectBoard(p.ID, ErrWrongPhase)
	}

	p.Money += r.deps.Creatures.SellPrice(creature)
	for _, it := range creature.Items {
		p.Items.Add(it)
	}
	r.deps.Shop.ReleasePokemon(creature.Species)
	delete(p.Board, creature.ID)
	p.RefreshSynergies()
	return nil, nil
}

// livePlayer returns a player still in the game.
func (r *Room) livePlayer(id string) (*domain.Player, error) {
	p, ok := r.players[id]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if !p.Alive {
		return nil, ErrPlayerEliminated
	}
	if !r.Started {
		return nil, ErrNotStarted
	}
	if r.GameFinished {
		return nil, ErrGameFinished
	}
	return p, nil
}
