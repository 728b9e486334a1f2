package app

import (
	"context"

	"autobattler/internal/domain"
)

// PropositionSize is the length of an item or creature offer that is
// auto-resolved when the pick phase ends unclaimed.
const PropositionSize = 3

// PickItemCommand claims one of the offered items. The rest are discarded.
type PickItemCommand struct {
	PlayerID string
	Item     domain.Item
}

func (PickItemCommand) Name() string { return "PickItem" }

func (c PickItemCommand) Execute(_ context.Context, r *Room) ([]Command, error) {
	p, err := r.livePlayer(c.PlayerID)
	if err != nil {
		return nil, err
	}
	if !containsItem(p.ItemsProposition, c.Item) {
		return nil, ErrNotProposed
	}
	p.Items.Add(c.Item)
	p.ItemsProposition = nil
	return nil, nil
}

// PickPokemonCommand claims one of the offered creatures.
type PickPokemonCommand struct {
	PlayerID string
	Species  domain.Species
}

func (PickPokemonCommand) Name() string { return "PickPokemon" }

func (c PickPokemonCommand) Execute(_ context.Context, r *Room) ([]Command, error) {
	p, err := r.livePlayer(c.PlayerID)
	if err != nil {
		return nil, err
	}
	if !containsSpecies(p.PokemonsProposition, c.Species) {
		return nil, ErrNotProposed
	}
	additional := r.cfg.AdditionalPickIndex(r.Stage)
	mythical := r.cfg.MythicalPickIndex(r.Stage)
	if additional < 0 && mythical < 0 {
		return nil, ErrWrongStage
	}
	if containsSpecies(r.AdditionalPokemons, c.Species) {
		return nil, ErrAlreadyClaimed
	}
	if p.BenchFull() {
		return nil, ErrBenchFull
	}
	if tier := r.mythicalTier(c.Species); tier >= 0 {
		if tier != mythical {
			return nil, ErrWrongStage
		}
		if r.ownsMythicalOfTier(p, tier) {
			return nil, ErrDuplicateMythical
		}
	}

	creature := r.deps.Creatures.Create(c.Species, r.variant(p, c.Species))
	p.PlaceOnBench(creature)
	if additional >= 0 {
		r.registerAdditional(c.Species)
	}
	p.PokemonsProposition = nil
	r.updateEvolution(p)
	return nil, nil
}

// mythicalTier returns the mythical pick a species belongs to, or -1.
func (r *Room) mythicalTier(s domain.Species) int {
	for i := range r.cfg.MythicalPicksStages {
		if containsSpecies(r.deps.Creatures.MythicalPool(i), s) {
			return i
		}
	}
	return -1
}

func (r *Room) ownsMythicalOfTier(p *domain.Player, tier int) bool {
	pool := r.deps.Creatures.MythicalPool(tier)
	for _, c := range p.Board {
		if containsSpecies(pool, c.Species) {
			return true
		}
	}
	return false
}

// registerAdditional unlocks a species for every shop of the room.
func (r *Room) registerAdditional(s domain.Species) {
	if containsSpecies(r.AdditionalPokemons, s) {
		return
	}
	r.AdditionalPokemons = append(r.AdditionalPokemons, s)
	r.deps.Shop.AddAdditionalPokemon(s)
}

// drawAdditional pops up to n unclaimed species off an additional pool, so
// no two players are ever offered the same species.
func (r *Room) drawAdditional(pool, n int) []domain.Species {
	var drawn []domain.Species
	for len(drawn) < n && len(r.additionalPools[pool]) > 0 {
		s := r.additionalPools[pool][0]
		r.additionalPools[pool] = r.additionalPools[pool][1:]
		if !containsSpecies(r.AdditionalPokemons, s) {
			drawn = append(drawn, s)
		}
	}
	return drawn
}

// resolvePropositions grants a random entry of every pending offer. Species
// claimed by someone else in the meantime are never granted.
func (r *Room) resolvePropositions(p *domain.Player) {
	if len(p.ItemsProposition) == PropositionSize {
		p.Items.Add(p.ItemsProposition[r.rng.Intn(PropositionSize)])
	}
	p.ItemsProposition = nil

	var free []domain.Species
	for _, s := range p.PokemonsProposition {
		if !containsSpecies(r.AdditionalPokemons, s) {
			free = append(free, s)
		}
	}
	if len(free) > 0 {
		s := free[r.rng.Intn(len(free))]
		if !p.BenchFull() {
			p.PlaceOnBench(r.deps.Creatures.Create(s, r.variant(p, s)))
		}
		if r.cfg.AdditionalPickIndex(r.Stage) >= 0 {
			r.registerAdditional(s)
		}
	}
	p.PokemonsProposition = nil
}

func containsItem(items []domain.Item, it domain.Item) bool {
	for _, have := range items {
		if have == it {
			return true
		}
	}
	return false
}

func containsSpecies(list []domain.Species, s domain.Species) bool {
	for _, have := range list {
		if have == s {
			return true
		}
	}
	return false
}
