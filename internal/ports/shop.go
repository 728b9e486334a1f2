package ports

import "autobattler/internal/domain"

// ShopEngine draws offers from the shared availability pools.
type ShopEngine interface {
	// AssignShop redraws every slot.
	AssignShop(p *domain.Player)
	// RefillShop fills only the empty slots.
	RefillShop(p *domain.Player)
	// ReleasePokemon returns a species to its pool.
	ReleasePokemon(s domain.Species)
	// AddAdditionalPokemon makes a claimed species drawable.
	AddAdditionalPokemon(s domain.Species)
	// AssignMythicalPropositions offers a curated set from pool.
	AssignMythicalPropositions(p *domain.Player, pool []domain.Species)
}
