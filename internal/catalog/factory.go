package catalog

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"autobattler/internal/domain"
	"autobattler/internal/ports"
)

// VariantShiny is the collection variant that makes instances shiny.
const VariantShiny = "shiny"

// ProposalSize is the number of items offered on an item proposal stage.
const ProposalSize = 3

// Factory builds creatures and draws items.
type Factory struct {
	rng *rand.Rand
}

var (
	_ ports.CreatureFactory = (*Factory)(nil)
	_ ports.ItemFactory     = (*Factory)(nil)
)

// NewFactory creates a factory. A nil rng is replaced by a time-seeded one.
func NewFactory(rng *rand.Rand) *Factory {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Factory{rng: rng}
}

func (f *Factory) Create(s domain.Species, variant string) *domain.Creature {
	d, ok := speciesTable[s]
	if !ok {
		d = SpeciesData{Rarity: domain.RarityCommon, Stars: 1}
	}
	c := &domain.Creature{
		ID:          uuid.NewString(),
		Species:     s,
		Family:      BaseForm(s),
		Rarity:      d.Rarity,
		Stars:       d.Stars,
		Evolution:   d.Evolution,
		Types:       append([]domain.Synergy(nil), d.Types...),
		Passive:     d.Passive,
		Shiny:       variant == VariantShiny,
		Action:      domain.ActionIdle,
		CanBePlaced: !d.Benched,
	}
	if d.EvolutionRounds > 0 {
		c.EvolutionTimer = d.EvolutionRounds
		c.HasTimer = true
	}
	return c
}

func (f *Factory) Transform(c *domain.Creature, s domain.Species, variant string) *domain.Creature {
	n := f.Create(s, variant)
	n.X, n.Y = c.X, c.Y
	n.Items = append([]domain.Item(nil), c.Items...)
	return n
}

func (f *Factory) BaseForm(s domain.Species) domain.Species { return BaseForm(s) }

func (f *Factory) RandomEgg() *domain.Creature {
	egg := f.Create(domain.Egg, "")
	egg.Evolution = hatchable[f.rng.Intn(len(hatchable))]
	return egg
}

func (f *Factory) Cost(s domain.Species) int { return Cost(s) }

// SellPrice refunds the rarity cost per star, with fixed prices for eggs and
// ditto.
func (f *Factory) SellPrice(c *domain.Creature) int {
	switch c.Species {
	case domain.Egg:
		return 2
	case domain.Ditto:
		return 5
	}
	stars := c.Stars
	if stars < 1 {
		stars = 1
	}
	return rarityCost[c.Rarity] * stars
}

func (f *Factory) AdditionalPool(n int) []domain.Species { return AdditionalPool(n) }

func (f *Factory) MythicalPool(n int) []domain.Species { return MythicalPool(n) }

// RandomItems returns distinct basic items for a proposition.
func (f *Factory) RandomItems() []domain.Item {
	perm := f.rng.Perm(len(domain.BasicItems))
	out := make([]domain.Item, 0, ProposalSize)
	for _, i := range perm[:ProposalSize] {
		out = append(out, domain.BasicItems[i])
	}
	return out
}

func (f *Factory) RandomBasicItem() domain.Item {
	return domain.BasicItems[f.rng.Intn(len(domain.BasicItems))]
}
