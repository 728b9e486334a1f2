// Package shop draws shop offers from the availability pools shared by every
// player of a room.
package shop

import (
	"math/rand"
	"sort"
	"time"

	"autobattler/internal/catalog"
	"autobattler/internal/domain"
	"autobattler/internal/ports"
)

// MythicalPropositionSize is how many mythicals a player is offered.
const MythicalPropositionSize = 6

// Copies is the number of instances of each species per rarity pool.
var Copies = map[domain.Rarity]int{
	domain.RarityCommon:    18,
	domain.RarityUncommon:  15,
	domain.RarityRare:      12,
	domain.RarityEpic:      10,
	domain.RarityLegendary: 8,
}

var rarityOrder = []domain.Rarity{
	domain.RarityCommon,
	domain.RarityUncommon,
	domain.RarityRare,
	domain.RarityEpic,
	domain.RarityLegendary,
}

// Probabilities gives the chance of each rarity, in rarityOrder, per level.
var Probabilities = map[int][5]float64{
	1: {1, 0, 0, 0, 0},
	2: {1, 0, 0, 0, 0},
	3: {0.7, 0.3, 0, 0, 0},
	4: {0.5, 0.4, 0.1, 0, 0},
	5: {0.36, 0.42, 0.2, 0.02, 0},
	6: {0.25, 0.4, 0.3, 0.05, 0},
	7: {0.16, 0.33, 0.35, 0.15, 0.01},
	8: {0.11, 0.27, 0.35, 0.22, 0.05},
	9: {0.05, 0.2, 0.35, 0.3, 0.1},
}

// Engine implements ports.ShopEngine over per-rarity counted pools.
type Engine struct {
	rng   *rand.Rand
	pools map[domain.Rarity]map[domain.Species]int
}

var _ ports.ShopEngine = (*Engine)(nil)

// NewEngine fills every pool. A nil rng is replaced by a time-seeded one.
func NewEngine(rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e := &Engine{rng: rng, pools: make(map[domain.Rarity]map[domain.Species]int)}
	for _, r := range rarityOrder {
		pool := make(map[domain.Species]int)
		for _, s := range catalog.ShopSpecies(r) {
			pool[s] = Copies[r]
		}
		e.pools[r] = pool
	}
	return e
}

// Remaining reports how many copies of a species' family are left.
func (e *Engine) Remaining(s domain.Species) int {
	family := catalog.BaseForm(s)
	d, ok := catalog.Lookup(family)
	if !ok {
		return 0
	}
	return e.pools[d.Rarity][family]
}

func (e *Engine) AssignShop(p *domain.Player) {
	for i, s := range p.Shop {
		if s != domain.SpeciesNone {
			e.ReleasePokemon(s)
			p.Shop[i] = domain.SpeciesNone
		}
	}
	e.RefillShop(p)
}

func (e *Engine) RefillShop(p *domain.Player) {
	for i, s := range p.Shop {
		if s == domain.SpeciesNone {
			p.Shop[i] = e.draw(p.Experience.Level)
		}
	}
}

// ReleasePokemon returns the instances a creature stands for to its pool.
// Evolved forms return one base copy per merged instance.
func (e *Engine) ReleasePokemon(s domain.Species) {
	if s == domain.SpeciesNone {
		return
	}
	family := catalog.BaseForm(s)
	d, ok := catalog.Lookup(family)
	if !ok {
		return
	}
	pool, ok := e.pools[d.Rarity]
	if !ok {
		return
	}
	if _, listed := pool[family]; !listed {
		return
	}
	entities := 1
	if sd, ok := catalog.Lookup(s); ok {
		switch sd.Stars {
		case 2:
			entities = 3
		case 3:
			entities = 9
		}
	}
	pool[family] += entities
}

func (e *Engine) AddAdditionalPokemon(s domain.Species) {
	d, ok := catalog.Lookup(s)
	if !ok {
		return
	}
	pool, ok := e.pools[d.Rarity]
	if !ok {
		return
	}
	if _, listed := pool[s]; listed {
		return
	}
	pool[s] = Copies[d.Rarity]
}

func (e *Engine) AssignMythicalPropositions(p *domain.Player, pool []domain.Species) {
	candidates := append([]domain.Species(nil), pool...)
	e.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > MythicalPropositionSize {
		candidates = candidates[:MythicalPropositionSize]
	}
	p.PokemonsProposition = candidates
}

func (e *Engine) draw(level int) domain.Species {
	probs, ok := Probabilities[level]
	if !ok {
		probs = Probabilities[1]
	}
	roll := e.rng.Float64()
	idx := 0
	acc := 0.0
	for i, pr := range probs {
		if pr <= 0 {
			continue
		}
		idx = i
		acc += pr
		if roll < acc {
			break
		}
	}
	// Fall back to cheaper rarities when a pool is exhausted.
	for i := idx; i >= 0; i-- {
		if s, ok := e.takeFrom(rarityOrder[i]); ok {
			return s
		}
	}
	return domain.SpeciesNone
}

func (e *Engine) takeFrom(r domain.Rarity) (domain.Species, bool) {
	pool := e.pools[r]
	species := make([]domain.Species, 0, len(pool))
	total := 0
	for s, n := range pool {
		if n > 0 {
			species = append(species, s)
			total += n
		}
	}
	if total == 0 {
		return domain.SpeciesNone, false
	}
	sort.Slice(species, func(i, j int) bool { return species[i] < species[j] })
	pick := e.rng.Intn(total)
	for _, s := range species {
		pick -= pool[s]
		if pick < 0 {
			pool[s]--
			return s, true
		}
	}
	return domain.SpeciesNone, false
}
