// Package minigame implements the carousel phase: every living player walks
// away with one item when the phase ends.
package minigame

import (
	"math/rand"
	"sort"
	"time"

	"autobattler/internal/domain"
	"autobattler/internal/ports"
)

// CompositeStage is the first stage whose carousel offers composite items.
const CompositeStage = 10

// Carousel implements ports.Minigame.
type Carousel struct {
	rng     *rand.Rand
	stage   int
	elapsed time.Duration
	// offers holds the item reserved for each player id.
	offers map[string]domain.Item
	active bool
}

var _ ports.Minigame = (*Carousel)(nil)

// New creates a carousel. A nil rng is replaced by a time-seeded one.
func New(rng *rand.Rand) *Carousel {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Carousel{rng: rng, offers: make(map[string]domain.Item)}
}

var composites = func() []domain.Item {
	out := make([]domain.Item, 0, len(domain.ItemRecipes))
	for it := range domain.ItemRecipes {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}()

func (c *Carousel) Initialize(players []*domain.Player, stage int) {
	c.stage = stage
	c.elapsed = 0
	c.active = true
	c.offers = make(map[string]domain.Item, len(players))
	for _, p := range players {
		if !p.Alive {
			continue
		}
		c.offers[p.ID] = c.pick()
	}
}

func (c *Carousel) Update(dt time.Duration) {
	if c.active {
		c.elapsed += dt
	}
}

// Stop hands every living player the item reserved for them.
func (c *Carousel) Stop(players []*domain.Player) {
	if !c.active {
		return
	}
	for _, p := range players {
		if !p.Alive {
			continue
		}
		it, ok := c.offers[p.ID]
		if !ok {
			it = c.pick()
		}
		p.Items.Add(it)
	}
	c.active = false
	c.offers = make(map[string]domain.Item)
}

// Offer returns the item reserved for a player in the running carousel.
func (c *Carousel) Offer(playerID string) (domain.Item, bool) {
	it, ok := c.offers[playerID]
	return it, ok
}

// Elapsed is the time spent in the running carousel.
func (c *Carousel) Elapsed() time.Duration { return c.elapsed }

func (c *Carousel) pick() domain.Item {
	if c.stage >= CompositeStage {
		return composites[c.rng.Intn(len(composites))]
	}
	return domain.BasicItems[c.rng.Intn(len(domain.BasicItems))]
}
