package app

import (
	"sort"

	"autobattler/internal/domain"
)

// MergeCount is how many copies of a creature evolve into one.
const MergeCount = 3

// mergeable reports whether copies of c evolve by merging. Timed evolutions
// only happen through the round countdown.
func mergeable(c *domain.Creature) bool {
	return c.Evolution != domain.SpeciesNone && !c.HasTimer
}

// completesMerge reports whether adding c makes a full set of copies.
func (r *Room) completesMerge(p *domain.Player, c *domain.Creature) bool {
	if !mergeable(c) {
		return false
	}
	n := 0
	for _, other := range p.Board {
		if other.Species == c.Species && mergeable(other) {
			n++
		}
	}
	return n == MergeCount-1
}

// updateEvolution merges every full set of copies into the evolved form,
// repeating while merges cascade.
func (r *Room) updateEvolution(p *domain.Player) {
	for r.mergeOnce(p) {
	}
}

func (r *Room) mergeOnce(p *domain.Player) bool {
	groups := make(map[domain.Species][]*domain.Creature)
	for _, c := range p.Board {
		if mergeable(c) {
			groups[c.Species] = append(groups[c.Species], c)
		}
	}
	species := make([]domain.Species, 0, len(groups))
	for s, copies := range groups {
		if len(copies) >= MergeCount {
			species = append(species, s)
		}
	}
	if len(species) == 0 {
		return false
	}
	sort.Slice(species, func(i, j int) bool { return species[i] < species[j] })

	copies := groups[species[0]]
	sort.Slice(copies, func(i, j int) bool { return mergeOrder(copies[i], copies[j]) })
	copies = copies[:MergeCount]
	anchor := copies[0]

	evolved := r.deps.Creatures.Create(anchor.Evolution, r.variant(p, anchor.Evolution))
	evolved.X, evolved.Y = anchor.X, anchor.Y
	for _, c := range copies {
		for _, it := range c.Items {
			if len(evolved.Items) < 3 && !evolved.HasItem(it) {
				evolved.AddItem(it)
			} else {
				p.Items.Add(it)
			}
		}
		delete(p.Board, c.ID)
	}
	p.Board[evolved.ID] = evolved
	return true
}

// mergeOrder puts team copies first, then the bench left to right, and a
// creature parked off the bench last.
func mergeOrder(a, b *domain.Creature) bool {
	if (a.X < 0) != (b.X < 0) {
		return b.X < 0
	}
	if a.OnBench() != b.OnBench() {
		return !a.OnBench()
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	if a.X != b.X {
		return a.X < b.X
	}
	return a.ID < b.ID
}

// tickEvolutionTimers counts down timed evolutions by one round.
func (r *Room) tickEvolutionTimers(p *domain.Player) {
	for _, c := range p.SortedCreatures() {
		if !c.HasTimer {
			continue
		}
		c.EvolutionTimer--
		if c.EvolutionTimer <= 0 {
			evolved := r.deps.Creatures.Transform(c, c.Evolution, r.variant(p, c.Evolution))
			delete(p.Board, c.ID)
			p.Board[evolved.ID] = evolved
			continue
		}
		if c.Species == domain.Egg {
			if c.EvolutionTimer >= 2 {
				c.Action = domain.ActionIdle
			} else {
				c.Action = domain.ActionHop
			}
		}
	}
}
