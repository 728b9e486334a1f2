package domain

import "sort"

const (
	// BoardWidth is the number of columns of the bench and of each team row.
	BoardWidth = 8
	// TeamRows is the number of rows above the bench.
	TeamRows = 3
	// BenchSize is the bench capacity.
	BenchSize = BoardWidth
)

// ValidTile reports whether (x, y) is on the board.
func ValidTile(x, y int) bool {
	return x >= 0 && x < BoardWidth && y >= 0 && y <= TeamRows
}

// SortedCreatures returns the board ordered by row, column, then id.
func (p *Player) SortedCreatures() []*Creature {
	out := make([]*Creature, 0, len(p.Board))
	for _, c := range p.Board {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// CreatureAt returns the creature on (x, y), if any.
func (p *Player) CreatureAt(x, y int) *Creature {
	for _, c := range p.Board {
		if c.X == x && c.Y == y {
			return c
		}
	}
	return nil
}

// IsTileEmpty reports whether nothing sits on (x, y).
func (p *Player) IsTileEmpty(x, y int) bool {
	return p.CreatureAt(x, y) == nil
}

// BenchCount is the number of creatures on the bench.
func (p *Player) BenchCount() int {
	n := 0
	for _, c := range p.Board {
		if c.OnBench() {
			n++
		}
	}
	return n
}

// TeamSize is the number of creatures on the team rows.
func (p *Player) TeamSize() int {
	return len(p.Board) - p.BenchCount()
}

// BenchFull reports whether the bench has no free slot.
func (p *Player) BenchFull() bool {
	_, ok := p.FirstFreeBenchX()
	return !ok
}

// FirstFreeBenchX returns the leftmost free bench column.
func (p *Player) FirstFreeBenchX() (int, bool) {
	used := make([]bool, BoardWidth)
	for _, c := range p.Board {
		if c.OnBench() && c.X >= 0 && c.X < BoardWidth {
			used[c.X] = true
		}
	}
	for x, u := range used {
		if !u {
			return x, true
		}
	}
	return -1, false
}

// FirstFreeTeamTile returns the first free team tile, row by row.
func (p *Player) FirstFreeTeamTile() (int, int, bool) {
	for y := 1; y <= TeamRows; y++ {
		for x := 0; x < BoardWidth; x++ {
			if p.IsTileEmpty(x, y) {
				return x, y, true
			}
		}
	}
	return -1, -1, false
}

// FirstPlaceableOnBench returns the leftmost bench creature that may be
// promoted to the team.
func (p *Player) FirstPlaceableOnBench() *Creature {
	var best *Creature
	for _, c := range p.Board {
		if !c.OnBench() || !c.CanBePlaced {
			continue
		}
		if best == nil || c.X < best.X || (c.X == best.X && c.ID < best.ID) {
			best = c
		}
	}
	return best
}

// MoveCreature puts c on (x, y). A creature already there takes c's old tile.
func (p *Player) MoveCreature(c *Creature, x, y int) {
	if other := p.CreatureAt(x, y); other != nil && other != c {
		other.X, other.Y = c.X, c.Y
	}
	c.X, c.Y = x, y
}

// PlaceOnBench puts a new creature on the first free bench slot.
func (p *Player) PlaceOnBench(c *Creature) bool {
	x, ok := p.FirstFreeBenchX()
	if !ok {
		return false
	}
	c.X, c.Y = x, 0
	p.Board[c.ID] = c
	return true
}

// CountSpecies returns how many creatures of the species are on the board.
func (p *Player) CountSpecies(s Species) int {
	n := 0
	for _, c := range p.Board {
		if c.Species == s {
			n++
		}
	}
	return n
}
