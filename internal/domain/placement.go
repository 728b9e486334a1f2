package domain

// CanMove reports whether c may be dropped on (x, y) during phase.
//
// Bench to bench is always allowed. Anything touching the team rows needs
// the pick phase; special creatures may always join the team, others are
// only refused when they would add a net new creature to a full team.
func CanMove(p *Player, c *Creature, x, y int, phase Phase) bool {
	if !ValidTile(x, y) {
		return false
	}
	toBench := y == 0
	fromBench := c.OnBench()
	if toBench && fromBench {
		return true
	}
	if phase != PhasePick {
		return false
	}
	if toBench {
		return true
	}
	if c.Rarity == RaritySpecial {
		return true
	}
	teamFull := p.TeamSize() >= p.Experience.Level
	return !(teamFull && p.IsTileEmpty(x, y) && fromBench)
}

// CanBeAbsorbed reports whether a ditto dropped on target copies it.
func CanBeAbsorbed(ditto, target *Creature) bool {
	if target == nil || target == ditto || target.Species == Ditto {
		return false
	}
	switch target.Rarity {
	case RarityMythical, RaritySpecial, RarityHatch:
		return false
	}
	return true
}

// CanCarry reports whether c has room for item.
// A full creature still accepts a basic item while it holds one, since the
// two will fuse.
func CanCarry(c *Creature, item Item) bool {
	if len(c.Items) < 3 {
		return true
	}
	if !IsBasicItem(item) {
		return false
	}
	_, ok := c.LastBasicItem()
	return ok
}
