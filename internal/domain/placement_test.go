package domain

import "testing"

func put(p *Player, id string, x, y int, r Rarity) *Creature {
	c := &Creature{ID: id, Species: Species(id), X: x, Y: y, Rarity: r, CanBePlaced: true}
	p.Board[id] = c
	return c
}

func TestCanMove(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(p *Player) *Creature
		x, y   int
		phase  Phase
		expect bool
	}{
		{
			name: "bench to bench during fight",
			setup: func(p *Player) *Creature {
				return put(p, "a", 0, 0, RarityCommon)
			},
			x: 3, y: 0, phase: PhaseFight, expect: true,
		},
		{
			name: "bench to team during fight",
			setup: func(p *Player) *Creature {
				return put(p, "a", 0, 0, RarityCommon)
			},
			x: 3, y: 1, phase: PhaseFight, expect: false,
		},
		{
			name: "bench to empty team tile with room",
			setup: func(p *Player) *Creature {
				return put(p, "a", 0, 0, RarityCommon)
			},
			x: 3, y: 1, phase: PhasePick, expect: true,
		},
		{
			name: "bench to empty tile on full team",
			setup: func(p *Player) *Creature {
				put(p, "t", 0, 1, RarityCommon)
				return put(p, "a", 0, 0, RarityCommon)
			},
			x: 3, y: 1, phase: PhasePick, expect: false,
		},
		{
			name: "bench onto occupied tile on full team swaps",
			setup: func(p *Player) *Creature {
				put(p, "t", 3, 1, RarityCommon)
				return put(p, "a", 0, 0, RarityCommon)
			},
			x: 3, y: 1, phase: PhasePick, expect: true,
		},
		{
			name: "team to empty team tile on full team",
			setup: func(p *Player) *Creature {
				return put(p, "t", 0, 1, RarityCommon)
			},
			x: 5, y: 2, phase: PhasePick, expect: true,
		},
		{
			name: "special joins a full team",
			setup: func(p *Player) *Creature {
				put(p, "t", 0, 1, RarityCommon)
				return put(p, "s", 0, 0, RaritySpecial)
			},
			x: 3, y: 1, phase: PhasePick, expect: true,
		},
		{
			name: "team to bench during pick",
			setup: func(p *Player) *Creature {
				return put(p, "t", 0, 1, RarityCommon)
			},
			x: 2, y: 0, phase: PhasePick, expect: true,
		},
		{
			name: "off board",
			setup: func(p *Player) *Creature {
				return put(p, "a", 0, 0, RarityCommon)
			},
			x: 8, y: 0, phase: PhasePick, expect: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer("p1", "P1", false)
			c := tt.setup(p)
			if got := CanMove(p, c, tt.x, tt.y, tt.phase); got != tt.expect {
				t.Errorf("CanMove = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestTeamSwapAlwaysAcceptedWhenFull(t *testing.T) {
	p := NewPlayer("p1", "P1", false)
	p.Experience.SetLevel(2)
	a := put(p, "a", 0, 1, RarityCommon)
	put(p, "b", 4, 2, RarityCommon)

	if !CanMove(p, a, 4, 2, PhasePick) {
		t.Fatalf("swap between team creatures must be accepted")
	}
	p.MoveCreature(a, 4, 2)
	if b := p.Board["b"]; b.X != 0 || b.Y != 1 {
		t.Errorf("b should take a's old tile, got (%d,%d)", b.X, b.Y)
	}
	if p.TeamSize() != 2 {
		t.Errorf("team size changed: %d", p.TeamSize())
	}
}

func TestCanCarry(t *testing.T) {
	c := &Creature{Items: []Item{FlameOrb, Leftovers, Charcoal}}
	if !CanCarry(c, MiracleSeed) {
		t.Errorf("basic item should fit next to an attached basic item")
	}
	if CanCarry(c, ZoomLens) {
		t.Errorf("composite should not fit on a full creature")
	}
	c.Items = []Item{FlameOrb, Leftovers, ZoomLens}
	if CanCarry(c, MiracleSeed) {
		t.Errorf("basic item needs a basic partner on a full creature")
	}
}

func TestCanBeAbsorbed(t *testing.T) {
	ditto := &Creature{ID: "d", Species: Ditto}
	for _, r := range []Rarity{RarityMythical, RaritySpecial, RarityHatch} {
		if CanBeAbsorbed(ditto, &Creature{ID: "x", Rarity: r}) {
			t.Errorf("rarity %s should not be absorbed", r)
		}
	}
	if !CanBeAbsorbed(ditto, &Creature{ID: "x", Rarity: RarityRare}) {
		t.Errorf("rare creature should be absorbed")
	}
	if CanBeAbsorbed(ditto, nil) || CanBeAbsorbed(ditto, ditto) {
		t.Errorf("empty tile or self should not be absorbed")
	}
}
