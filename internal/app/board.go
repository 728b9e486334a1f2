package app

import (
	"context"
	"fmt"

	"autobattler/internal/domain"
)

// DragDropCommand moves a creature to a tile.
type DragDropCommand struct {
	PlayerID   string
	CreatureID string
	X, Y       int
}

func (DragDropCommand) Name() string { return "DragDrop" }

func (c DragDropCommand) Execute(_ context.Context, r *Room) ([]Command, error) {
	p, err := r.livePlayer(c.PlayerID)
	if err != nil {
		return nil, rejectBoard(c.PlayerID, err)
	}
	creature, ok := p.Board[c.CreatureID]
	if !ok {
		return nil, rejectBoard(p.ID, ErrUnknownCreature)
	}
	if !domain.ValidTile(c.X, c.Y) {
		return nil, rejectBoard(p.ID, fmt.Errorf("tile %d,%d: %w", c.X, c.Y, ErrIllegalMove))
	}

	if creature.Species == domain.Ditto {
		if err := r.dropDitto(p, creature, c.X, c.Y); err != nil {
			return nil, rejectBoard(p.ID, err)
		}
		p.RefreshSynergies()
		return nil, nil
	}

	if !domain.CanMove(p, creature, c.X, c.Y, r.Phase) {
		return nil, rejectBoard(p.ID, ErrIllegalMove)
	}
	p.MoveCreature(creature, c.X, c.Y)
	p.RefreshSynergies()
	if !creature.OnBench() && creature.Passive != domain.PassiveNone {
		domain.ApplyDynamicSynergies(p, creature)
		p.RefreshSynergies()
	}
	return nil, nil
}

// dropDitto absorbs the creature under the ditto, or moves the ditto along
// the bench when there is nothing to absorb.
func (r *Room) dropDitto(p *domain.Player, ditto *domain.Creature, x, y int) error {
	target := p.CreatureAt(x, y)
	if target == nil || target == ditto || !domain.CanBeAbsorbed(ditto, target) {
		if y != 0 || !ditto.OnBench() {
			return ErrIllegalMove
		}
		p.MoveCreature(ditto, x, y)
		return nil
	}
	if !target.OnBench() && r.Phase != domain.PhasePick {
		return ErrWrongPhase
	}
	if p.BenchFull() && !ditto.OnBench() && !target.OnBench() {
		return ErrBenchFull
	}

	for _, it := range target.Items {
		p.Items.Add(it)
	}
	for _, it := range ditto.Items {
		p.Items.Add(it)
	}
	delete(p.Board, target.ID)
	delete(p.Board, ditto.ID)

	base := r.deps.Creatures.BaseForm(target.Species)
	p.PlaceOnBench(r.deps.Creatures.Create(base, r.variant(p, base)))
	r.updateEvolution(p)
	return nil
}

// checkForLazyTeam plans the moves that fill every under-sized team with
// bench creatures before a fight.
func (r *Room) checkForLazyTeam() []Command {
	var cmds []Command
	for _, p := range r.AlivePlayers() {
		missing := p.Experience.Level - p.TeamSize()
		if missing <= 0 {
			continue
		}
		var bench []*domain.Creature
		for _, c := range p.SortedCreatures() {
			if c.OnBench() && c.CanBePlaced && c.X >= 0 {
				bench = append(bench, c)
			}
		}
		tiles := freeTeamTiles(p)
		for i := 0; i < missing && i < len(bench) && i < len(tiles); i++ {
			cmds = append(cmds, DragDropCommand{
				PlayerID:   p.ID,
				CreatureID: bench[i].ID,
				X:          tiles[i][0],
				Y:          tiles[i][1],
			})
		}
	}
	return cmds
}

func freeTeamTiles(p *domain.Player) [][2]int {
	var out [][2]int
	for y := 1; y <= domain.TeamRows; y++ {
		for x := 0; x < domain.BoardWidth; x++ {
			if p.IsTileEmpty(x, y) {
				out = append(out, [2]int{x, y})
			}
		}
	}
	return out
}
