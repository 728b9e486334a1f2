package app

import (
	"context"
	"fmt"

	"autobattler/internal/domain"
)

// CombineItemsCommand fuses two stash items.
type CombineItemsCommand struct {
	PlayerID string
	ItemA    domain.Item
	ItemB    domain.Item
}

func (CombineItemsCommand) Name() string { return "CombineItems" }

func (c CombineItemsCommand) Execute(_ context.Context, r *Room) ([]Command, error) {
	p, err := r.livePlayer(c.PlayerID)
	if err != nil {
		return nil, rejectItems(c.PlayerID, err)
	}
	held := p.Items.Has(c.ItemA) && p.Items.Has(c.ItemB)
	if c.ItemA == c.ItemB {
		held = p.Items.Count(c.ItemA) >= 2
	}
	if !held {
		return nil, rejectItems(p.ID, ErrItemNotHeld)
	}
	result, ok := domain.FindRecipe(c.ItemA, c.ItemB)
	if !ok {
		return nil, rejectItems(p.ID, fmt.Errorf("%s + %s: %w", c.ItemA, c.ItemB, ErrNoRecipe))
	}
	p.Items.Remove(c.ItemA)
	p.Items.Remove(c.ItemB)
	p.Items.Add(result)
	p.RefreshSynergies()
	return nil, nil
}

// EquipItemCommand gives an item to the creature standing on a tile.
// Bypass marks a fusion result whose ingredients were already paid for.
type EquipItemCommand struct {
	PlayerID string
	Item     domain.Item
	X, Y     int
	Bypass   bool
}

func (EquipItemCommand) Name() string { return "EquipItem" }

func (c EquipItemCommand) Execute(_ context.Context, r *Room) ([]Command, error) {
	p, err := r.livePlayer(c.PlayerID)
	if err != nil {
		return nil, rejectItems(c.PlayerID, err)
	}
	if !c.Bypass && !p.Items.Has(c.Item) {
		return nil, rejectItems(p.ID, ErrItemNotHeld)
	}
	creature := p.CreatureAt(c.X, c.Y)
	if creature == nil {
		return nil, rejectItems(p.ID, ErrUnknownCreature)
	}
	if creature.Species == domain.Ditto {
		return nil, rejectItems(p.ID, ErrItemRejected)
	}
	if !domain.CanCarry(creature, c.Item) {
		return nil, rejectItems(p.ID, ErrItemSlotsFull)
	}

	target, outcome := domain.ResolveTransform(creature.Species, c.Item)
	switch outcome {
	case domain.Reject:
		return nil, rejectItems(p.ID, fmt.Errorf("%s refuses %s: %w", creature.Species, c.Item, ErrItemRejected))
	case domain.Transform:
		evolved := r.deps.Creatures.Transform(creature, target, r.variant(p, target))
		evolved.AddItem(c.Item)
		delete(p.Board, creature.ID)
		p.Board[evolved.ID] = evolved
		c.consume(p)
		p.RefreshSynergies()
		return nil, nil
	}

	if domain.IsBasicItem(c.Item) {
		if last, ok := creature.LastBasicItem(); ok {
			if result, ok := domain.FindRecipe(last, c.Item); ok {
				creature.RemoveItem(last)
				c.consume(p)
				p.RefreshSynergies()
				if creature.HasItem(result) {
					p.Items.Add(result)
					return nil, nil
				}
				return []Command{EquipItemCommand{
					PlayerID: p.ID,
					Item:     result,
					X:        c.X,
					Y:        c.Y,
					Bypass:   true,
				}}, nil
			}
		}
	}
	// A second copy of a held item is refused, basic or not, so the client
	// gets a failure and puts the item back.
	if creature.HasItem(c.Item) {
		return nil, rejectItems(p.ID, ErrDuplicateItem)
	}
	creature.AddItem(c.Item)
	c.consume(p)
	p.RefreshSynergies()
	return nil, nil
}

func (c EquipItemCommand) consume(p *domain.Player) {
	if !c.Bypass {
		p.Items.Remove(c.Item)
	}
}
