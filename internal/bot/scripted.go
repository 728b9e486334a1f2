package bot

import "autobattler/internal/domain"

// ScriptedBrain replays a fixed board progression. lead shifts the stage the
// script is read at, so harder bots field later boards earlier.
type ScriptedBrain struct {
	steps []Step
	lead  int
}

func (b *ScriptedBrain) BoardFor(stage int) []Placement {
	at := stage + b.lead
	var board []Placement
	for _, s := range b.steps {
		if s.Stage > at {
			break
		}
		board = s.Board
	}
	return board
}

// DefaultScript is the progression used by identities without their own.
var DefaultScript = []Step{
	{Stage: 1, Board: []Placement{
		{Species: "charmander", X: 3, Y: 1},
	}},
	{Stage: 3, Board: []Placement{
		{Species: "charmander", X: 3, Y: 1},
		{Species: "geodude", X: 4, Y: 1},
	}},
	{Stage: 5, Board: []Placement{
		{Species: "charmeleon", X: 3, Y: 1, Items: []domain.Item{domain.Charcoal}},
		{Species: "geodude", X: 4, Y: 1},
		{Species: "zubat", X: 2, Y: 2},
	}},
	{Stage: 8, Board: []Placement{
		{Species: "charmeleon", X: 3, Y: 1, Items: []domain.Item{domain.FlameOrb}},
		{Species: "graveler", X: 4, Y: 1},
		{Species: "golbat", X: 2, Y: 2},
		{Species: "abra", X: 5, Y: 3},
	}},
	{Stage: 12, Board: []Placement{
		{Species: "charizard", X: 3, Y: 1, Items: []domain.Item{domain.FlameOrb, domain.Charcoal}},
		{Species: "graveler", X: 4, Y: 1},
		{Species: "golbat", X: 2, Y: 2},
		{Species: "kadabra", X: 5, Y: 3},
		{Species: "houndour", X: 1, Y: 2},
		{Species: "machop", X: 6, Y: 1},
	}},
	{Stage: 18, Board: []Placement{
		{Species: "charizard", X: 3, Y: 1, Items: []domain.Item{domain.FlameOrb, domain.Charcoal}},
		{Species: "golem", X: 4, Y: 1, Items: []domain.Item{domain.Leftovers}},
		{Species: "crobat", X: 2, Y: 2},
		{Species: "alakazam", X: 5, Y: 3},
		{Species: "houndoom", X: 1, Y: 2},
		{Species: "machoke", X: 6, Y: 1},
		{Species: "dragonair", X: 3, Y: 3},
		{Species: "larvitar", X: 0, Y: 1},
	}},
	{Stage: 25, Board: []Placement{
		{Species: "charizard", X: 3, Y: 1, Items: []domain.Item{domain.FlameOrb, domain.Charcoal}},
		{Species: "golem", X: 4, Y: 1, Items: []domain.Item{domain.Leftovers}},
		{Species: "crobat", X: 2, Y: 2},
		{Species: "alakazam", X: 5, Y: 3},
		{Species: "mega_houndoom", X: 1, Y: 2},
		{Species: "machamp", X: 6, Y: 1},
		{Species: "dragonite", X: 3, Y: 3},
		{Species: "pupitar", X: 0, Y: 1},
		{Species: "lapras", X: 7, Y: 2},
	}},
}
