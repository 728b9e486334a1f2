package catalog

import (
	"math/rand"
	"testing"

	"autobattler/internal/domain"
)

func TestCreate(t *testing.T) {
	f := NewFactory(rand.New(rand.NewSource(1)))

	a := f.Create("charmeleon", "")
	b := f.Create("charmeleon", VariantShiny)
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("ids must be unique, got %q and %q", a.ID, b.ID)
	}
	if a.Family != "charmander" || a.Stars != 2 || a.Evolution != "charizard" {
		t.Errorf("unexpected creature %+v", a)
	}
	if a.Shiny || !b.Shiny {
		t.Errorf("variant not applied")
	}
	a.Types[0] = domain.SynergyDark
	if d, _ := Lookup("charmeleon"); d.Types[0] != domain.SynergyFire {
		t.Errorf("creature types alias the static table")
	}
}

func TestEggAndTimers(t *testing.T) {
	f := NewFactory(rand.New(rand.NewSource(7)))
	egg := f.RandomEgg()
	if !egg.HasTimer || egg.EvolutionTimer != 3 || egg.CanBePlaced {
		t.Errorf("unexpected egg %+v", egg)
	}
	found := false
	for _, s := range hatchable {
		if egg.Evolution == s {
			found = true
		}
	}
	if !found {
		t.Errorf("egg hatches into %s", egg.Evolution)
	}

	karp := f.Create(domain.Magikarp, "")
	if !karp.HasTimer || karp.Evolution != "gyarados" {
		t.Errorf("magikarp should evolve on a timer: %+v", karp)
	}
}

func TestTransformKeepsTileAndItems(t *testing.T) {
	f := NewFactory(nil)
	eevee := f.Create(domain.Eevee, "")
	eevee.X, eevee.Y = 3, 2
	eevee.Items = []domain.Item{domain.Charcoal}

	flareon := f.Transform(eevee, domain.Flareon, "")
	if flareon.X != 3 || flareon.Y != 2 || !flareon.HasItem(domain.Charcoal) {
		t.Errorf("unexpected transform %+v", flareon)
	}
	flareon.AddItem(domain.FireStone)
	if eevee.HasItem(domain.FireStone) {
		t.Errorf("items slice shared with the old creature")
	}
}

func TestSellPrice(t *testing.T) {
	f := NewFactory(nil)
	tests := []struct {
		species domain.Species
		want    int
	}{
		{"bulbasaur", 1},
		{"venusaur", 3},
		{"kadabra", 4},
		{"dratini", 3},
		{"mew", 10},
		{domain.Egg, 2},
		{domain.Ditto, 5},
	}
	for _, tt := range tests {
		if got := f.SellPrice(f.Create(tt.species, "")); got != tt.want {
			t.Errorf("SellPrice(%s) = %d, want %d", tt.species, got, tt.want)
		}
	}
}

func TestBaseFormAndPools(t *testing.T) {
	if got := BaseForm("charizard"); got != "charmander" {
		t.Errorf("BaseForm(charizard) = %s", got)
	}
	if got := BaseForm(domain.Flareon); got != domain.Flareon {
		t.Errorf("BaseForm(flareon) = %s", got)
	}
	for _, s := range ShopSpecies(domain.RarityCommon) {
		d, _ := Lookup(s)
		if d.Unlisted || d.Stars != 1 {
			t.Errorf("%s should not be in the common pool", s)
		}
	}
	for _, s := range AdditionalPool(0) {
		for _, listed := range ShopSpecies(domain.RarityUncommon) {
			if s == listed {
				t.Errorf("additional species %s listed before being claimed", s)
			}
		}
	}
	if len(MythicalPool(1)) == 0 || MythicalPool(2) != nil {
		t.Errorf("mythical pools mismatch")
	}
}

func TestRandomItemsAreDistinctBasics(t *testing.T) {
	f := NewFactory(rand.New(rand.NewSource(3)))
	items := f.RandomItems()
	if len(items) != ProposalSize {
		t.Fatalf("got %d items", len(items))
	}
	seen := map[domain.Item]bool{}
	for _, it := range items {
		if !domain.IsBasicItem(it) || seen[it] {
			t.Errorf("unexpected proposition %v", items)
		}
		seen[it] = true
	}
}
