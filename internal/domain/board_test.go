package domain

import "testing"

func TestFirstFreeBenchX(t *testing.T) {
	p := NewPlayer("p", "P", false)
	put(p, "a", 0, 0, RarityCommon)
	put(p, "b", 1, 0, RarityCommon)
	put(p, "c", 3, 0, RarityCommon)
	put(p, "t", 2, 1, RarityCommon)

	x, ok := p.FirstFreeBenchX()
	if !ok || x != 2 {
		t.Errorf("FirstFreeBenchX = %d, %v; want 2", x, ok)
	}
	if p.BenchCount() != 3 || p.TeamSize() != 1 {
		t.Errorf("bench=%d team=%d", p.BenchCount(), p.TeamSize())
	}

	for i := 0; i < BenchSize; i++ {
		if p.IsTileEmpty(i, 0) {
			put(p, string(rune('k'+i)), i, 0, RarityCommon)
		}
	}
	if !p.BenchFull() {
		t.Errorf("bench should be full")
	}
	if p.PlaceOnBench(&Creature{ID: "z"}) {
		t.Errorf("PlaceOnBench on a full bench")
	}
}

func TestFirstFreeTeamTile(t *testing.T) {
	p := NewPlayer("p", "P", false)
	put(p, "a", 0, 1, RarityCommon)
	x, y, ok := p.FirstFreeTeamTile()
	if !ok || x != 1 || y != 1 {
		t.Errorf("FirstFreeTeamTile = (%d,%d,%v)", x, y, ok)
	}
}

func TestFirstPlaceableOnBenchSkipsEggs(t *testing.T) {
	p := NewPlayer("p", "P", false)
	egg := put(p, "egg", 0, 0, RarityHatch)
	egg.CanBePlaced = false
	put(p, "b", 4, 0, RarityCommon)
	put(p, "a", 2, 0, RarityCommon)

	if got := p.FirstPlaceableOnBench(); got == nil || got.ID != "a" {
		t.Errorf("FirstPlaceableOnBench = %v", got)
	}
}

func TestSortedCreatures(t *testing.T) {
	p := NewPlayer("p", "P", false)
	put(p, "c", 1, 1, RarityCommon)
	put(p, "a", 5, 0, RarityCommon)
	put(p, "b", 0, 1, RarityCommon)

	got := p.SortedCreatures()
	want := []string{"a", "b", "c"}
	for i, c := range got {
		if c.ID != want[i] {
			t.Fatalf("order = %v", got)
		}
	}
}
