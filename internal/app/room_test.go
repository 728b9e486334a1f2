package app

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"autobattler/internal/catalog"
	"autobattler/internal/config"
	"autobattler/internal/domain"
	"autobattler/internal/minigame"
	"autobattler/internal/ports"
	"autobattler/internal/shop"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return map[string]interface{}{}
}

type fakeBattle struct {
	id      string
	result  domain.BattleResult
	damage  int
	length  time.Duration
	elapsed time.Duration
	titles  []domain.Title
	stopped bool
}

func (b *fakeBattle) ID() string { return b.id }

func (b *fakeBattle) Update(dt time.Duration) bool {
	if b.stopped {
		return true
	}
	b.elapsed += dt
	return b.elapsed >= b.length
}

func (b *fakeBattle) Result() domain.BattleResult { return b.result }

func (b *fakeBattle) Damage(int) int {
	if b.result == domain.ResultWin {
		return 0
	}
	return b.damage
}

func (b *fakeBattle) Weather() domain.Weather      { return domain.WeatherNeutral }
func (b *fakeBattle) Achievements() []domain.Title { return b.titles }
func (b *fakeBattle) Stop()                        { b.stopped = true }

// fakeSimulator wins every fight unless results says otherwise.
type fakeSimulator struct {
	results map[string]domain.BattleResult
	titles  map[string][]domain.Title
	damage  int
	length  time.Duration
	setups  []ports.BattleSetup
	pve     []ports.PVESetup
	count   int
}

func newFakeSimulator() *fakeSimulator {
	return &fakeSimulator{
		results: make(map[string]domain.BattleResult),
		titles:  make(map[string][]domain.Title),
		damage:  10,
		length:  5 * time.Second,
	}
}

func (f *fakeSimulator) Weather([]domain.Creature, []domain.Creature) domain.Weather {
	return domain.WeatherNeutral
}

func (f *fakeSimulator) Start(setup ports.BattleSetup) ports.Battle {
	f.setups = append(f.setups, setup)
	return f.battle(setup.Player.PlayerID)
}

func (f *fakeSimulator) StartPVE(setup ports.PVESetup) ports.Battle {
	f.pve = append(f.pve, setup)
	return f.battle(setup.Player.PlayerID)
}

func (f *fakeSimulator) battle(playerID string) *fakeBattle {
	f.count++
	result, ok := f.results[playerID]
	if !ok {
		result = domain.ResultWin
	}
	return &fakeBattle{
		id:     fmt.Sprintf("battle-%d", f.count),
		result: result,
		damage: f.damage,
		length: f.length,
		titles: f.titles[playerID],
	}
}

// newTestRoom starts a game with humans p1..pN and bots bot1..botM.
func newTestRoom(t *testing.T, humans, bots int) (*Room, *fakeSimulator) {
	t.Helper()
	return newTestRoomWithConfig(t, config.DefaultGameConfig(), humans, bots)
}

func newTestRoomWithConfig(t *testing.T, cfg *config.GameConfig, humans, bots int) (*Room, *fakeSimulator) {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	sim := newFakeSimulator()
	factory := catalog.NewFactory(rng)
	room := NewRoom(cfg, Deps{
		Shop:      shop.NewEngine(rng),
		Simulator: sim,
		Minigame:  minigame.New(rng),
		Creatures: factory,
		Items:     factory,
	}, noopLogger{}, rng)

	ctx := context.Background()
	for i := 1; i <= humans; i++ {
		id := fmt.Sprintf("p%d", i)
		room.Dispatch(ctx, AdmitPlayerCommand{Profile: ports.Profile{UserID: id, DisplayName: id}})
	}
	for i := 1; i <= bots; i++ {
		id := fmt.Sprintf("bot%d", i)
		room.Dispatch(ctx, AdmitPlayerCommand{Profile: ports.Profile{UserID: id, DisplayName: id}, IsBot: true})
	}
	room.Dispatch(ctx, StartGameCommand{})
	if !room.Started {
		t.Fatalf("room did not start")
	}
	return room, sim
}

func mustPlayer(t *testing.T, r *Room, id string) *domain.Player {
	t.Helper()
	p, ok := r.Player(id)
	if !ok {
		t.Fatalf("player %s not found", id)
	}
	return p
}

// place puts a fresh creature on a tile, bypassing every rule.
func place(r *Room, p *domain.Player, s domain.Species, x, y int, items ...domain.Item) *domain.Creature {
	c := r.deps.Creatures.Create(s, "")
	c.X, c.Y = x, y
	c.Items = append(c.Items, items...)
	p.Board[c.ID] = c
	return c
}

func eventsOf(events []Event, kind EventKind) []Event {
	var out []Event
	for _, ev := range events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

func TestAdmitPlayer(t *testing.T) {
	room, _ := newTestRoom(t, 2, 1)

	if room.PlayerCount() != 3 || room.HumanCount() != 2 {
		t.Fatalf("players = %d, humans = %d", room.PlayerCount(), room.HumanCount())
	}
	p1 := mustPlayer(t, room, "p1")
	if p1.Rank != 1 || mustPlayer(t, room, "bot1").Rank != 3 {
		t.Errorf("ranks follow join order")
	}
	for i, s := range p1.Shop {
		if s == domain.SpeciesNone {
			t.Errorf("human shop slot %d empty after join", i)
		}
	}
	for _, s := range mustPlayer(t, room, "bot1").Shop {
		if s != domain.SpeciesNone {
			t.Errorf("bots get no shop")
		}
	}

	room.Dispatch(context.Background(), AdmitPlayerCommand{Profile: ports.Profile{UserID: "p1"}})
	if room.PlayerCount() != 3 {
		t.Errorf("duplicate join inserted a player")
	}
}

func TestAdmitCopiesProfile(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	factory := catalog.NewFactory(rng)
	room := NewRoom(nil, Deps{Shop: shop.NewEngine(rng), Simulator: newFakeSimulator(), Minigame: minigame.New(rng), Creatures: factory, Items: factory}, noopLogger{}, rng)

	room.Dispatch(context.Background(), AdmitPlayerCommand{Profile: ports.Profile{
		UserID:      "u1",
		DisplayName: "Ash",
		Avatar:      "pikachu",
		Elo:         1200,
		Title:       domain.TitleDuelist,
		Role:        "admin",
		Collection:  map[domain.Species]string{"pichu": catalog.VariantShiny},
	}})
	p := mustPlayer(t, room, "u1")
	if p.Name != "Ash" || p.Avatar != "pikachu" || p.Elo != 1200 || p.Role != "admin" {
		t.Errorf("profile not copied: %+v", p)
	}
	if !p.HasTitle(domain.TitleDuelist) {
		t.Errorf("title not copied")
	}
	if c := factory.Create("pichu", room.variant(p, "pichu")); !c.Shiny {
		t.Errorf("collection variant not used")
	}
}

func TestLoneWolfWhenFullWithOneHuman(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.MaxPlayers = 3
	room, _ := newTestRoomWithConfig(t, cfg, 1, 2)

	if !mustPlayer(t, room, "p1").HasTitle(domain.TitleLoneWolf) {
		t.Errorf("single human should get the lone wolf title")
	}
	room.Dispatch(context.Background(), AdmitPlayerCommand{Profile: ports.Profile{UserID: "late"}})
	if _, ok := room.Player("late"); ok {
		t.Errorf("full room admitted a player")
	}
}

func TestSpectate(t *testing.T) {
	room, _ := newTestRoom(t, 1, 0)
	room.Dispatch(context.Background(), SpectateCommand{UserID: "watcher"})

	if !room.IsSpectator("watcher") {
		t.Errorf("spectator not recorded")
	}
	if _, ok := room.Player("watcher"); ok || room.PlayerCount() != 1 {
		t.Errorf("spectators do not get a player")
	}
}

func TestStartGameOnce(t *testing.T) {
	room, _ := newTestRoom(t, 1, 0)
	if room.Phase != domain.PhasePick || room.Stage != 1 || room.Time != 20000 {
		t.Fatalf("phase=%s stage=%d time=%d", room.Phase, room.Stage, room.Time)
	}
	room.Time = 1234
	room.Dispatch(context.Background(), StartGameCommand{})
	if room.Time != 1234 {
		t.Errorf("second start reset the room")
	}
}

func TestIntentsBeforeStartAreRejected(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	factory := catalog.NewFactory(rng)
	room := NewRoom(nil, Deps{Shop: shop.NewEngine(rng), Simulator: newFakeSimulator(), Minigame: minigame.New(rng), Creatures: factory, Items: factory}, noopLogger{}, rng)
	ctx := context.Background()
	room.Dispatch(ctx, AdmitPlayerCommand{Profile: ports.Profile{UserID: "p1"}})

	p := mustPlayer(t, room, "p1")
	room.Dispatch(ctx, RerollCommand{PlayerID: "p1"})
	if p.Money != domain.InitialMoney || p.RerollCount != 0 {
		t.Errorf("reroll applied before start")
	}
}

func TestLeaveFreesLobbySeat(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	factory := catalog.NewFactory(rng)
	room := NewRoom(nil, Deps{Shop: shop.NewEngine(rng), Simulator: newFakeSimulator(), Minigame: minigame.New(rng), Creatures: factory, Items: factory}, noopLogger{}, rng)
	ctx := context.Background()
	room.Dispatch(ctx,
		AdmitPlayerCommand{Profile: ports.Profile{UserID: "p1"}},
		AdmitPlayerCommand{Profile: ports.Profile{UserID: "p2"}},
	)
	p1 := mustPlayer(t, room, "p1")

	room.Dispatch(ctx, LeaveCommand{UserID: "p1"})

	if _, ok := room.Player("p1"); ok || room.PlayerCount() != 1 {
		t.Fatalf("lobby seat not freed")
	}
	for _, s := range p1.Shop {
		if s != domain.SpeciesNone {
			t.Errorf("shop offer %s not returned to the pool", s)
		}
	}
	if p2 := mustPlayer(t, room, "p2"); p2.Rank != 1 {
		t.Errorf("rank = %d, want 1", p2.Rank)
	}

	room.Dispatch(ctx, StartGameCommand{})
	room.Dispatch(ctx, LeaveCommand{UserID: "p2"})
	if _, ok := room.Player("p2"); !ok {
		t.Errorf("player removed from a running game")
	}
}
