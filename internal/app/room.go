package app

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"
	"go.opentelemetry.io/otel/trace"

	"autobattler/internal/config"
	"autobattler/internal/domain"
	"autobattler/internal/ports"
	"autobattler/internal/telemetry"
)

// Deps are the collaborators a room drives.
type Deps struct {
	Shop      ports.ShopEngine
	Simulator ports.BattleSimulator
	Minigame  ports.Minigame
	Creatures ports.CreatureFactory
	Items     ports.ItemFactory
	// Bots may be nil when the room never hosts bots.
	Bots ports.BotRoster
}

// Command is one intent applied to a room. Execute either applies all of its
// effects or none, and may return follow-up commands.
type Command interface {
	Name() string
	Execute(ctx context.Context, r *Room) ([]Command, error)
}

// Room is the authoritative state of one game.
// It is not safe for concurrent use; every mutation goes through Dispatch.
type Room struct {
	cfg    *config.GameConfig
	deps   Deps
	logger runtime.Logger
	rng    *rand.Rand
	tracer trace.Tracer
	sims   *SimulationManager

	Phase          domain.Phase
	Stage          int
	Time           int // milliseconds left in the phase
	RoundTime      int // seconds left, rounded
	Started        bool
	GameFinished   bool
	ShinyEncounter bool

	// AdditionalPokemons is the species claimed on additional pick stages.
	AdditionalPokemons []domain.Species

	players    map[string]*domain.Player
	order      []string
	spectators map[string]bool

	additionalPools [2][]domain.Species
	recentOpponents map[string][]string

	clock    time.Duration
	timers   []timer
	disposed bool

	outbox []Event
}

// NewRoom creates an empty room. A nil rng is replaced by a time-seeded one.
func NewRoom(cfg *config.GameConfig, deps Deps, logger runtime.Logger, rng *rand.Rand) *Room {
	if cfg == nil {
		cfg = config.GetGameConfig()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	r := &Room{
		cfg:             cfg,
		deps:            deps,
		logger:          logger,
		rng:             rng,
		tracer:          telemetry.Tracer(),
		sims:            NewSimulationManager(deps.Simulator),
		Phase:           domain.PhasePick,
		Stage:           1,
		players:         make(map[string]*domain.Player),
		spectators:      make(map[string]bool),
		recentOpponents: make(map[string][]string),
	}
	for i := range r.additionalPools {
		pool := deps.Creatures.AdditionalPool(i)
		rng.Shuffle(len(pool), func(a, b int) { pool[a], pool[b] = pool[b], pool[a] })
		r.additionalPools[i] = pool
	}
	return r
}

// Dispatch applies commands and their follow-ups in FIFO order and returns
// the notifications they produced. A failing command is logged, reported to
// its player when it carries refresh hints, and does not stop the queue.
func (r *Room) Dispatch(ctx context.Context, cmds ...Command) []Event {
	queue := append([]Command(nil), cmds...)
	for len(queue) > 0 {
		cmd := queue[0]
		queue = queue[1:]

		next, err := cmd.Execute(ctx, r)
		if err != nil {
			r.reject(cmd, err)
			continue
		}
		queue = append(queue, next...)
	}
	out := r.outbox
	r.outbox = nil
	return out
}

func (r *Room) reject(cmd Command, err error) {
	r.logger.Debug("Dispatch: %s rejected: %v", cmd.Name(), err)
	var rej *RejectionError
	if errors.As(err, &rej) && rej.PlayerID != "" {
		r.emit(Event{
			Kind:       EventDragDropFailed,
			Payload:    DragDropFailedPayload{UpdateBoard: rej.UpdateBoard, UpdateItems: rej.UpdateItems},
			Recipients: []string{rej.PlayerID},
		})
	}
}

func (r *Room) emit(ev Event) {
	r.outbox = append(r.outbox, ev)
}

// Config returns the stage tables the room runs with.
func (r *Room) Config() *config.GameConfig { return r.cfg }

// Player returns a player by id.
func (r *Room) Player(id string) (*domain.Player, bool) {
	p, ok := r.players[id]
	return p, ok
}

// Players returns every player in join order.
func (r *Room) Players() []*domain.Player {
	out := make([]*domain.Player, 0, len(r.order))
	for _, id := range r.order {
		if p, ok := r.players[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// AlivePlayers returns living players in join order.
func (r *Room) AlivePlayers() []*domain.Player {
	out := make([]*domain.Player, 0, len(r.order))
	for _, p := range r.Players() {
		if p.Alive {
			out = append(out, p)
		}
	}
	return out
}

// PlayerCount is the number of players, bots included.
func (r *Room) PlayerCount() int { return len(r.players) }

// HumanCount is the number of non-bot players.
func (r *Room) HumanCount() int {
	n := 0
	for _, p := range r.players {
		if !p.IsBot {
			n++
		}
	}
	return n
}

// IsFull reports whether the player cap is reached.
func (r *Room) IsFull() bool { return len(r.players) >= r.cfg.MaxPlayers }

// IsSpectator reports whether the user watches without playing.
func (r *Room) IsSpectator(userID string) bool { return r.spectators[userID] }

// Disposed reports whether the room asked to be torn down.
func (r *Room) Disposed() bool { return r.disposed }

func (r *Room) setTime(d time.Duration) {
	r.Time = int(d / time.Millisecond)
	r.RoundTime = roundSeconds(r.Time)
}

func roundSeconds(ms int) int {
	if ms >= 0 {
		return (ms + 500) / 1000
	}
	return -((-ms + 499) / 1000)
}

func (r *Room) variant(p *domain.Player, s domain.Species) string {
	return p.Collection[s]
}

// teamOf copies the creatures a player fights with.
func teamOf(p *domain.Player) []domain.Creature {
	var team []domain.Creature
	for _, c := range p.SortedCreatures() {
		if c.OnBench() {
			continue
		}
		cp := *c
		cp.Items = append([]domain.Item(nil), c.Items...)
		cp.Types = append([]domain.Synergy(nil), c.Types...)
		team = append(team, cp)
	}
	return team
}

func sideOf(p *domain.Player) ports.BattleSide {
	syn := make(domain.Synergies, len(p.Synergies))
	for k, v := range p.Synergies {
		syn[k] = v
	}
	return ports.BattleSide{
		PlayerID:  p.ID,
		Name:      p.Name,
		Avatar:    p.Avatar,
		Team:      teamOf(p),
		Synergies: syn,
		Effects:   append([]domain.Effect(nil), p.Effects...),
	}
}
