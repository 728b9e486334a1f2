package nakama

import (
	"context"
	"database/sql"
	"math/rand"
	"sort"
	"time"

	"autobattler/internal/app"
	"autobattler/internal/bot"
	"autobattler/internal/catalog"
	"autobattler/internal/config"
	"autobattler/internal/minigame"
	"autobattler/internal/ports"
	"autobattler/internal/shop"
	"autobattler/internal/sim"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Room                 *app.Room                   // Game rules; every mutation goes through Dispatch
	Presences            map[string]runtime.Presence // Map UserId -> Presence for targeted messaging
	Tick                 int64                       // Current tick of the match
	TickRate             int                         // Ticks per second
	BotsEnabled          bool                        // Whether AI players are allowed
	BotFillTicks         int64                       // Ticks a lone human waits before bots fill the room
	LastSinglePlayerTick int64                       // Tick when a single player started waiting

	spectating map[string]bool // join attempts that asked to watch, consumed by MatchJoin
	pending    map[string]bool // humans whose profile lookup is in flight
	joiner     *app.Joiner
	limiter    *intentLimiter
	label      string
}

// humanPresenceCount counts connected users that are not spectators.
func (ms *MatchState) humanPresenceCount() int {
	count := 0
	for id := range ms.Presences {
		if !ms.Room.IsSpectator(id) {
			count++
		}
	}
	return count
}

type matchHandler struct {
	settings config.RuntimeConfig
	registry *bot.Registry
}

func newMatchHandler(settings config.RuntimeConfig, registry *bot.Registry) *matchHandler {
	if registry == nil {
		registry, _ = bot.ParseIdentities([]byte("[]"))
	}
	return &matchHandler{settings: settings, registry: registry}
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	state := mh.newState(logger, NewNakamaProfileAdapter(nk))
	label, err := mh.currentLabel(state)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}
	state.label = label
	return state, state.TickRate, label
}

func (mh *matchHandler) newState(logger runtime.Logger, profiles ports.ProfileStore) *MatchState {
	seed := mh.settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	factory := catalog.NewFactory(rng)
	deps := app.Deps{
		Shop:      shop.NewEngine(rng),
		Simulator: sim.New(),
		Minigame:  minigame.New(rng),
		Creatures: factory,
		Items:     factory,
	}
	if mh.settings.BotsEnabled {
		deps.Bots = bot.NewRoster(mh.registry, factory, logger)
	}

	tickRate := mh.settings.TickRate
	if tickRate <= 0 {
		tickRate = 10
	}
	return &MatchState{
		Room:         app.NewRoom(config.GetGameConfig(), deps, logger, rng),
		Presences:    make(map[string]runtime.Presence),
		TickRate:     tickRate,
		BotsEnabled:  mh.settings.BotsEnabled,
		BotFillTicks: int64(mh.settings.BotFillDelay.Seconds() * float64(tickRate)),
		spectating:   make(map[string]bool),
		pending:      make(map[string]bool),
		joiner:       app.NewJoiner(profiles, logger),
		limiter:      newIntentLimiter(mh.settings.IntentRate, mh.settings.IntentBurst),
	}
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}
	userID := presence.GetUserId()

	if metadata["spectate"] == "true" {
		matchState.spectating[userID] = true
		return matchState, true, ""
	}
	if _, ok := matchState.Room.Player(userID); ok {
		// Reconnect.
		return matchState, true, ""
	}
	if matchState.Room.Started {
		return matchState, false, "Game already started"
	}
	if matchState.Room.PlayerCount()+len(matchState.pending) >= matchState.Room.Config().MaxPlayers {
		return matchState, false, "Match full"
	}
	return matchState, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)

	var events []app.Event
	for _, p := range presences {
		userID := p.GetUserId()
		matchState.Presences[userID] = p

		if matchState.spectating[userID] {
			delete(matchState.spectating, userID)
			events = append(events, matchState.Room.Dispatch(ctx, app.SpectateCommand{UserID: userID})...)
			continue
		}
		if _, ok := matchState.Room.Player(userID); ok || matchState.pending[userID] {
			continue
		}

		matchState.pending[userID] = true
		signal := func(data string, err error) {
			if err != nil {
				logger.Error("MatchJoin: %v", err)
				return
			}
			if _, err := nk.MatchSignal(ctx, matchID, data); err != nil {
				logger.Warn("MatchJoin: Failed to signal join result of %s: %v", userID, err)
			}
		}
		matchState.joiner.Resolve(ctx, userID, func(cmd app.Command) {
			if admit, ok := cmd.(app.AdmitPlayerCommand); ok {
				signal(encodeAdmission(admit.Profile))
			}
		}, func(error) {
			signal(encodeRejection(userID))
		})
	}

	mh.sendEvents(matchState, dispatcher, logger, events)
	mh.broadcastSnapshots(matchState, dispatcher, logger)
	return matchState
}

// MatchSignal completes a join once the profile lookup has finished. A user
// whose lookup failed releases the seat and is kicked.
func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, ""
	}
	profile, rejected, err := decodeAdmission(data)
	if err != nil {
		logger.Warn("MatchSignal: %v", err)
		return matchState, ""
	}
	delete(matchState.pending, profile.UserID)
	presence, connected := matchState.Presences[profile.UserID]
	if !connected {
		logger.Debug("MatchSignal: %s left before admission", profile.UserID)
		return matchState, ""
	}
	if rejected {
		logger.Warn("MatchSignal: Could not admit %s, kicking.", profile.UserID)
		if err := dispatcher.MatchKick([]runtime.Presence{presence}); err != nil {
			logger.Error("MatchSignal: Failed to kick %s: %v", profile.UserID, err)
		}
		return matchState, ""
	}

	events := matchState.Room.Dispatch(ctx, app.AdmitPlayerCommand{Profile: profile})
	mh.sendEvents(matchState, dispatcher, logger, events)
	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastSnapshots(matchState, dispatcher, logger)
	return matchState, ""
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	var events []app.Event
	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.pending, userID)
		matchState.limiter.Forget(userID)
		events = append(events, matchState.Room.Dispatch(ctx, app.LeaveCommand{UserID: userID})...)
		delete(matchState.Presences, userID)
		logger.Debug("MatchLeave: User %s left.", userID)
	}

	if matchState.humanPresenceCount() == 0 && len(matchState.pending) == 0 {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.sendEvents(matchState, dispatcher, logger, events)
	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}
	matchState.Tick = tick
	room := matchState.Room
	now := time.Now()

	var events []app.Event
	for _, msg := range messages {
		userID := msg.GetUserId()
		if !matchState.limiter.Allow(userID, now) {
			logger.Warn("MatchLoop: Dropping message from %s: rate limited", userID)
			continue
		}
		cmd, err := decodeIntent(userID, msg.GetOpCode(), msg.GetData())
		if err != nil {
			logger.Warn("MatchLoop: Rejected message from %s: %v", userID, err)
			if board, items := isDragOpCode(msg.GetOpCode()); board || items {
				events = append(events, app.Event{
					Kind:       app.EventDragDropFailed,
					Payload:    app.DragDropFailedPayload{UpdateBoard: board, UpdateItems: items},
					Recipients: []string{userID},
				})
			}
			continue
		}
		events = append(events, room.Dispatch(ctx, cmd)...)
	}

	if matchState.BotsEnabled {
		events = append(events, mh.processBots(ctx, matchState, logger)...)
	}
	if !room.Started && room.IsFull() {
		events = append(events, room.Dispatch(ctx, app.StartGameCommand{})...)
		logger.Info("MatchLoop: Game started with %d players.", room.PlayerCount())
	}

	events = append(events, room.Dispatch(ctx, app.TickCommand{Delta: time.Second / time.Duration(matchState.TickRate)})...)
	mh.sendEvents(matchState, dispatcher, logger, events)

	if len(messages) > 0 || tick%int64(matchState.TickRate) == 0 {
		mh.broadcastSnapshots(matchState, dispatcher, logger)
	}
	mh.updateLabel(matchState, dispatcher, logger)

	if room.Disposed() {
		logger.Info("MatchLoop: Room disposed, terminating match.")
		return nil
	}
	return matchState
}

// processBots fills the lobby with bots when a single human has waited long enough.
func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, logger runtime.Logger) []app.Event {
	room := state.Room
	if room.Started {
		return nil
	}
	if room.HumanCount() != 1 || len(state.pending) > 0 {
		state.LastSinglePlayerTick = 0
		return nil
	}
	if state.LastSinglePlayerTick == 0 {
		state.LastSinglePlayerTick = state.Tick
		logger.Debug("processBots: Single player detected, starting auto-fill timer.")
		return nil
	}
	if state.Tick-state.LastSinglePlayerTick < state.BotFillTicks {
		return nil
	}

	var events []app.Event
	maxAttempts := room.Config().MaxPlayers * 4
	for i := 0; !room.IsFull() && i < maxAttempts; i++ {
		identity := mh.registry.Pick(i)
		if _, taken := room.Player(identity.UserID); taken {
			continue
		}
		events = append(events, room.Dispatch(ctx, app.AdmitPlayerCommand{
			IsBot: true,
			Profile: ports.Profile{
				UserID:      identity.UserID,
				DisplayName: identity.DisplayName,
				Avatar:      identity.Avatar,
				Elo:         identity.Elo,
			},
		})...)
		logger.Info("processBots: Added bot %s (%s)", identity.DisplayName, identity.UserID)
	}
	state.LastSinglePlayerTick = 0
	return events
}

// sendEvents handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) sendEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		opCode, data, ok, err := encodeEvent(ev)
		if err != nil {
			logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
			continue
		}
		if !ok {
			continue
		}

		var recipients []runtime.Presence
		if len(ev.Recipients) > 0 {
			for _, uid := range ev.Recipients {
				if p, ok := state.Presences[uid]; ok {
					recipients = append(recipients, p)
				}
			}
			// Intended recipients that are not connected (bots) must not turn into a broadcast.
			if len(recipients) == 0 {
				continue
			}
		}
		if err := dispatcher.BroadcastMessage(opCode, data, recipients, nil, true); err != nil {
			logger.Warn("Failed to send event %v: %v", ev.Kind, err)
		}
	}
}

// broadcastSnapshots sends every connected user their view of the room.
func (mh *matchHandler) broadcastSnapshots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	ids := make([]string, 0, len(state.Presences))
	for id := range state.Presences {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		data, err := encodeSnapshot(state.Room, id)
		if err != nil {
			logger.Error("Failed to marshal snapshot for %s: %v", id, err)
			continue
		}
		if err := dispatcher.BroadcastMessage(OpSnapshot, data, []runtime.Presence{state.Presences[id]}, nil, true); err != nil {
			logger.Warn("Failed to send snapshot to %s: %v", id, err)
		}
	}
}

func (mh *matchHandler) currentLabel(state *MatchState) (string, error) {
	room := state.Room
	phase := "lobby"
	if room.Started {
		phase = string(room.Phase)
	}
	return encodeLabel(matchLabel{
		Open:    !room.Started && !room.IsFull(),
		Phase:   phase,
		Players: room.PlayerCount(),
	})
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := mh.currentLabel(state)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if label == state.label {
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
		return
	}
	state.label = label
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated, grace %d seconds", graceSeconds)
	return state
}
