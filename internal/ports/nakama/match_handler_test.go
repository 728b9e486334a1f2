package nakama

import (
	"context"
	"errors"
	"testing"
	"time"

	"autobattler/internal/app"
	"autobattler/internal/config"
	"autobattler/internal/ports"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
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
	return nil
}

type sentMessage struct {
	opCode     int64
	data       []byte
	recipients []string
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	runtime.MatchDispatcher
	sent   []sentMessage
	labels []string
	kicked []string
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	msg := sentMessage{opCode: opCode, data: append([]byte(nil), data...)}
	for _, p := range presences {
		msg.recipients = append(msg.recipients, p.GetUserId())
	}
	md.sent = append(md.sent, msg)
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labels = append(md.labels, label)
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	for _, p := range presences {
		md.kicked = append(md.kicked, p.GetUserId())
	}
	return nil
}

func (md *mockDispatcher) count(opCode int64, userID string) int {
	n := 0
	for _, m := range md.sent {
		if m.opCode != opCode {
			continue
		}
		for _, r := range m.recipients {
			if r == userID {
				n++
			}
		}
	}
	return n
}

type fakePresence struct {
	runtime.Presence
	userID string
}

func (p fakePresence) GetUserId() string { return p.userID }

type fakeMatchData struct {
	runtime.MatchData
	userID string
	opCode int64
	data   []byte
}

func (m fakeMatchData) GetUserId() string { return m.userID }
func (m fakeMatchData) GetOpCode() int64  { return m.opCode }
func (m fakeMatchData) GetData() []byte   { return m.data }

type fakeProfileStore struct {
	err error
}

func (f fakeProfileStore) Lookup(ctx context.Context, userID string) (ports.Profile, error) {
	if f.err != nil {
		return ports.Profile{}, f.err
	}
	return ports.Profile{UserID: userID, DisplayName: "Trainer " + userID, Elo: 1000}, nil
}

// fakeNakama implements the NakamaModule calls the adapters use.
type fakeNakama struct {
	runtime.NakamaModule
	signals  chan string
	accounts map[string]*api.Account
	storage  map[string]string
	writeErr error
	updates  map[string][2]string

	matches []*api.Match
	queries []string
	created int
}

func (f *fakeNakama) MatchList(ctx context.Context, limit int, authoritative bool, label string, minSize, maxSize *int, query string) ([]*api.Match, error) {
	f.queries = append(f.queries, query)
	return f.matches, nil
}

func (f *fakeNakama) MatchCreate(ctx context.Context, module string, params map[string]interface{}) (string, error) {
	f.created++
	return "created-match", nil
}

func (f *fakeNakama) MatchSignal(ctx context.Context, id string, data string) (string, error) {
	f.signals <- data
	return "", nil
}

func (f *fakeNakama) AccountGetId(ctx context.Context, userID string) (*api.Account, error) {
	acc, ok := f.accounts[userID]
	if !ok {
		return nil, errors.New("account not found")
	}
	return acc, nil
}

func (f *fakeNakama) StorageRead(ctx context.Context, reads []*runtime.StorageRead) ([]*api.StorageObject, error) {
	var out []*api.StorageObject
	for _, r := range reads {
		if v, ok := f.storage[r.UserID]; ok {
			out = append(out, &api.StorageObject{Collection: r.Collection, Key: r.Key, UserId: r.UserID, Value: v})
		}
	}
	return out, nil
}

func (f *fakeNakama) StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error) {
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	if f.storage == nil {
		f.storage = make(map[string]string)
	}
	for _, w := range writes {
		if _, exists := f.storage[w.UserID]; exists && w.Version == "*" {
			return nil, runtime.ErrStorageRejectedVersion
		}
		f.storage[w.UserID] = w.Value
	}
	return nil, nil
}

func (f *fakeNakama) AccountUpdateId(ctx context.Context, userID, username string, metadata map[string]interface{}, displayName, timezone, location, langTag, avatarUrl string) error {
	if f.updates == nil {
		f.updates = make(map[string][2]string)
	}
	f.updates[userID] = [2]string{displayName, avatarUrl}
	return nil
}

func testSettings() config.RuntimeConfig {
	return config.RuntimeConfig{
		BotsEnabled:  true,
		BotFillDelay: time.Second,
		TickRate:     10,
		IntentRate:   100,
		IntentBurst:  100,
		Seed:         1,
	}
}

func newTestMatch(t *testing.T) (*matchHandler, *MatchState, *mockDispatcher) {
	t.Helper()
	mh := newMatchHandler(testSettings(), nil)
	state := mh.newState(noopLogger{}, fakeProfileStore{})
	return mh, state, &mockDispatcher{}
}

// admit runs the second half of a join for userID.
func admit(t *testing.T, mh *matchHandler, state *MatchState, d *mockDispatcher, userID string) {
	t.Helper()
	state.Presences[userID] = fakePresence{userID: userID}
	data, err := encodeAdmission(ports.Profile{UserID: userID, DisplayName: "Trainer " + userID, Elo: 1000})
	if err != nil {
		t.Fatalf("encodeAdmission: %v", err)
	}
	mh.MatchSignal(context.Background(), noopLogger{}, nil, nil, d, 0, state, data)
}

func TestMatchJoinSignalsAdmission(t *testing.T) {
	mh, state, d := newTestMatch(t)
	nk := &fakeNakama{signals: make(chan string, 1)}
	ctx := context.WithValue(context.Background(), runtime.RUNTIME_CTX_MATCH_ID, "match-1")

	mh.MatchJoin(ctx, noopLogger{}, nil, nk, d, 0, state, []runtime.Presence{fakePresence{userID: "u1"}})
	if !state.pending["u1"] {
		t.Fatalf("join did not start a lookup")
	}

	var data string
	select {
	case data = <-nk.signals:
	case <-time.After(time.Second):
		t.Fatal("admission never signalled")
	}
	mh.MatchSignal(ctx, noopLogger{}, nil, nk, d, 0, state, data)

	p, ok := state.Room.Player("u1")
	if !ok || p.Name != "Trainer u1" {
		t.Fatalf("player not admitted: %+v", p)
	}
	if len(state.pending) != 0 {
		t.Errorf("pending admissions = %v", state.pending)
	}
	if d.count(OpSnapshot, "u1") == 0 {
		t.Errorf("no snapshot sent after admission")
	}
	if len(d.labels) == 0 {
		t.Errorf("label not updated")
	}
}

func TestMatchSignalIgnoresDepartedUser(t *testing.T) {
	mh, state, d := newTestMatch(t)
	data, _ := encodeAdmission(ports.Profile{UserID: "gone"})

	mh.MatchSignal(context.Background(), noopLogger{}, nil, nil, d, 0, state, data)

	if state.Room.PlayerCount() != 0 {
		t.Errorf("departed user admitted")
	}
}

func TestMatchJoinAttempt(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, mh *matchHandler, s *MatchState, d *mockDispatcher)
		userID   string
		metadata map[string]string
		want     bool
	}{
		{
			name:   "OpenLobby",
			setup:  func(*testing.T, *matchHandler, *MatchState, *mockDispatcher) {},
			userID: "u1",
			want:   true,
		},
		{
			name: "FullLobby",
			setup: func(t *testing.T, mh *matchHandler, s *MatchState, d *mockDispatcher) {
				for i := 0; i < s.Room.Config().MaxPlayers; i++ {
					admit(t, mh, s, d, string(rune('a'+i)))
				}
			},
			userID: "late",
			want:   false,
		},
		{
			name: "Reconnect",
			setup: func(t *testing.T, mh *matchHandler, s *MatchState, d *mockDispatcher) {
				admit(t, mh, s, d, "u1")
				s.Room.Dispatch(context.Background(), app.StartGameCommand{})
			},
			userID: "u1",
			want:   true,
		},
		{
			name: "Started",
			setup: func(t *testing.T, mh *matchHandler, s *MatchState, d *mockDispatcher) {
				admit(t, mh, s, d, "u1")
				s.Room.Dispatch(context.Background(), app.StartGameCommand{})
			},
			userID: "u2",
			want:   false,
		},
		{
			name: "SpectateStarted",
			setup: func(t *testing.T, mh *matchHandler, s *MatchState, d *mockDispatcher) {
				admit(t, mh, s, d, "u1")
				s.Room.Dispatch(context.Background(), app.StartGameCommand{})
			},
			userID:   "watcher",
			metadata: map[string]string{"spectate": "true"},
			want:     true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mh, state, d := newTestMatch(t)
			test.setup(t, mh, state, d)
			_, ok, _ := mh.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, d, 0, state, fakePresence{userID: test.userID}, test.metadata)
			if ok != test.want {
				t.Fatalf("MatchJoinAttempt() = %t, want %t", ok, test.want)
			}
		})
	}
}

func TestSpectatorJoin(t *testing.T) {
	mh, state, d := newTestMatch(t)
	mh.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, d, 0, state, fakePresence{userID: "watcher"}, map[string]string{"spectate": "true"})
	mh.MatchJoin(context.Background(), noopLogger{}, nil, nil, d, 0, state, []runtime.Presence{fakePresence{userID: "watcher"}})

	if !state.Room.IsSpectator("watcher") || state.Room.PlayerCount() != 0 {
		t.Fatalf("spectator not recorded")
	}
	if len(state.pending) != 0 {
		t.Errorf("spectator triggered a profile lookup")
	}
}

func TestProcessBots_FillsRoomForSoloHuman(t *testing.T) {
	mh, state, d := newTestMatch(t)
	admit(t, mh, state, d, "u1")

	mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, d, 1, state, nil)
	if state.LastSinglePlayerTick != 1 {
		t.Fatalf("auto-fill timer not started, got %d", state.LastSinglePlayerTick)
	}
	mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, d, 5, state, nil)
	if state.Room.PlayerCount() != 1 {
		t.Fatalf("bots added before the delay")
	}

	mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, d, 1+state.BotFillTicks, state, nil)

	room := state.Room
	if room.PlayerCount() != room.Config().MaxPlayers || room.HumanCount() != 1 {
		t.Fatalf("players = %d humans = %d", room.PlayerCount(), room.HumanCount())
	}
	if !room.Started {
		t.Errorf("full room did not start")
	}
	if state.LastSinglePlayerTick != 0 {
		t.Errorf("auto-fill timer not reset, got %d", state.LastSinglePlayerTick)
	}
}

func TestFailedLookupReleasesSeat(t *testing.T) {
	mh := newMatchHandler(testSettings(), nil)
	state := mh.newState(noopLogger{}, fakeProfileStore{err: errors.New("storage down")})
	d := &mockDispatcher{}
	nk := &fakeNakama{signals: make(chan string, 1)}
	ctx := context.WithValue(context.Background(), runtime.RUNTIME_CTX_MATCH_ID, "match-1")
	admit(t, mh, state, d, "u1")

	mh.MatchJoin(ctx, noopLogger{}, nil, nk, d, 0, state, []runtime.Presence{fakePresence{userID: "u2"}})
	var data string
	select {
	case data = <-nk.signals:
	case <-time.After(time.Second):
		t.Fatal("failed lookup never signalled")
	}
	mh.MatchSignal(ctx, noopLogger{}, nil, nk, d, 0, state, data)

	if len(state.pending) != 0 {
		t.Fatalf("pending = %v after a failed lookup", state.pending)
	}
	if _, ok := state.Room.Player("u2"); ok {
		t.Fatalf("u2 admitted without a profile")
	}
	if len(d.kicked) != 1 || d.kicked[0] != "u2" {
		t.Errorf("kicked = %v, want [u2]", d.kicked)
	}

	mh.MatchLoop(ctx, noopLogger{}, nil, nk, d, 1, state, nil)
	mh.MatchLoop(ctx, noopLogger{}, nil, nk, d, 1+state.BotFillTicks, state, nil)
	if room := state.Room; room.PlayerCount() != room.Config().MaxPlayers || room.HumanCount() != 1 {
		t.Errorf("players = %d humans = %d, want bots to fill the room", room.PlayerCount(), room.HumanCount())
	}
}

func TestMatchLoopDispatchesIntents(t *testing.T) {
	mh, state, d := newTestMatch(t)
	admit(t, mh, state, d, "u1")
	state.Room.Dispatch(context.Background(), app.StartGameCommand{})
	p, _ := state.Room.Player("u1")

	messages := []runtime.MatchData{
		fakeMatchData{userID: "u1", opCode: OpLock},
		fakeMatchData{userID: "u1", opCode: OpDragDrop, data: []byte(`{"id": 3}`)},
		fakeMatchData{userID: "u1", opCode: 99},
	}
	mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, d, 3, state, messages)

	if !p.ShopLocked {
		t.Errorf("lock intent not applied")
	}
	if d.count(OpDragDropFailed, "u1") != 1 {
		t.Errorf("malformed drag did not answer with a failure notice")
	}
	if d.count(OpSnapshot, "u1") == 0 {
		t.Errorf("no snapshot after intents")
	}
}

func TestMatchLoopRateLimitsIntents(t *testing.T) {
	mh, state, d := newTestMatch(t)
	state.limiter = newIntentLimiter(0.001, 1)
	admit(t, mh, state, d, "u1")
	state.Room.Dispatch(context.Background(), app.StartGameCommand{})
	p, _ := state.Room.Player("u1")

	lock := fakeMatchData{userID: "u1", opCode: OpLock}
	mh.MatchLoop(context.Background(), noopLogger{}, nil, nil, d, 3, state, []runtime.MatchData{lock, lock})

	if !p.ShopLocked {
		t.Errorf("second lock should have been dropped, leaving the shop locked")
	}
}

func TestMatchLeaveTerminatesWithoutHumans(t *testing.T) {
	mh, state, d := newTestMatch(t)
	admit(t, mh, state, d, "u1")
	admit(t, mh, state, d, "u2")

	next := mh.MatchLeave(context.Background(), noopLogger{}, nil, nil, d, 0, state, []runtime.Presence{fakePresence{userID: "u1"}})
	if next == nil {
		t.Fatalf("match terminated with a human left")
	}
	if _, ok := state.Room.Player("u1"); ok {
		t.Errorf("lobby seat not freed")
	}

	next = mh.MatchLeave(context.Background(), noopLogger{}, nil, nil, d, 0, state, []runtime.Presence{fakePresence{userID: "u2"}})
	if next != nil {
		t.Errorf("match kept running without humans")
	}
}
