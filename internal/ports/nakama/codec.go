package nakama

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"autobattler/internal/app"
	"autobattler/internal/domain"
	"autobattler/internal/ports"
)

var (
	ErrUnknownOpCode    = errors.New("unknown opcode")
	ErrMalformedPayload = errors.New("malformed payload")
)

// payload wraps a decoded client message.
type payload struct {
	fields map[string]*structpb.Value
}

func parsePayload(data []byte) (payload, error) {
	if len(data) == 0 {
		return payload{fields: map[string]*structpb.Value{}}, nil
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(data, s); err != nil {
		return payload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return payload{fields: s.GetFields()}, nil
}

func (p payload) intField(key string) (int, error) {
	v, ok := p.fields[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing %q", ErrMalformedPayload, key)
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue != math.Trunc(n.NumberValue) {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrMalformedPayload, key)
	}
	return int(n.NumberValue), nil
}

func (p payload) stringField(key string) (string, error) {
	v, ok := p.fields[key]
	if !ok {
		return "", fmt.Errorf("%w: missing %q", ErrMalformedPayload, key)
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok || s.StringValue == "" {
		return "", fmt.Errorf("%w: %q is not a string", ErrMalformedPayload, key)
	}
	return s.StringValue, nil
}

// decodeIntent turns a client message into a room command for userID.
func decodeIntent(userID string, opCode int64, data []byte) (app.Command, error) {
	p, err := parsePayload(data)
	if err != nil {
		return nil, err
	}
	switch opCode {
	case OpShop:
		idx, err := p.intField("index")
		if err != nil {
			return nil, err
		}
		return app.BuyCommand{PlayerID: userID, Index: idx}, nil
	case OpItemPick:
		item, err := p.stringField("item")
		if err != nil {
			return nil, err
		}
		return app.PickItemCommand{PlayerID: userID, Item: domain.Item(item)}, nil
	case OpPokemonPick:
		species, err := p.stringField("species")
		if err != nil {
			return nil, err
		}
		return app.PickPokemonCommand{PlayerID: userID, Species: domain.Species(species)}, nil
	case OpDragDrop:
		id, err := p.stringField("id")
		if err != nil {
			return nil, err
		}
		x, y, err := p.tile()
		if err != nil {
			return nil, err
		}
		return app.DragDropCommand{PlayerID: userID, CreatureID: id, X: x, Y: y}, nil
	case OpDragDropItem:
		item, err := p.stringField("item")
		if err != nil {
			return nil, err
		}
		x, y, err := p.tile()
		if err != nil {
			return nil, err
		}
		return app.EquipItemCommand{PlayerID: userID, Item: domain.Item(item), X: x, Y: y}, nil
	case OpDragDropCombine:
		a, err := p.stringField("itemA")
		if err != nil {
			return nil, err
		}
		b, err := p.stringField("itemB")
		if err != nil {
			return nil, err
		}
		return app.CombineItemsCommand{PlayerID: userID, ItemA: domain.Item(a), ItemB: domain.Item(b)}, nil
	case OpSell:
		id, err := p.stringField("id")
		if err != nil {
			return nil, err
		}
		return app.SellCommand{PlayerID: userID, CreatureID: id}, nil
	case OpRefresh:
		return app.RerollCommand{PlayerID: userID}, nil
	case OpLock:
		return app.LockCommand{PlayerID: userID}, nil
	case OpLevelUp:
		return app.LevelUpCommand{PlayerID: userID}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownOpCode, opCode)
	}
}

func (p payload) tile() (int, int, error) {
	x, err := p.intField("x")
	if err != nil {
		return 0, 0, err
	}
	y, err := p.intField("y")
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// isDragOpCode reports whether a failed message of this kind owes the
// sender a drag-drop-failed notice.
func isDragOpCode(opCode int64) (board, items bool) {
	switch opCode {
	case OpDragDrop, OpSell:
		return true, false
	case OpDragDropItem:
		return true, true
	case OpDragDropCombine:
		return false, true
	}
	return false, false
}

func marshalStruct(m map[string]interface{}) ([]byte, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, err
	}
	return protojson.Marshal(s)
}

// encodeEvent maps a room notification to its opcode and wire payload.
// ok is false for events that are not sent to clients.
func encodeEvent(ev app.Event) (opCode int64, data []byte, ok bool, err error) {
	var body map[string]interface{}
	switch ev.Kind {
	case app.EventDragDropFailed:
		p, _ := ev.Payload.(app.DragDropFailedPayload)
		opCode = OpDragDropFailed
		body = map[string]interface{}{"updateBoard": p.UpdateBoard, "updateItems": p.UpdateItems}
	case app.EventPlayerDamage:
		p, _ := ev.Payload.(app.PlayerDamagePayload)
		opCode = OpPlayerDamage
		body = map[string]interface{}{"amount": p.Amount}
	case app.EventPlayerIncome:
		p, _ := ev.Payload.(app.PlayerIncomePayload)
		opCode = OpPlayerIncome
		body = map[string]interface{}{"amount": p.Amount}
	case app.EventBroadcastInfo:
		p, _ := ev.Payload.(app.BroadcastInfoPayload)
		opCode = OpBroadcastInfo
		body = map[string]interface{}{"title": p.Title, "info": p.Info}
	case app.EventGameEnd:
		opCode = OpGameEnd
		body = map[string]interface{}{}
	case app.EventRareWandering:
		opCode = OpRareWandering
		body = map[string]interface{}{}
	default:
		return 0, nil, false, nil
	}
	data, err = marshalStruct(body)
	if err != nil {
		return 0, nil, false, fmt.Errorf("encode %s: %w", ev.Kind, err)
	}
	return opCode, data, true, nil
}

// encodeSnapshot renders the room as seen by viewerID. Private fields are
// only filled in for the viewer's own player.
func encodeSnapshot(room *app.Room, viewerID string) ([]byte, error) {
	players := make([]interface{}, 0, room.PlayerCount())
	for _, p := range room.Players() {
		entry := map[string]interface{}{
			"id":       p.ID,
			"name":     p.Name,
			"avatar":   p.Avatar,
			"life":     p.Life,
			"rank":     p.Rank,
			"level":    p.Experience.Level,
			"alive":    p.Alive,
			"isBot":    p.IsBot,
			"opponent": p.OpponentName,
			"board":    boardOf(p),
		}
		if p.ID == viewerID {
			entry["money"] = p.Money
			entry["exp"] = p.Experience.Exp
			entry["streak"] = p.Streak
			entry["interest"] = p.Interest
			entry["shop"] = speciesList(p.Shop)
			entry["shopLocked"] = p.ShopLocked
			entry["items"] = itemList(p.Items.List())
			entry["itemsProposition"] = itemList(p.ItemsProposition)
			entry["pokemonsProposition"] = speciesList(p.PokemonsProposition)
		}
		players = append(players, entry)
	}
	return marshalStruct(map[string]interface{}{
		"phase":          string(room.Phase),
		"stage":          room.Stage,
		"roundTime":      room.RoundTime,
		"started":        room.Started,
		"gameFinished":   room.GameFinished,
		"shinyEncounter": room.ShinyEncounter,
		"spectator":      room.IsSpectator(viewerID),
		"players":        players,
	})
}

func boardOf(p *domain.Player) []interface{} {
	out := make([]interface{}, 0, len(p.Board))
	for _, c := range p.SortedCreatures() {
		out = append(out, map[string]interface{}{
			"id":      c.ID,
			"species": string(c.Species),
			"x":       c.X,
			"y":       c.Y,
			"shiny":   c.Shiny,
			"items":   itemList(c.Items),
		})
	}
	return out
}

func itemList(items []domain.Item) []interface{} {
	out := make([]interface{}, len(items))
	for i, it := range items {
		out[i] = string(it)
	}
	return out
}

func speciesList(species []domain.Species) []interface{} {
	out := make([]interface{}, len(species))
	for i, s := range species {
		out[i] = string(s)
	}
	return out
}

// matchLabel is what the match listing filters on.
type matchLabel struct {
	Open    bool
	Phase   string
	Players int
}

func encodeLabel(l matchLabel) (string, error) {
	data, err := marshalStruct(map[string]interface{}{
		"game":    GameLabel,
		"open":    l.Open,
		"phase":   l.Phase,
		"players": l.Players,
	})
	if err != nil {
		return "", fmt.Errorf("encode label: %w", err)
	}
	return string(data), nil
}

// encodeAdmission carries a looked-up profile through MatchSignal.
func encodeAdmission(p ports.Profile) (string, error) {
	collection := make(map[string]interface{}, len(p.Collection))
	for s, v := range p.Collection {
		collection[string(s)] = v
	}
	data, err := marshalStruct(map[string]interface{}{
		"userId":      p.UserID,
		"displayName": p.DisplayName,
		"avatar":      p.Avatar,
		"elo":         p.Elo,
		"title":       string(p.Title),
		"role":        p.Role,
		"collection":  collection,
	})
	if err != nil {
		return "", fmt.Errorf("encode admission: %w", err)
	}
	return string(data), nil
}

// encodeRejection tells the loop that a user's lookup failed.
func encodeRejection(userID string) (string, error) {
	data, err := marshalStruct(map[string]interface{}{
		"userId":   userID,
		"rejected": true,
	})
	if err != nil {
		return "", fmt.Errorf("encode rejection: %w", err)
	}
	return string(data), nil
}

// decodeAdmission reads an admission or rejection signal. A rejection only
// carries the user id.
func decodeAdmission(data string) (ports.Profile, bool, error) {
	s := &structpb.Struct{}
	if err := protojson.Unmarshal([]byte(data), s); err != nil {
		return ports.Profile{}, false, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	m := s.AsMap()
	str := func(k string) string {
		v, _ := m[k].(string)
		return v
	}
	num, _ := m["elo"].(float64)

	profile := ports.Profile{
		UserID:      str("userId"),
		DisplayName: str("displayName"),
		Avatar:      str("avatar"),
		Elo:         int(num),
		Title:       domain.Title(str("title")),
		Role:        str("role"),
		Collection:  make(map[domain.Species]string),
	}
	if profile.UserID == "" {
		return ports.Profile{}, false, fmt.Errorf("%w: admission without user id", ErrMalformedPayload)
	}
	if rejected, _ := m["rejected"].(bool); rejected {
		return ports.Profile{UserID: profile.UserID}, true, nil
	}
	if c, ok := m["collection"].(map[string]interface{}); ok {
		for k, v := range c {
			if variant, ok := v.(string); ok {
				profile.Collection[domain.Species(k)] = variant
			}
		}
	}
	return profile, false, nil
}
