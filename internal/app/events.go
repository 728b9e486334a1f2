package app

// EventKind identifies notifications the room emits for the transport layer.
type EventKind string

const (
	EventDragDropFailed EventKind = "drag_drop_failed"
	EventPlayerDamage   EventKind = "player_damage"
	EventPlayerIncome   EventKind = "player_income"
	EventBroadcastInfo  EventKind = "broadcast_info"
	EventGameEnd        EventKind = "game_end"
	EventRareWandering  EventKind = "rare_wandering"
	// EventRoomDisposed asks the transport to tear the room down.
	EventRoomDisposed EventKind = "room_disposed"
)

// Event is a notification with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type DragDropFailedPayload struct {
	UpdateBoard bool
	UpdateItems bool
}

type PlayerDamagePayload struct {
	Amount int
}

type PlayerIncomePayload struct {
	Amount int
}

type BroadcastInfoPayload struct {
	Title string
	Info  string
}
