package app

import (
	"context"

	"autobattler/internal/domain"
	"autobattler/internal/ports"
)

// SpectateCommand records a user watching the room.
type SpectateCommand struct {
	UserID string
}

func (SpectateCommand) Name() string { return "Spectate" }

func (c SpectateCommand) Execute(_ context.Context, r *Room) ([]Command, error) {
	if _, ok := r.players[c.UserID]; ok {
		return nil, ErrAlreadyJoined
	}
	r.spectators[c.UserID] = true
	return nil, nil
}

// AdmitPlayerCommand inserts a player built from a looked-up profile.
// It is the completion half of a join; the lookup itself happens off the
// command queue.
type AdmitPlayerCommand struct {
	Profile ports.Profile
	IsBot   bool
}

func (AdmitPlayerCommand) Name() string { return "AdmitPlayer" }

func (c AdmitPlayerCommand) Execute(_ context.Context, r *Room) ([]Command, error) {
	id := c.Profile.UserID
	if _, ok := r.players[id]; ok {
		return nil, ErrAlreadyJoined
	}
	if r.IsFull() {
		return nil, ErrRoomFull
	}

	p := domain.NewPlayer(id, c.Profile.DisplayName, c.IsBot)
	p.Avatar = c.Profile.Avatar
	p.Elo = c.Profile.Elo
	p.Role = c.Profile.Role
	if c.Profile.Title != "" {
		p.AddTitle(c.Profile.Title)
	}
	for s, v := range c.Profile.Collection {
		p.Collection[s] = v
	}
	p.Rank = len(r.players) + 1

	r.players[id] = p
	r.order = append(r.order, id)
	delete(r.spectators, id)
	if !p.IsBot {
		r.deps.Shop.AssignShop(p)
	}

	if r.IsFull() && r.HumanCount() == 1 {
		for _, other := range r.players {
			if !other.IsBot {
				other.AddTitle(domain.TitleLoneWolf)
			}
		}
	}
	r.logger.Info("AdmitPlayer: %s joined (%d/%d)", id, len(r.players), r.cfg.MaxPlayers)
	return nil, nil
}

// StartGameCommand opens the first pick phase.
type StartGameCommand struct{}

func (StartGameCommand) Name() string { return "StartGame" }

func (StartGameCommand) Execute(ctx context.Context, r *Room) ([]Command, error) {
	if r.Started {
		return nil, ErrAlreadyStarted
	}
	if len(r.players) == 0 {
		return nil, ErrEmptyRoom
	}
	r.Started = true
	r.Stage = 1
	r.initializePickingPhase(ctx)
	return nil, nil
}

// LeaveCommand frees a lobby seat. Once the game runs, a player who leaves
// keeps their board and keeps fighting.
type LeaveCommand struct {
	UserID string
}

func (LeaveCommand) Name() string { return "Leave" }

func (c LeaveCommand) Execute(_ context.Context, r *Room) ([]Command, error) {
	delete(r.spectators, c.UserID)
	p, ok := r.players[c.UserID]
	if !ok || r.Started {
		return nil, nil
	}
	for i, s := range p.Shop {
		if s != domain.SpeciesNone {
			r.deps.Shop.ReleasePokemon(s)
			p.Shop[i] = domain.SpeciesNone
		}
	}
	delete(r.players, c.UserID)
	order := r.order[:0]
	for _, id := range r.order {
		if id != c.UserID {
			order = append(order, id)
		}
	}
	r.order = order
	for i, id := range r.order {
		r.players[id].Rank = i + 1
	}
	return nil, nil
}
