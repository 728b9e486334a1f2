package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"

	"autobattler/internal/config"
)

var ErrNoMatchToWatch = errors.New("no running match to watch")

// QuickMatchRequest is the optional RPC payload.
type QuickMatchRequest struct {
	Spectate bool `json:"spectate"`
}

// QuickMatchResponse is the payload returned to clients when requesting a match.
type QuickMatchResponse struct {
	MatchID  string `json:"match_id"`
	IsNew    bool   `json:"is_new"`
	Spectate bool   `json:"spectate,omitempty"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	return initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch)
}

func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req QuickMatchRequest
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", fmt.Errorf("invalid quick match payload: %w", err)
		}
	}

	var resp QuickMatchResponse
	if req.Spectate {
		matchID, err := findRunningMatch(ctx, nk)
		if err != nil {
			logger.Warn("rpcQuickMatch: %v", err)
			return "", err
		}
		resp = QuickMatchResponse{MatchID: matchID, Spectate: true}
	} else {
		matchID, isNew, err := findOrCreateLobby(ctx, nk)
		if err != nil {
			logger.Error("rpcQuickMatch: %v", err)
			return "", err
		}
		resp = QuickMatchResponse{MatchID: matchID, IsNew: isNew}
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// findOrCreateLobby joins the fullest open lobby so games start sooner.
func findOrCreateLobby(ctx context.Context, nk runtime.NakamaModule) (string, bool, error) {
	query := "+label.open:T +label.game:" + GameLabel + " +label.phase:lobby"
	minSize := 1
	maxSize := config.GetGameConfig().MaxPlayers - 1

	matches, err := nk.MatchList(ctx, 10, true, "", &minSize, &maxSize, query)
	if err != nil {
		return "", false, fmt.Errorf("list lobbies: %w", err)
	}
	if m := fullestMatch(matches); m != nil {
		return m.GetMatchId(), false, nil
	}

	matchID, err := nk.MatchCreate(ctx, MatchNameAutoBattler, map[string]interface{}{})
	if err != nil {
		return "", false, fmt.Errorf("create match: %w", err)
	}
	return matchID, true, nil
}

func findRunningMatch(ctx context.Context, nk runtime.NakamaModule) (string, error) {
	query := "+label.game:" + GameLabel + " -label.phase:lobby"
	minSize := 1
	matches, err := nk.MatchList(ctx, 10, true, "", &minSize, nil, query)
	if err != nil {
		return "", fmt.Errorf("list running matches: %w", err)
	}
	m := fullestMatch(matches)
	if m == nil {
		return "", ErrNoMatchToWatch
	}
	return m.GetMatchId(), nil
}

func fullestMatch(matches []*api.Match) *api.Match {
	var best *api.Match
	for _, m := range matches {
		if best == nil || m.GetSize() > best.GetSize() {
			best = m
		}
	}
	return best
}
