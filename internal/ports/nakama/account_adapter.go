package nakama

import (
	"context"

	"autobattler/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaAccountAdapter implements ports.AccountPort using Nakama's account API.
type NakamaAccountAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaAccountAdapter creates a new account adapter.
func NewNakamaAccountAdapter(nk runtime.NakamaModule) *NakamaAccountAdapter {
	return &NakamaAccountAdapter{nk: nk}
}

// UpdateProfile sets the display name and avatar; the username is left unchanged.
func (a *NakamaAccountAdapter) UpdateProfile(ctx context.Context, userID, displayName, avatarURL string) error {
	return a.nk.AccountUpdateId(ctx, userID, "", nil, displayName, "", "", "", avatarURL)
}

var _ ports.AccountPort = (*NakamaAccountAdapter)(nil)
