package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"autobattler/internal/domain"
	"autobattler/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const defaultElo = 1000

// profileRecord is the stored shape of a game profile.
type profileRecord struct {
	Elo        int               `json:"elo"`
	Title      string            `json:"title,omitempty"`
	Role       string            `json:"role,omitempty"`
	Avatar     string            `json:"avatar,omitempty"`
	Collection map[string]string `json:"collection,omitempty"`
	CreatedAt  string            `json:"created_at,omitempty"`
}

// NakamaProfileAdapter reads and seeds game profiles in Nakama storage.
type NakamaProfileAdapter struct {
	nk runtime.NakamaModule
}

func NewNakamaProfileAdapter(nk runtime.NakamaModule) *NakamaProfileAdapter {
	return &NakamaProfileAdapter{nk: nk}
}

// Lookup joins the account's display data with the stored profile record.
// Users without a record get default values.
func (a *NakamaProfileAdapter) Lookup(ctx context.Context, userID string) (ports.Profile, error) {
	account, err := a.nk.AccountGetId(ctx, userID)
	if err != nil {
		return ports.Profile{}, fmt.Errorf("%w: %v", ports.ErrProfileNotFound, err)
	}
	profile := ports.Profile{
		UserID:     userID,
		Elo:        defaultElo,
		Collection: make(map[domain.Species]string),
	}
	if user := account.GetUser(); user != nil {
		profile.DisplayName = user.GetDisplayName()
		if profile.DisplayName == "" {
			profile.DisplayName = user.GetUsername()
		}
		profile.Avatar = user.GetAvatarUrl()
	}

	objects, err := a.nk.StorageRead(ctx, []*runtime.StorageRead{{
		Collection: profileCollection,
		Key:        profileKey,
		UserID:     userID,
	}})
	if err != nil {
		return ports.Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}
	if len(objects) == 0 {
		return profile, nil
	}

	var rec profileRecord
	if err := json.Unmarshal([]byte(objects[0].GetValue()), &rec); err != nil {
		return ports.Profile{}, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	profile.Elo = rec.Elo
	profile.Title = domain.Title(rec.Title)
	profile.Role = rec.Role
	if rec.Avatar != "" {
		profile.Avatar = rec.Avatar
	}
	for s, v := range rec.Collection {
		profile.Collection[domain.Species(s)] = v
	}
	return profile, nil
}

// CreateProfileOnce writes the record only if none exists yet.
func (a *NakamaProfileAdapter) CreateProfileOnce(ctx context.Context, userID string, profile ports.Profile) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("userID is required")
	}
	rec := profileRecord{
		Elo:       profile.Elo,
		Title:     string(profile.Title),
		Role:      profile.Role,
		Avatar:    profile.Avatar,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	value, err := json.Marshal(rec)
	if err != nil {
		return false, fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = a.nk.StorageWrite(ctx, []*runtime.StorageWrite{{
		Collection:      profileCollection,
		Key:             profileKey,
		UserID:          userID,
		Value:           string(value),
		Version:         "*",
		PermissionRead:  runtime.STORAGE_PERMISSION_PUBLIC_READ,
		PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
	}})
	if err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create profile: %w", err)
	}
	return true, nil
}

var (
	_ ports.ProfileStore  = (*NakamaProfileAdapter)(nil)
	_ ports.ProfileSeeder = (*NakamaProfileAdapter)(nil)
)
