package ports

import (
	"context"
	"errors"

	"autobattler/internal/domain"
)

// ErrProfileNotFound is returned when no profile exists for an identity.
var ErrProfileNotFound = errors.New("profile not found")

// Profile is the persisted identity a player joins a room with.
type Profile struct {
	UserID      string
	DisplayName string
	Avatar      string
	Elo         int
	Title       domain.Title
	Role        string
	// Collection maps owned species to the cosmetic variant unlocked for it.
	Collection map[domain.Species]string
}

// ProfileStore looks up profiles by external identity.
type ProfileStore interface {
	Lookup(ctx context.Context, userID string) (Profile, error)
}

// ProfileSeeder creates the default profile record at most once per user.
type ProfileSeeder interface {
	// CreateProfileOnce returns created=false when a record already exists.
	CreateProfileOnce(ctx context.Context, userID string, profile Profile) (bool, error)
}
