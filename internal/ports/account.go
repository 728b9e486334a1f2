package ports

import "context"

// AccountPort defines the interface for updating account profiles.
type AccountPort interface {
	// UpdateProfile sets the display name and avatar shown in rooms.
	UpdateProfile(ctx context.Context, userID, displayName, avatarURL string) error
}
