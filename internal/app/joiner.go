package app

import (
	"context"
	"fmt"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"autobattler/internal/ports"
)

// DefaultLookupTimeout bounds a profile lookup started by a join.
const DefaultLookupTimeout = 5 * time.Second

// Joiner turns joins into admissions without blocking the room loop: the
// profile lookup runs in the background and its result comes back as a
// command for the serial queue.
type Joiner struct {
	store   ports.ProfileStore
	logger  runtime.Logger
	timeout time.Duration
}

func NewJoiner(store ports.ProfileStore, logger runtime.Logger) *Joiner {
	return &Joiner{store: store, logger: logger, timeout: DefaultLookupTimeout}
}

// Admission looks the profile up and builds the admission command.
func (j *Joiner) Admission(ctx context.Context, userID string) (Command, error) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()
	profile, err := j.store.Lookup(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup profile %s: %w", userID, err)
	}
	if profile.UserID == "" {
		profile.UserID = userID
	}
	return AdmitPlayerCommand{Profile: profile}, nil
}

// Resolve runs Admission in the background and hands the command to
// deliver. A failed lookup is logged and reported to fail instead, so the
// caller can release whatever it reserved for the join.
func (j *Joiner) Resolve(ctx context.Context, userID string, deliver func(Command), fail func(error)) {
	go func() {
		cmd, err := j.Admission(ctx, userID)
		if err != nil {
			j.logger.Warn("Joiner: %v", err)
			if fail != nil {
				fail(err)
			}
			return
		}
		deliver(cmd)
	}()
}
