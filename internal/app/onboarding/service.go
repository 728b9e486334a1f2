package onboarding

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"autobattler/internal/ports"
)

const (
	defaultElo    = 1000
	defaultAvatar = "0019/Normal"
)

// Result captures non-fatal onboarding outcomes.
type Result struct {
	// ProfileUpdateErr is set when the account update failed but onboarding continued.
	ProfileUpdateErr error
	// ProfileCreated is false when the user already had a profile record.
	ProfileCreated bool
	DisplayName    string
}

// Service handles post-auth onboarding for new users.
type Service struct {
	accounts ports.AccountPort
	profiles ports.ProfileSeeder
	rng      *rand.Rand
}

// NewService constructs an onboarding service with required ports.
// accounts/profiles must be non-nil; rng may be nil to use a time-seeded default.
func NewService(accounts ports.AccountPort, profiles ports.ProfileSeeder, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		accounts: accounts,
		profiles: profiles,
		rng:      rng,
	}
}

// OnboardNewUser names a fresh account and writes its default profile record.
// The record is written at most once, so replays of the hook are harmless.
func (s *Service) OnboardNewUser(ctx context.Context, userID string) (Result, error) {
	if s.accounts == nil || s.profiles == nil {
		return Result{}, fmt.Errorf("onboarding service not configured")
	}

	result := Result{DisplayName: s.generateTrainerName()}
	if err := s.accounts.UpdateProfile(ctx, userID, result.DisplayName, defaultAvatar); err != nil {
		result.ProfileUpdateErr = err
	}

	created, err := s.profiles.CreateProfileOnce(ctx, userID, ports.Profile{
		UserID:      userID,
		DisplayName: result.DisplayName,
		Avatar:      defaultAvatar,
		Elo:         defaultElo,
	})
	if err != nil {
		return result, fmt.Errorf("failed to create profile: %w", err)
	}
	result.ProfileCreated = created
	return result, nil
}

func (s *Service) generateTrainerName() string {
	adjectives := []string{"Happy", "Shiny", "Brave", "Clever", "Swift", "Calm", "Mighty", "Witty", "Sly", "Wild"}
	nouns := []string{"Trainer", "Ranger", "Breeder", "Camper", "Hiker", "Picnicker", "Ace", "Scout", "Rival", "Champ"}

	adj := adjectives[s.rng.Intn(len(adjectives))]
	noun := nouns[s.rng.Intn(len(nouns))]
	num := s.rng.Intn(9000) + 1000

	return fmt.Sprintf("%s%s%d", adj, noun, num)
}
