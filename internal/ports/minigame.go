package ports

import (
	"time"

	"autobattler/internal/domain"
)

// Minigame runs the carousel phase.
type Minigame interface {
	Initialize(players []*domain.Player, stage int)
	Update(dt time.Duration)
	Stop(players []*domain.Player)
}
