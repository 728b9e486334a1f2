package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces this module's keys inside the Nakama runtime env.
const EnvPrefix = "AUTOBATTLER_"

// RuntimeConfig holds deployment settings read from the runtime environment.
type RuntimeConfig struct {
	BotsEnabled       bool          `env:"BOTS_ENABLED" envDefault:"true"`
	BotFillDelay      time.Duration `env:"BOT_FILL_DELAY" envDefault:"10s"`
	TickRate          int           `env:"TICK_RATE" envDefault:"10"`
	GameConfigPath    string        `env:"GAME_CONFIG" envDefault:"data/game_config.json"`
	BotIdentitiesPath string        `env:"BOT_IDENTITIES" envDefault:"data/bot_identities.json"`
	IntentRate        float64       `env:"INTENT_RATE" envDefault:"20"`
	IntentBurst       int           `env:"INTENT_BURST" envDefault:"40"`
	OTLPEndpoint      string        `env:"OTLP_ENDPOINT"`
	ServiceName       string        `env:"SERVICE_NAME" envDefault:"autobattler"`
	// Seed fixes the room RNG when non-zero.
	Seed int64 `env:"SEED"`
}

// ParseRuntimeConfig reads settings from the given variables, usually the
// map Nakama exposes under runtime.RUNTIME_CTX_ENV.
func ParseRuntimeConfig(vars map[string]string) (RuntimeConfig, error) {
	var rc RuntimeConfig
	if vars == nil {
		vars = map[string]string{}
	}
	err := env.ParseWithOptions(&rc, env.Options{
		Environment: vars,
		Prefix:      EnvPrefix,
	})
	if err != nil {
		return RuntimeConfig{}, fmt.Errorf("parse runtime env: %w", err)
	}
	if rc.TickRate <= 0 {
		return RuntimeConfig{}, fmt.Errorf("parse runtime env: tick rate must be positive, got %d", rc.TickRate)
	}
	return rc, nil
}
