package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"

	"autobattler/internal/bot"
	"autobattler/internal/config"
	"autobattler/internal/telemetry"
)

// InitModule wires RPCs, hooks and match handlers for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	vars, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	settings, err := config.ParseRuntimeConfig(vars)
	if err != nil {
		logger.Error("InitModule: %v", err)
		return err
	}

	if err := config.LoadGameConfig(settings.GameConfigPath); err != nil {
		logger.Warn("InitModule: Using default game config: %v", err)
	}

	if _, err := telemetry.Setup(ctx, settings.OTLPEndpoint, settings.ServiceName); err != nil {
		logger.Warn("InitModule: Tracing disabled: %v", err)
	}

	var registry *bot.Registry
	if settings.BotsEnabled {
		registry, err = bot.LoadIdentities(settings.BotIdentitiesPath)
		if err != nil {
			logger.Warn("InitModule: Could not load bot identities: %v", err)
		} else {
			registry.ProvisionBots(ctx, nk, logger)
		}
	}

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}
	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return err
	}
	if err := initializer.RegisterMatch(MatchNameAutoBattler, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(settings, registry), nil
	}); err != nil {
		return err
	}

	logger.Info("Auto-battler Go module loaded.")
	return nil
}
