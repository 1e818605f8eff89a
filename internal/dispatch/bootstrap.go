package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/Versifine/relay/internal/protocol"
	"github.com/Versifine/relay/internal/step"
)

// Bootstrap claims the join milestone, waits SettingsDelay and then sends
// the fixed client settings. A second JoinGame fails on the step claim.
func Bootstrap(env Env) Entry {
	log := slog.Default().With("component", "steps")
	return Entry{
		Name:  "bootstrap",
		Match: is[protocol.JoinGame],
		Handle: func(ctx context.Context, ev protocol.Inbound) error {
			jg := ev.(protocol.JoinGame)
			if err := env.Steps.Claim(step.JoinGame); err != nil {
				return err
			}
			log.Info("Joined game", "entity_id", jg.EntityID, "gamemode", jg.Gamemode, "hardcore", jg.Hardcore)

			timer := time.NewTimer(env.SettingsDelay)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}

			if err := env.Steps.Claim(step.ClientSettings); err != nil {
				return err
			}
			log.Debug("Sending client settings", "step", step.ClientSettings)
			return env.Out.Send(protocol.BootstrapClientSettings())
		},
	}
}
