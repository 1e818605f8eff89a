package dispatch

import (
	"context"
	"log/slog"

	"github.com/Versifine/relay/internal/protocol"
	"github.com/Versifine/relay/internal/step"
)

// Teleport confirms every server teleport. The first one also requests the
// respawn that completes spawning.
func Teleport(env Env) Entry {
	log := slog.Default().With("component", "steps")
	return Entry{
		Name:  "teleport",
		Match: is[protocol.TeleportPlayer],
		Handle: func(_ context.Context, ev protocol.Inbound) error {
			tp := ev.(protocol.TeleportPlayer)
			if err := env.Out.Send(protocol.TeleportConfirm{TeleportID: tp.TeleportID}); err != nil {
				return err
			}
			// Respawn is requested once per session; later teleports only confirm.
			if env.Steps.Reached(step.Respawn) {
				return nil
			}
			if err := env.Steps.Claim(step.Respawn); err != nil {
				return err
			}
			log.Debug("Requesting respawn", "step", step.Respawn, "x", tp.X, "y", tp.Y, "z", tp.Z)
			return env.Out.Send(protocol.ClientStatus{Action: protocol.ActionPerformRespawn})
		},
	}
}
