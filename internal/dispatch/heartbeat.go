package dispatch

import (
	"context"
	"log/slog"

	"github.com/Versifine/relay/internal/protocol"
)

// Heartbeat echoes every server keepalive id straight back.
func Heartbeat(env Env) Entry {
	log := slog.Default().With("component", "heartbeat")
	return Entry{
		Name:  "heartbeat",
		Match: is[protocol.KeepAlive],
		Handle: func(_ context.Context, ev protocol.Inbound) error {
			ka := ev.(protocol.KeepAlive)
			log.Debug("KeepAlive", "id", ka.ID)
			return env.Out.Send(protocol.KeepAliveReply{ID: ka.ID})
		},
	}
}
