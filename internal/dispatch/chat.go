package dispatch

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Tnze/go-mc/chat"
	"github.com/Versifine/relay/internal/event"
	"github.com/Versifine/relay/internal/protocol"
)

// Chat echoes server chat back line by line. A group is dropped whole when
// any fragment mentions the bot or carries the echo marker, so the bot never
// answers itself.
func Chat(env Env) Entry {
	log := slog.Default().With("component", "chat")
	return Entry{
		Name:  "chat",
		Match: is[protocol.ServerMessage],
		Handle: func(ctx context.Context, ev protocol.Inbound) error {
			msg := ev.(protocol.ServerMessage)
			if msg.Position != 0 {
				log.Debug("Not a message from a player", "position", msg.Position)
			}
			fragments := Fragments(msg.Message)
			relay := len(fragments) > 0 && !suppressed(fragments, env.Username, env.EchoMarker)
			env.Bus.Publish(event.EventChatRelay, event.NewChatEvent(
				msg.Sender, fragments, event.SourceFromPosition(msg.Position), relay))
			if !relay {
				return nil
			}
			for _, f := range fragments {
				if env.ChatLimiter != nil {
					if err := env.ChatLimiter.Wait(ctx); err != nil {
						return err
					}
				}
				if err := env.Out.Send(protocol.ChatMessage{Message: f}); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// Fragments returns the component's own text followed by the text of each
// direct extra, skipping empty ones.
func Fragments(msg chat.Message) []string {
	var out []string
	if msg.Text != "" {
		out = append(out, msg.Text)
	}
	for _, extra := range msg.Extra {
		if extra.Text != "" {
			out = append(out, extra.Text)
		}
	}
	return out
}

func suppressed(fragments []string, username, marker string) bool {
	for _, f := range fragments {
		if (username != "" && strings.Contains(f, username)) || strings.Contains(f, marker) {
			return true
		}
	}
	return false
}
