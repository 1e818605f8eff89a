// Package dispatch routes play-state events through an ordered chain of
// handlers. The first entry whose Match accepts an event handles it.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Versifine/relay/internal/bot"
	"github.com/Versifine/relay/internal/event"
	"github.com/Versifine/relay/internal/protocol"
	"github.com/Versifine/relay/internal/step"
	"golang.org/x/time/rate"
)

// Sender queues an outbound event for the writer task.
type Sender interface {
	Send(protocol.Outbound) error
}

type Entry struct {
	Name   string
	Match  func(protocol.Inbound) bool
	Handle func(ctx context.Context, ev protocol.Inbound) error
}

type Pipeline struct {
	entries []Entry
	bus     *event.Bus
	log     *slog.Logger
}

func New(entries ...Entry) *Pipeline {
	return &Pipeline{
		entries: entries,
		log:     slog.Default().With("component", "dispatch"),
	}
}

// Dispatch runs the first matching handler. Unmatched events are dropped and
// report handled=false.
func (p *Pipeline) Dispatch(ctx context.Context, ev protocol.Inbound) (handled bool, err error) {
	for _, e := range p.entries {
		if !e.Match(ev) {
			continue
		}
		if err := e.Handle(ctx, ev); err != nil {
			return true, fmt.Errorf("%s handler: %w", e.Name, err)
		}
		return true, nil
	}
	return false, nil
}

// Run handles events one at a time until the reader bridge forwards an
// error, a handler fails or ctx ends. It satisfies bot.Dispatcher.
func (p *Pipeline) Run(ctx context.Context, events <-chan bot.ReadResult) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case r, ok := <-events:
			if !ok {
				return nil
			}
			if r.Err != nil {
				return r.Err
			}
			if d, ok := r.Event.(protocol.PlayDisconnect); ok {
				p.log.Warn("Disconnected by server", "reason", d.Reason)
				p.bus.Publish(event.EventDisconnect, event.DisconnectEvent{Reason: d.Reason})
			}
			handled, err := p.Dispatch(ctx, r.Event)
			if err != nil {
				return err
			}
			if !handled {
				p.log.Debug("Dropped event", "kind", fmt.Sprintf("%T", r.Event))
			}
		}
	}
}

// Env is the session context handlers share.
type Env struct {
	Out           Sender
	Steps         *step.Sequencer
	Username      string
	EchoMarker    string
	SettingsDelay time.Duration
	ChatLimiter   *rate.Limiter // nil relays without throttling
	Bus           *event.Bus
}

const (
	DefaultEchoMarker    = "unhandled: "
	DefaultSettingsDelay = time.Second
)

// Default builds the heartbeat, bootstrap, chat and teleport chain in that
// priority order.
func Default(env Env) *Pipeline {
	if env.EchoMarker == "" {
		env.EchoMarker = DefaultEchoMarker
	}
	if env.Steps == nil {
		env.Steps = step.New()
	}
	p := New(
		Heartbeat(env),
		Bootstrap(env),
		Chat(env),
		Teleport(env),
	)
	p.bus = env.Bus
	return p
}

func is[T protocol.Inbound](ev protocol.Inbound) bool {
	_, ok := ev.(T)
	return ok
}
