// Package bot drives one session: status probe, login, and the reader and
// writer units that serve the play state.
package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Versifine/relay/internal/auth"
	"github.com/Versifine/relay/internal/event"
	"github.com/Versifine/relay/internal/protocol"
	"github.com/Versifine/relay/internal/step"
)

type Options struct {
	Host            string
	Port            uint16
	FallbackVersion int32
	Provider        auth.Provider
	Steps           *step.Sequencer
	Bus             *event.Bus
}

type Client struct {
	opts Options
}

func NewClient(opts Options) *Client {
	if opts.Steps == nil {
		opts.Steps = step.New()
	}
	return &Client{opts: opts}
}

func (c *Client) Steps() *step.Sequencer {
	return c.opts.Steps
}

// ConnectTo probes the server, logs in and returns a session in the Play
// state with its reader bridge running. Login has no timeout; cancelling ctx
// closes the socket.
func (c *Client) ConnectTo(ctx context.Context) (*Server, error) {
	n := Negotiate(ctx, c.opts.Host, c.opts.Port, c.opts.FallbackVersion)
	if err := checkVersion(n.Version); err != nil {
		return nil, err
	}

	conn, err := protocol.Dial(ctx, c.opts.Host, c.opts.Port, protocol.NewCodec(n.Version))
	if err != nil {
		return nil, err
	}
	slog.Info("Connected to server", "host", c.opts.Host, "port", c.opts.Port)
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	srv, err := c.login(ctx, conn, n)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("login failed: %w", err)
	}
	c.opts.Bus.Publish(event.EventLogin, &event.LoginEvent{
		Username:  srv.Username,
		UUID:      srv.UUID,
		Version:   srv.Version,
		Encrypted: srv.encrypted,
		Threshold: srv.threshold,
		Mods:      len(srv.Mods),
	})
	return srv, nil
}

// checkVersion refuses versions whose play ids would be borrowed from another
// release.
func checkVersion(version int32) error {
	table, exact := protocol.LookupPlayTable(version)
	if exact {
		return nil
	}
	return protocol.Violation(protocol.Handshaking, protocol.ErrUnsupportedVersion,
		"no packet table for protocol %d (nearest is %s)", version, table.Name)
}
