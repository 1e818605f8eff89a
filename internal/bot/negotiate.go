package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Versifine/relay/internal/protocol"
)

const probeTimeout = 5 * time.Second

// Negotiation is what the status probe learned about the server.
type Negotiation struct {
	Version       int32
	Mods          []protocol.ModInfo
	TunnelVersion int // 0 when the server runs no mod loader
	Description   string
	Latency       time.Duration
}

// Negotiate asks the server for its version and mod loader. It never fails:
// any probe error degrades to the fallback version with no mods.
func Negotiate(ctx context.Context, host string, port uint16, fallback int32) Negotiation {
	n, err := probe(ctx, host, port, fallback)
	if err != nil {
		slog.Warn("Status probe failed, using fallback version",
			"address", fmt.Sprintf("%s:%d", host, port), "error", err, "fallback", fallback)
		return Negotiation{Version: fallback}
	}
	slog.Info("Detected server protocol version",
		"version", n.Version, "tunnel", n.TunnelVersion, "mods", len(n.Mods), "latency", n.Latency)
	return n
}

func probe(ctx context.Context, host string, port uint16, fallback int32) (Negotiation, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	conn, err := protocol.Dial(ctx, host, port, protocol.NewCodec(fallback))
	if err != nil {
		return Negotiation{}, err
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	return probeConn(conn, host, port)
}

func probeConn(conn *protocol.Conn, host string, port uint16) (Negotiation, error) {
	if err := conn.WriteEvent(protocol.Handshake{
		ProtocolVersion: conn.Codec().Version(),
		Host:            host,
		Port:            port,
		NextState:       protocol.NextStateStatus,
	}); err != nil {
		return Negotiation{}, err
	}
	if err := conn.Advance(protocol.Status); err != nil {
		return Negotiation{}, err
	}
	if err := conn.WriteEvent(protocol.StatusRequest{}); err != nil {
		return Negotiation{}, err
	}
	ev, err := conn.ReadEvent()
	if err != nil {
		return Negotiation{}, err
	}
	status, ok := ev.(protocol.StatusResponse)
	if !ok {
		return Negotiation{}, protocol.Violation(protocol.Status, protocol.ErrUnexpectedPacket, "%T", ev)
	}
	n := Negotiation{
		Version:       status.Version,
		Mods:          status.Mods,
		TunnelVersion: status.TunnelVersion,
		Description:   status.Description,
	}

	// 延迟测量失败不影响协商结果
	sent := time.Now()
	if err := conn.WriteEvent(protocol.Ping{Payload: sent.UnixMilli()}); err != nil {
		slog.Debug("Ping failed", "error", err)
		return n, nil
	}
	ev, err = conn.ReadEvent()
	if pong, ok := ev.(protocol.Pong); err == nil && ok && pong.Payload == sent.UnixMilli() {
		n.Latency = time.Since(sent)
	} else {
		slog.Debug("No pong from server", "error", err)
	}
	return n, nil
}
