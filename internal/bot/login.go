package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Versifine/relay/internal/auth"
	"github.com/Versifine/relay/internal/protocol"
	"github.com/Versifine/relay/internal/step"
)

// login runs handshake, LoginStart and the pre-encryption loop on the full
// duplex conn.
func (c *Client) login(ctx context.Context, conn *protocol.Conn, n Negotiation) (*Server, error) {
	tag, err := tunnelTag(n.TunnelVersion)
	if err != nil {
		return nil, err
	}
	slog.Info("Starting Handshake", "state", protocol.Handshaking, "version", n.Version)
	if err := conn.WriteEvent(protocol.Handshake{
		ProtocolVersion: n.Version,
		Host:            c.opts.Host + tag,
		Port:            c.opts.Port,
		NextState:       protocol.NextStateLogin,
	}); err != nil {
		return nil, err
	}
	if err := conn.Advance(protocol.Login); err != nil {
		return nil, err
	}

	id := c.opts.Provider.Identity()
	slog.Info("Starting Login", "state", protocol.Login, "username", id.Username)
	if err := conn.WriteEvent(protocol.LoginStart{Username: id.Username}); err != nil {
		return nil, err
	}

	for {
		ev, err := conn.ReadEvent()
		if err != nil {
			return nil, err
		}
		switch ev := ev.(type) {
		case protocol.SetCompression:
			slog.Info("Setting compression", "threshold", ev.Threshold)
			conn.SetThreshold(int(ev.Threshold))
		case protocol.EncryptionRequest:
			return c.encrypt(ctx, conn, ev, n)
		case protocol.LoginSuccess:
			// 离线模式：不加密，也不声明任何步骤
			slog.Warn("Server is running in offline mode")
			rh, wh := conn.Split()
			return finishLogin(rh, wh, ev, n)
		case protocol.LoginDisconnect:
			return nil, &protocol.DisconnectError{Reason: ev.Reason}
		case protocol.LoginPluginRequest:
			if err := handleTunnel(ev, conn.Threshold(), conn.WriteEvent); err != nil {
				return nil, err
			}
		default:
			return nil, protocol.Violation(protocol.Login, protocol.ErrUnexpectedPacket, "%T", ev)
		}
	}
}

// encrypt answers the EncryptionRequest, splits the conn and finishes login
// on the encrypted halves.
func (c *Client) encrypt(ctx context.Context, conn *protocol.Conn, req protocol.EncryptionRequest, n Negotiation) (*Server, error) {
	secret, err := auth.NewSharedSecret()
	if err != nil {
		return nil, err
	}
	defer clear(secret)

	encSecret, err := auth.EncryptPKCS1(req.PublicKey, secret)
	if err != nil {
		return nil, err
	}
	encToken, err := auth.EncryptPKCS1(req.PublicKey, req.VerifyToken)
	if err != nil {
		return nil, err
	}
	if err := c.opts.Provider.JoinServer(ctx, req.ServerID, secret, req.PublicKey); err != nil {
		return nil, fmt.Errorf("join server session: %w", err)
	}

	var resp protocol.Outbound = protocol.EncryptionResponse{SharedSecret: encSecret, VerifyToken: encToken}
	if n.Version < protocol.Version1_8 {
		resp = protocol.EncryptionResponseLegacy{SharedSecret: encSecret, VerifyToken: encToken}
	}
	if err := conn.WriteEvent(resp); err != nil {
		return nil, err
	}

	// Both halves switch to the cipher before either touches the socket again.
	rh, wh := conn.Split()
	if err := rh.EnableEncryption(secret); err != nil {
		return nil, err
	}
	if err := wh.EnableEncryption(secret); err != nil {
		return nil, err
	}
	slog.Info("Encryption enabled")

	steps := c.opts.Steps
	for {
		ev, err := rh.ReadEvent()
		if err != nil {
			return nil, err
		}
		switch ev := ev.(type) {
		case protocol.SetCompression:
			if err := steps.Claim(step.Compression); err != nil {
				return nil, err
			}
			slog.Info("Setting compression", "threshold", ev.Threshold)
			rh.SetThreshold(int(ev.Threshold))
			wh.SetThreshold(int(ev.Threshold))
		case protocol.LoginSuccess:
			if err := steps.Claim(step.LoginSuccess); err != nil {
				return nil, err
			}
			return finishLogin(rh, wh, ev, n)
		case protocol.LoginDisconnect:
			return nil, &protocol.DisconnectError{Reason: ev.Reason}
		case protocol.LoginPluginRequest:
			if err := handleTunnel(ev, rh.Threshold(), wh.WriteEvent); err != nil {
				return nil, err
			}
		default:
			return nil, protocol.Violation(protocol.Login, protocol.ErrUnexpectedPacket, "%T", ev)
		}
	}
}

func finishLogin(rh *protocol.ReadHalf, wh *protocol.WriteHalf, success protocol.LoginSuccess, n Negotiation) (*Server, error) {
	if err := rh.Advance(protocol.Play); err != nil {
		return nil, err
	}
	if err := wh.Advance(protocol.Play); err != nil {
		return nil, err
	}
	slog.Info("Login successful", "username", success.Username, "uuid", success.UUID.String())
	return newServer(rh, wh, success, n), nil
}
