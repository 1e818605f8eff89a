package bot

import (
	"errors"
	"log/slog"

	"github.com/Versifine/relay/internal/protocol"
)

// tunnelTag is the host suffix announcing the client's Forge tunnel version.
func tunnelTag(version int) (string, error) {
	switch version {
	case 0:
		return "", nil
	case 1:
		return protocol.FML1HostTag, nil
	case 2:
		return protocol.FML2HostTag, nil
	}
	return "", protocol.Violation(protocol.Handshaking, protocol.ErrNotImplemented, "fml network version %d", version)
}

// handleTunnel answers one login plugin request on the Forge tunnel. Replies
// carry the request's message id so pipelined requests stay correlated.
func handleTunnel(req protocol.LoginPluginRequest, threshold int, send func(protocol.Outbound) error) error {
	if req.Channel != protocol.ChannelLoginWrapper {
		return protocol.Violation(protocol.Login, protocol.ErrUnsupportedChannel, "login plugin channel %q", req.Channel)
	}
	channel, inner, err := protocol.ReadLoginWrapper(req.Data, threshold)
	if err != nil {
		return &protocol.TransportError{Op: "decode", Err: err}
	}
	if channel != protocol.ChannelHandshake {
		return protocol.Violation(protocol.Login, protocol.ErrUnsupportedChannel, "%s inner channel %q", protocol.ChannelLoginWrapper, channel)
	}
	msg, err := protocol.DecodeFMLHandshake(inner)
	if errors.Is(err, protocol.ErrNotImplemented) {
		return protocol.Violation(protocol.Login, protocol.ErrNotImplemented, "fml handshake packet %d", inner.ID)
	}
	if err != nil {
		return &protocol.TransportError{Op: "decode", Err: err}
	}

	switch m := msg.(type) {
	case protocol.ModList:
		slog.Info("ModList", "mods", m.Mods, "channels", len(m.Channels), "registries", len(m.Registries))
	case protocol.ServerRegistry:
		slog.Info("ServerRegistry", "name", m.Name)
	case protocol.ConfigurationData:
		slog.Info("ConfigurationData", "filename", m.FileName, "contents", string(m.Contents))
	}

	reply, ok := protocol.ReplyTo(msg)
	if !ok {
		return protocol.Violation(protocol.Login, protocol.ErrNotImplemented, "no reply for %T", msg)
	}
	p, err := protocol.EncodeFMLHandshake(reply)
	if err != nil {
		return err
	}
	data, err := protocol.WriteLoginWrapper(protocol.ChannelHandshake, p, threshold)
	if err != nil {
		return err
	}
	return send(protocol.LoginPluginResponse{
		MessageID:  req.MessageID,
		Successful: true,
		Data:       data,
	})
}
