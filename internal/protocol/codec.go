package protocol

import (
	"bytes"
	"fmt"
	"io"
)

// Codec translates between frames and canonical events for one negotiated
// protocol version. It is stateless and safe to share between halves.
type Codec struct {
	version int32
	play    *PlayTable
}

func NewCodec(version int32) *Codec {
	table, _ := LookupPlayTable(version)
	return &Codec{version: version, play: table}
}

func (c *Codec) Version() int32 {
	return c.version
}

func (c *Codec) PlayTable() *PlayTable {
	return c.play
}

// Decode turns a frame read in state into a canonical event. Packets without
// a decoder become Unknown.
func (c *Codec) Decode(state State, p *Packet) (Inbound, error) {
	r := bytes.NewReader(p.Payload)
	var (
		ev  Inbound
		err error
	)
	switch state {
	case Status:
		ev, err = c.decodeStatus(p.ID, r)
	case Login:
		ev, err = c.decodeLogin(p.ID, r)
	case Play:
		ev, err = c.decodePlay(p.ID, r)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s packet 0x%02x: %w", state, p.ID, err)
	}
	if ev == nil {
		return Unknown{State: state, ID: p.ID, Data: p.Payload}, nil
	}
	return ev, nil
}

// Encode serializes o for the codec's version.
func (c *Codec) Encode(o Outbound) (*Packet, error) {
	buf := new(bytes.Buffer)
	id, err := c.encode(buf, o)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", o, err)
	}
	if id == absent {
		return nil, fmt.Errorf("encode %T for protocol %d: %w", o, c.version, ErrUnknownOutbound)
	}
	return &Packet{ID: id, Payload: buf.Bytes()}, nil
}

func (c *Codec) encode(w io.Writer, o Outbound) (int32, error) {
	switch o := o.(type) {
	case Handshake:
		return C2SHandshake, writeHandshake(w, o)
	case StatusRequest:
		return C2SStatusRequest, nil
	case Ping:
		return C2SStatusPing, WriteInt64(w, o.Payload)
	case LoginStart:
		return C2SLoginStart, WriteString(w, o.Username)
	case EncryptionResponse:
		return C2SEncryptionResponse, writeEncryptionResponse(w, o.SharedSecret, o.VerifyToken, WriteByteArray)
	case EncryptionResponseLegacy:
		return C2SEncryptionResponse, writeEncryptionResponse(w, o.SharedSecret, o.VerifyToken, WriteShortByteArray)
	case LoginPluginResponse:
		return C2SLoginPluginResponse, writeLoginPluginResponse(w, o)
	case KeepAliveReply:
		return c.play.C2SKeepAlive, c.writeKeepAlive(w, o.ID)
	case ChatMessage:
		return c.play.C2SChatMessage, WriteString(w, o.Message)
	case ClientSettings:
		return c.play.C2SClientSettings, c.writeClientSettings(w, o)
	case ClientStatus:
		return c.play.C2SClientStatus, c.writeClientStatus(w, o)
	case TeleportConfirm:
		return c.play.C2STeleportConfirm, WriteVarint(w, o.TeleportID)
	}
	return absent, fmt.Errorf("%w: %T", ErrUnknownOutbound, o)
}

func (c *Codec) decodePlay(id int32, r *bytes.Reader) (Inbound, error) {
	t := c.play
	switch id {
	case t.S2CKeepAlive:
		return c.readKeepAlive(r)
	case t.S2CJoinGame:
		return c.readJoinGame(r)
	case t.S2CChatMessage:
		return c.readServerMessage(r)
	case t.S2CPlayerPosition:
		// absent (-1) never matches a decoded id
		return readTeleportPlayer(r)
	case t.S2CDisconnect:
		reason, err := readChatReason(r)
		if err != nil {
			return nil, err
		}
		return PlayDisconnect{Reason: reason}, nil
	}
	return nil, nil
}
