package protocol

import (
	"encoding/json"
	"io"

	"github.com/Tnze/go-mc/chat"
)

// Chat positions carried by ServerMessage from 1.8 on.
const (
	ChatPositionChat   int8 = 0
	ChatPositionSystem int8 = 1
	ChatPositionHotbar int8 = 2
)

func (c *Codec) readServerMessage(r io.Reader) (Inbound, error) {
	raw, err := ReadString(r)
	if err != nil {
		return nil, err
	}
	msg, err := ParseChat(raw)
	if err != nil {
		return nil, err
	}
	out := ServerMessage{Message: msg}
	if c.version < Version1_8 {
		return out, nil
	}
	pos, err := ReadByte(r)
	if err != nil {
		return nil, err
	}
	out.Position = int8(pos)
	if c.version >= Version1_16 {
		if out.Sender, err = ReadUUID(r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ParseChat decodes a JSON chat component. Servers may send a bare JSON
// string instead of an object; both forms are accepted.
func ParseChat(raw string) (chat.Message, error) {
	var msg chat.Message
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		return chat.Message{}, err
	}
	return msg, nil
}

// readChatReason reads a disconnect reason and flattens it to plain text.
func readChatReason(r io.Reader) (string, error) {
	raw, err := ReadString(r)
	if err != nil {
		return "", err
	}
	msg, err := ParseChat(raw)
	if err != nil {
		// Some servers send the reason as unquoted text.
		return raw, nil
	}
	return PlainText(msg), nil
}

// PlainText renders msg without formatting codes.
func PlainText(msg chat.Message) string {
	return msg.ClearString()
}
