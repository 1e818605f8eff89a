package protocol

import (
	"bytes"
	"io"
)

func (c *Codec) decodeLogin(id int32, r *bytes.Reader) (Inbound, error) {
	switch id {
	case S2CLoginDisconnect:
		reason, err := readChatReason(r)
		if err != nil {
			return nil, err
		}
		return LoginDisconnect{Reason: reason}, nil
	case S2CEncryptionRequest:
		return c.readEncryptionRequest(r)
	case S2CLoginSuccess:
		return c.readLoginSuccess(r)
	case S2CSetCompression:
		threshold, err := ReadVarint(r)
		if err != nil {
			return nil, err
		}
		return SetCompression{Threshold: threshold}, nil
	case S2CLoginPluginRequest:
		return readLoginPluginRequest(r)
	}
	return nil, nil
}

// readEncryptionRequest normalizes the int16-prefixed (1.7) and the
// VarInt-prefixed (1.8+) array forms.
func (c *Codec) readEncryptionRequest(r io.Reader) (Inbound, error) {
	readArray := ReadByteArray
	if c.version < Version1_8 {
		readArray = ReadShortByteArray
	}
	serverID, err := ReadString(r)
	if err != nil {
		return nil, err
	}
	publicKey, err := readArray(r)
	if err != nil {
		return nil, err
	}
	verifyToken, err := readArray(r)
	if err != nil {
		return nil, err
	}
	return EncryptionRequest{
		ServerID:    serverID,
		PublicKey:   publicKey,
		VerifyToken: verifyToken,
	}, nil
}

func writeEncryptionResponse(w io.Writer, secret, token []byte, writeArray func(io.Writer, []byte) error) error {
	if err := writeArray(w, secret); err != nil {
		return err
	}
	return writeArray(w, token)
}

func readLoginPluginRequest(r *bytes.Reader) (Inbound, error) {
	messageID, err := ReadVarint(r)
	if err != nil {
		return nil, err
	}
	channel, err := ReadString(r)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return LoginPluginRequest{
		MessageID: messageID,
		Channel:   channel,
		Data:      data,
	}, nil
}

func writeLoginPluginResponse(w io.Writer, o LoginPluginResponse) error {
	if err := WriteVarint(w, o.MessageID); err != nil {
		return err
	}
	if err := WriteBool(w, o.Successful); err != nil {
		return err
	}
	if !o.Successful {
		return nil
	}
	_, err := w.Write(o.Data)
	return err
}
