package protocol

import (
	"bytes"
	"io"
)

// Host suffixes that tell a Forge server the client speaks its login tunnel.
const (
	FML1HostTag = "\x00FML\x00"
	FML2HostTag = "\x00FML2\x00"
)

func writeHandshake(w io.Writer, h Handshake) error {
	if err := WriteVarint(w, h.ProtocolVersion); err != nil {
		return err
	}
	if err := WriteString(w, h.Host); err != nil {
		return err
	}
	if err := WriteUnsignedShort(w, h.Port); err != nil {
		return err
	}
	return WriteVarint(w, h.NextState)
}

// ParseHandshake decodes a serverbound handshake payload. Fake servers in
// tests use it to inspect what the client announced.
func ParseHandshake(payload []byte) (*Handshake, error) {
	r := bytes.NewReader(payload)
	protocolVersion, err := ReadVarint(r)
	if err != nil {
		return nil, err
	}
	serverAddress, err := ReadString(r)
	if err != nil {
		return nil, err
	}
	serverPort, err := ReadUnsignedShort(r)
	if err != nil {
		return nil, err
	}
	nextState, err := ReadVarint(r)
	if err != nil {
		return nil, err
	}
	return &Handshake{
		ProtocolVersion: protocolVersion,
		Host:            serverAddress,
		Port:            serverPort,
		NextState:       nextState,
	}, nil
}
