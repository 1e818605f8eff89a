package protocol

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
)

const MaxPacketSize = 2097152 // 2MB

// CompressionDisabled is the threshold value before SetCompression arrives.
const CompressionDisabled = -1

type Packet struct {
	ID      int32
	Payload []byte
}

// ReadPacket reads one length-prefixed frame. With threshold >= 0 the frame
// carries a data-length header and zlib-compressed bodies.
func ReadPacket(r io.Reader, threshold int) (*Packet, error) {
	packetLen, err := ReadVarint(r)
	if err != nil {
		return nil, err
	}
	if packetLen <= 0 {
		return nil, ErrInvalidPacket
	}
	if packetLen > MaxPacketSize {
		return nil, ErrPacketTooLarge
	}

	data := make([]byte, packetLen)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, errors.Join(ErrInvalidPacket, err)
	}

	body := bytes.NewReader(data)
	var rawDataReader io.Reader = body

	if threshold >= 0 {
		dataLen, err := ReadVarint(body)
		if err != nil {
			return nil, err
		}
		if dataLen < 0 || dataLen > MaxPacketSize {
			return nil, fmt.Errorf("%w: data length %d", ErrPacketTooLarge, dataLen)
		}
		if dataLen != 0 {
			z, err := zlib.NewReader(body)
			if err != nil {
				return nil, err
			}
			defer z.Close()

			decompressed := make([]byte, dataLen)
			if _, err := io.ReadFull(z, decompressed); err != nil {
				return nil, err
			}
			rawDataReader = bytes.NewReader(decompressed)
		}
		// dataLen == 0: the rest is an uncompressed [ID][Payload]
	}

	id, err := ReadVarint(rawDataReader)
	if err != nil {
		return nil, err
	}
	payload, err := io.ReadAll(rawDataReader)
	if err != nil {
		return nil, err
	}
	return &Packet{
		ID:      id,
		Payload: payload,
	}, nil
}

// WritePacket frames packet and writes it with a single Write call so a
// cipher stream below sees whole frames.
func WritePacket(w io.Writer, packet *Packet, threshold int) error {
	frame, err := EncodeFrame(packet, threshold)
	if err != nil {
		return err
	}
	_, err = w.Write(frame)
	return err
}

// EncodeFrame returns the wire bytes of packet including the length prefix.
func EncodeFrame(packet *Packet, threshold int) ([]byte, error) {
	var idBuf [5]byte
	idLen := PutVarint(idBuf[:], packet.ID)
	uncompressedLen := idLen + len(packet.Payload)

	var body bytes.Buffer
	if threshold >= 0 {
		if uncompressedLen >= threshold {
			if err := WriteVarint(&body, int32(uncompressedLen)); err != nil {
				return nil, err
			}
			z := zlib.NewWriter(&body)
			if _, err := z.Write(idBuf[:idLen]); err != nil {
				return nil, err
			}
			if _, err := z.Write(packet.Payload); err != nil {
				return nil, err
			}
			if err := z.Close(); err != nil {
				return nil, err
			}
		} else {
			// below threshold: data length 0, body left uncompressed
			body.WriteByte(0)
			body.Write(idBuf[:idLen])
			body.Write(packet.Payload)
		}
	} else {
		body.Write(idBuf[:idLen])
		body.Write(packet.Payload)
	}

	if body.Len() > MaxPacketSize {
		return nil, ErrPacketTooLarge
	}
	frame := bytes.NewBuffer(make([]byte, 0, body.Len()+5))
	if err := WriteVarint(frame, int32(body.Len())); err != nil {
		return nil, err
	}
	frame.Write(body.Bytes())
	return frame.Bytes(), nil
}
