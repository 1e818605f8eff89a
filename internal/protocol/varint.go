package protocol

import (
	"io"
)

const (
	SEGMENT_BITS = 0x7F
	CONTINUE_BIT = 0x80
)

// readByte avoids an allocation per byte when the reader already buffers.
func readByte(r io.Reader) (byte, error) {
	if br, ok := r.(io.ByteReader); ok {
		return br.ReadByte()
	}
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func ReadVarint(r io.Reader) (value int32, err error) {
	position := 0
	for {
		var b byte
		b, err = readByte(r)
		if err != nil {
			return 0, err
		}
		value |= int32(b&SEGMENT_BITS) << position
		if (b & CONTINUE_BIT) == 0 {
			return value, nil
		}
		position += 7
		if position >= 32 {
			return 0, ErrVarIntTooLong
		}
	}
}

func WriteVarint(w io.Writer, value int32) error {
	var buf [5]byte
	n := PutVarint(buf[:], value)
	_, err := w.Write(buf[:n])
	return err
}

// PutVarint encodes value into buf, which must hold at least 5 bytes, and
// returns the number of bytes written.
func PutVarint(buf []byte, value int32) int {
	uvalue := uint32(value)
	n := 0
	for {
		temp := byte(uvalue & SEGMENT_BITS)
		uvalue >>= 7
		if uvalue != 0 {
			temp |= CONTINUE_BIT
		}
		buf[n] = temp
		n++
		if uvalue == 0 {
			return n
		}
	}
}

// VarintLen returns the encoded size of value.
func VarintLen(value int32) int {
	var buf [5]byte
	return PutVarint(buf[:], value)
}

func ReadVarLong(r io.Reader) (value int64, err error) {
	position := 0
	for {
		var b byte
		b, err = readByte(r)
		if err != nil {
			return 0, err
		}
		value |= int64(b&SEGMENT_BITS) << position
		if (b & CONTINUE_BIT) == 0 {
			return value, nil
		}
		position += 7
		if position >= 64 {
			return 0, ErrVarLongTooLong
		}
	}
}

func WriteVarLong(w io.Writer, value int64) error {
	uvalue := uint64(value)
	buf := make([]byte, 0, 10)
	for {
		temp := byte(uvalue & SEGMENT_BITS)
		uvalue >>= 7
		if uvalue != 0 {
			temp |= CONTINUE_BIT
		}
		buf = append(buf, temp)
		if uvalue == 0 {
			break
		}
	}
	_, err := w.Write(buf)
	return err
}
