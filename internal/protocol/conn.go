package protocol

import (
	"context"
	"io"
	"net"
	"strconv"
)

// Conn is the full-duplex connection used until login reaches the point
// where encryption or Play begins. Split then hands each direction to its
// own owner.
type Conn struct {
	raw       net.Conn
	codec     *Codec
	threshold int
	state     State
	split     bool
}

// Dial opens a TCP connection to host:port for the given protocol version.
func Dial(ctx context.Context, host string, port uint16, codec *Codec) (*Conn, error) {
	var d net.Dialer
	raw, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(int(port))))
	if err != nil {
		return nil, &TransportError{Op: "dial", Err: err}
	}
	return NewConn(raw, codec), nil
}

// NewConn wraps an established socket in the Handshaking state.
func NewConn(raw net.Conn, codec *Codec) *Conn {
	return &Conn{
		raw:       raw,
		codec:     codec,
		threshold: CompressionDisabled,
		state:     Handshaking,
	}
}

func (c *Conn) Codec() *Codec  { return c.codec }
func (c *Conn) State() State   { return c.state }
func (c *Conn) Threshold() int { return c.threshold }

func (c *Conn) SetThreshold(threshold int) {
	c.threshold = threshold
}

func (c *Conn) Advance(next State) error {
	return advance(&c.state, next)
}

func (c *Conn) ReadEvent() (Inbound, error) {
	if c.split {
		return nil, ErrConnSplit
	}
	return readEvent(c.raw, c.codec, c.state, c.threshold)
}

func (c *Conn) WriteEvent(o Outbound) error {
	if c.split {
		return ErrConnSplit
	}
	return writeEvent(c.raw, c.codec, o, c.threshold)
}

func (c *Conn) Close() error {
	return c.raw.Close()
}

// Split hands the read and write directions to two owners. Each half starts
// with a copy of the current state and threshold and never touches the
// other's fields. The Conn itself is unusable afterwards.
func (c *Conn) Split() (*ReadHalf, *WriteHalf) {
	c.split = true
	rh := &ReadHalf{
		raw:       c.raw,
		r:         c.raw,
		codec:     c.codec,
		threshold: c.threshold,
		state:     c.state,
	}
	wh := &WriteHalf{
		raw:       c.raw,
		w:         c.raw,
		codec:     c.codec,
		threshold: c.threshold,
		state:     c.state,
	}
	return rh, wh
}

type ReadHalf struct {
	raw       net.Conn
	r         io.Reader
	codec     *Codec
	threshold int
	state     State
	encrypted bool
}

// EnableEncryption must run before the next read.
func (h *ReadHalf) EnableEncryption(secret []byte) error {
	if h.encrypted {
		return ErrAlreadyEncrypted
	}
	r, err := newDecryptReader(h.r, secret)
	if err != nil {
		return err
	}
	h.r = r
	h.encrypted = true
	return nil
}

func (h *ReadHalf) Encrypted() bool            { return h.encrypted }
func (h *ReadHalf) State() State               { return h.state }
func (h *ReadHalf) Threshold() int             { return h.threshold }
func (h *ReadHalf) SetThreshold(threshold int) { h.threshold = threshold }
func (h *ReadHalf) Advance(next State) error   { return advance(&h.state, next) }

func (h *ReadHalf) ReadEvent() (Inbound, error) {
	return readEvent(h.r, h.codec, h.state, h.threshold)
}

// Close closes the underlying socket, unblocking a pending read.
func (h *ReadHalf) Close() error {
	return h.raw.Close()
}

type WriteHalf struct {
	raw       net.Conn
	w         io.Writer
	codec     *Codec
	threshold int
	state     State
	encrypted bool
}

// EnableEncryption must run before the next write.
func (h *WriteHalf) EnableEncryption(secret []byte) error {
	if h.encrypted {
		return ErrAlreadyEncrypted
	}
	w, err := newEncryptWriter(h.w, secret)
	if err != nil {
		return err
	}
	h.w = w
	h.encrypted = true
	return nil
}

func (h *WriteHalf) Encrypted() bool            { return h.encrypted }
func (h *WriteHalf) State() State               { return h.state }
func (h *WriteHalf) Threshold() int             { return h.threshold }
func (h *WriteHalf) SetThreshold(threshold int) { h.threshold = threshold }
func (h *WriteHalf) Advance(next State) error   { return advance(&h.state, next) }

func (h *WriteHalf) WriteEvent(o Outbound) error {
	return writeEvent(h.w, h.codec, o, h.threshold)
}

func (h *WriteHalf) Close() error {
	return h.raw.Close()
}

func readEvent(r io.Reader, codec *Codec, state State, threshold int) (Inbound, error) {
	p, err := ReadPacket(r, threshold)
	if err != nil {
		return nil, &TransportError{Op: "read", Err: err}
	}
	ev, err := codec.Decode(state, p)
	if err != nil {
		return nil, &TransportError{Op: "decode", Err: err}
	}
	return ev, nil
}

func writeEvent(w io.Writer, codec *Codec, o Outbound, threshold int) error {
	p, err := codec.Encode(o)
	if err != nil {
		return err
	}
	if err := WritePacket(w, p, threshold); err != nil {
		return &TransportError{Op: "write", Err: err}
	}
	return nil
}
