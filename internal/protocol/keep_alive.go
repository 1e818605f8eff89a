package protocol

import "io"

// KeepAlive ids are int32 in 1.7, VarInt in 1.8 to 1.12.1 and int64 after.

func (c *Codec) readKeepAlive(r io.Reader) (Inbound, error) {
	switch {
	case c.version < Version1_8:
		id, err := ReadInt32(r)
		return KeepAlive{ID: int64(id)}, err
	case c.version < keepAliveLongVersion:
		id, err := ReadVarint(r)
		return KeepAlive{ID: int64(id)}, err
	default:
		id, err := ReadInt64(r)
		return KeepAlive{ID: id}, err
	}
}

func (c *Codec) writeKeepAlive(w io.Writer, id int64) error {
	switch {
	case c.version < Version1_8:
		return WriteInt32(w, int32(id))
	case c.version < keepAliveLongVersion:
		return WriteVarint(w, int32(id))
	default:
		return WriteInt64(w, id)
	}
}
