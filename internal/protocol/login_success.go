package protocol

import "io"

// readLoginSuccess normalizes the textual UUID (before 1.16) and the binary
// UUID (1.16+) into one uuid.UUID.
func (c *Codec) readLoginSuccess(r io.Reader) (Inbound, error) {
	var out LoginSuccess
	if c.version >= Version1_16 {
		id, err := ReadUUID(r)
		if err != nil {
			return nil, err
		}
		out.UUID = id
	} else {
		text, err := ReadString(r)
		if err != nil {
			return nil, err
		}
		id, err := ParseUUID(text)
		if err != nil {
			return nil, err
		}
		out.UUID = id
	}
	username, err := ReadString(r)
	if err != nil {
		return nil, err
	}
	out.Username = username
	return out, nil
}
