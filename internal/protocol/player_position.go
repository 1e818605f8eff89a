package protocol

import "io"

// Relative-coordinate bits of TeleportPlayer.Flags.
const (
	RelX     = 0x01
	RelY     = 0x02
	RelZ     = 0x04
	RelYaw   = 0x08
	RelPitch = 0x10
)

// readTeleportPlayer decodes the 1.9+ player position packet. Older versions
// carry no teleport id and have no decoder for it.
func readTeleportPlayer(r io.Reader) (Inbound, error) {
	var tp TeleportPlayer
	var err error
	if tp.X, err = ReadDouble(r); err != nil {
		return nil, err
	}
	if tp.Y, err = ReadDouble(r); err != nil {
		return nil, err
	}
	if tp.Z, err = ReadDouble(r); err != nil {
		return nil, err
	}
	if tp.Yaw, err = ReadFloat(r); err != nil {
		return nil, err
	}
	if tp.Pitch, err = ReadFloat(r); err != nil {
		return nil, err
	}
	if tp.Flags, err = ReadByte(r); err != nil {
		return nil, err
	}
	if tp.TeleportID, err = ReadVarint(r); err != nil {
		return nil, err
	}
	return tp, nil
}

// IsRelative reports whether the axis bit in mask is relative.
func (tp TeleportPlayer) IsRelative(mask byte) bool {
	return tp.Flags&mask != 0
}
