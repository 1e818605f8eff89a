package protocol

import (
	"fmt"
	"io"
)

const hardcoreBit = 0x08

// readJoinGame reads the leading fields every version shares. Dimension and
// world data that follow are not needed by the session and are skipped.
func (c *Codec) readJoinGame(r io.Reader) (Inbound, error) {
	entityID, err := ReadInt32(r)
	if err != nil {
		return nil, fmt.Errorf("read entity id: %w", err)
	}
	out := JoinGame{EntityID: entityID}
	if c.version >= Version1_16_2 {
		if out.Hardcore, err = ReadBool(r); err != nil {
			return nil, fmt.Errorf("read hardcore: %w", err)
		}
		if out.Gamemode, err = ReadByte(r); err != nil {
			return nil, fmt.Errorf("read gamemode: %w", err)
		}
		return out, nil
	}
	gm, err := ReadByte(r)
	if err != nil {
		return nil, fmt.Errorf("read gamemode: %w", err)
	}
	out.Gamemode = gm &^ hardcoreBit
	out.Hardcore = gm&hardcoreBit != 0
	return out, nil
}
