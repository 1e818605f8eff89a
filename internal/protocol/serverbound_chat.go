package protocol

import "io"

// Chat modes of ClientSettings.
const (
	ChatModeEnabled      int32 = 0
	ChatModeCommandsOnly int32 = 1
	ChatModeHidden       int32 = 2
)

// BootstrapClientSettings is what the session sends after joining.
func BootstrapClientSettings() ClientSettings {
	return ClientSettings{
		Locale:       "en_GB",
		ViewDistance: 2,
		ChatMode:     ChatModeEnabled,
	}
}

func (c *Codec) writeClientSettings(w io.Writer, o ClientSettings) error {
	if err := WriteString(w, o.Locale); err != nil {
		return err
	}
	if err := WriteByte(w, byte(o.ViewDistance)); err != nil {
		return err
	}
	if c.version >= Version1_9 {
		if err := WriteVarint(w, o.ChatMode); err != nil {
			return err
		}
	} else if err := WriteByte(w, byte(o.ChatMode)); err != nil {
		return err
	}
	if err := WriteBool(w, o.ChatColors); err != nil {
		return err
	}
	if c.version < Version1_8 {
		// difficulty, then show cape
		if err := WriteByte(w, 2); err != nil {
			return err
		}
		return WriteBool(w, o.DisplayedSkinParts&0x01 != 0)
	}
	if err := WriteByte(w, o.DisplayedSkinParts); err != nil {
		return err
	}
	if c.version < Version1_9 {
		return nil
	}
	return WriteVarint(w, o.MainHand)
}

func (c *Codec) writeClientStatus(w io.Writer, o ClientStatus) error {
	if c.version < Version1_8 {
		return WriteByte(w, byte(o.Action))
	}
	return WriteVarint(w, o.Action)
}
