package protocol

import (
	"bytes"
	"fmt"
	"io"
)

// Forge login tunnel channels.
const (
	ChannelLoginWrapper = "fml:loginwrapper"
	ChannelHandshake    = "fml:handshake"
)

// FML2 handshake packet ids.
const (
	FMLModList           int32 = 1
	FMLModListReply      int32 = 2
	FMLServerRegistry    int32 = 3
	FMLConfigurationData int32 = 4
	FMLAcknowledgement   int32 = 99
)

// FMLMessage is one packet of the fml:handshake sub-protocol.
type FMLMessage interface {
	FMLID() int32
}

type FMLChannel struct {
	Name    string
	Version string
}

type FMLRegistry struct {
	Name   string
	Marker string
}

type ModList struct {
	Mods       []string
	Channels   []FMLChannel
	Registries []string
}

type ModListReply struct {
	Mods       []string
	Channels   []FMLChannel
	Registries []FMLRegistry
}

type ServerRegistry struct {
	Name        string
	HasSnapshot bool
	Snapshot    []byte
}

type ConfigurationData struct {
	FileName string
	Contents []byte
}

type Acknowledgement struct{}

func (ModList) FMLID() int32           { return FMLModList }
func (ModListReply) FMLID() int32      { return FMLModListReply }
func (ServerRegistry) FMLID() int32    { return FMLServerRegistry }
func (ConfigurationData) FMLID() int32 { return FMLConfigurationData }
func (Acknowledgement) FMLID() int32   { return FMLAcknowledgement }

// ReadLoginWrapper splits a fml:loginwrapper payload into its inner channel
// and the framed inner packet. The inner frame honours the connection's
// compression threshold.
func ReadLoginWrapper(data []byte, threshold int) (string, *Packet, error) {
	r := bytes.NewReader(data)
	channel, err := ReadString(r)
	if err != nil {
		return "", nil, fmt.Errorf("read inner channel: %w", err)
	}
	inner, err := ReadPacket(r, threshold)
	if err != nil {
		return "", nil, fmt.Errorf("read inner packet: %w", err)
	}
	return channel, inner, nil
}

// WriteLoginWrapper builds a fml:loginwrapper payload.
func WriteLoginWrapper(channel string, inner *Packet, threshold int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := WriteString(buf, channel); err != nil {
		return nil, err
	}
	if err := WritePacket(buf, inner, threshold); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeFMLHandshake decodes an inner fml:handshake packet. Unknown ids
// wrap ErrNotImplemented.
func DecodeFMLHandshake(p *Packet) (FMLMessage, error) {
	r := bytes.NewReader(p.Payload)
	var (
		msg FMLMessage
		err error
	)
	switch p.ID {
	case FMLModList:
		msg, err = readModList(r)
	case FMLModListReply:
		msg, err = readModListReply(r)
	case FMLServerRegistry:
		msg, err = readServerRegistry(r)
	case FMLConfigurationData:
		msg, err = readConfigurationData(r)
	case FMLAcknowledgement:
		msg = Acknowledgement{}
	default:
		return nil, fmt.Errorf("fml handshake packet %d: %w", p.ID, ErrNotImplemented)
	}
	if err != nil {
		return nil, fmt.Errorf("decode fml handshake packet %d: %w", p.ID, err)
	}
	return msg, nil
}

// EncodeFMLHandshake serializes m into an inner packet.
func EncodeFMLHandshake(m FMLMessage) (*Packet, error) {
	buf := new(bytes.Buffer)
	var err error
	switch m := m.(type) {
	case ModList:
		err = writeModList(buf, m)
	case ModListReply:
		err = writeModListReply(buf, m)
	case ServerRegistry:
		err = writeServerRegistry(buf, m)
	case ConfigurationData:
		if err = WriteString(buf, m.FileName); err == nil {
			err = WriteByteArray(buf, m.Contents)
		}
	case Acknowledgement:
	default:
		return nil, fmt.Errorf("encode fml handshake %T: %w", m, ErrNotImplemented)
	}
	if err != nil {
		return nil, err
	}
	return &Packet{ID: m.FMLID(), Payload: buf.Bytes()}, nil
}

func readStrings(r io.Reader) ([]string, error) {
	n, err := readCount(r)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		s, err := ReadString(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func writeStrings(w io.Writer, list []string) error {
	if err := WriteVarint(w, int32(len(list))); err != nil {
		return err
	}
	for _, s := range list {
		if err := WriteString(w, s); err != nil {
			return err
		}
	}
	return nil
}

// readPairs reads a VarInt-counted list of string pairs.
func readPairs(r io.Reader) ([][2]string, error) {
	n, err := readCount(r)
	if err != nil {
		return nil, err
	}
	out := make([][2]string, 0, n)
	for i := 0; i < n; i++ {
		a, err := ReadString(r)
		if err != nil {
			return nil, err
		}
		b, err := ReadString(r)
		if err != nil {
			return nil, err
		}
		out = append(out, [2]string{a, b})
	}
	return out, nil
}

func writePairs(w io.Writer, pairs [][2]string) error {
	if err := WriteVarint(w, int32(len(pairs))); err != nil {
		return err
	}
	for _, p := range pairs {
		if err := WriteString(w, p[0]); err != nil {
			return err
		}
		if err := WriteString(w, p[1]); err != nil {
			return err
		}
	}
	return nil
}

// readCount reads a list length and rejects values a payload cannot hold.
// readCount reads a list length. Every element takes at least one byte, so a
// length above the unread payload is rejected before anything is allocated.
func readCount(r io.Reader) (int, error) {
	n, err := ReadVarint(r)
	if err != nil {
		return 0, err
	}
	limit := MaxPacketSize
	if l, ok := r.(interface{ Len() int }); ok {
		limit = l.Len()
	}
	if n < 0 || int(n) > limit {
		return 0, fmt.Errorf("list length %d: %w", n, ErrInvalidPacket)
	}
	return int(n), nil
}

func readChannels(r io.Reader) ([]FMLChannel, error) {
	pairs, err := readPairs(r)
	if err != nil {
		return nil, err
	}
	out := make([]FMLChannel, len(pairs))
	for i, p := range pairs {
		out[i] = FMLChannel{Name: p[0], Version: p[1]}
	}
	return out, nil
}

func writeChannels(w io.Writer, channels []FMLChannel) error {
	pairs := make([][2]string, len(channels))
	for i, c := range channels {
		pairs[i] = [2]string{c.Name, c.Version}
	}
	return writePairs(w, pairs)
}

func readModList(r io.Reader) (ModList, error) {
	var m ModList
	var err error
	if m.Mods, err = readStrings(r); err != nil {
		return m, err
	}
	if m.Channels, err = readChannels(r); err != nil {
		return m, err
	}
	m.Registries, err = readStrings(r)
	return m, err
}

func writeModList(w io.Writer, m ModList) error {
	if err := writeStrings(w, m.Mods); err != nil {
		return err
	}
	if err := writeChannels(w, m.Channels); err != nil {
		return err
	}
	return writeStrings(w, m.Registries)
}

func readModListReply(r io.Reader) (ModListReply, error) {
	var m ModListReply
	var err error
	if m.Mods, err = readStrings(r); err != nil {
		return m, err
	}
	if m.Channels, err = readChannels(r); err != nil {
		return m, err
	}
	pairs, err := readPairs(r)
	if err != nil {
		return m, err
	}
	for _, p := range pairs {
		m.Registries = append(m.Registries, FMLRegistry{Name: p[0], Marker: p[1]})
	}
	return m, nil
}

func writeModListReply(w io.Writer, m ModListReply) error {
	if err := writeStrings(w, m.Mods); err != nil {
		return err
	}
	if err := writeChannels(w, m.Channels); err != nil {
		return err
	}
	pairs := make([][2]string, len(m.Registries))
	for i, reg := range m.Registries {
		pairs[i] = [2]string{reg.Name, reg.Marker}
	}
	return writePairs(w, pairs)
}

func readServerRegistry(r *bytes.Reader) (ServerRegistry, error) {
	var m ServerRegistry
	var err error
	if m.Name, err = ReadString(r); err != nil {
		return m, err
	}
	if m.HasSnapshot, err = ReadBool(r); err != nil {
		return m, err
	}
	if m.HasSnapshot {
		m.Snapshot, err = io.ReadAll(r)
	}
	return m, err
}

func writeServerRegistry(w io.Writer, m ServerRegistry) error {
	if err := WriteString(w, m.Name); err != nil {
		return err
	}
	if err := WriteBool(w, m.HasSnapshot); err != nil {
		return err
	}
	if !m.HasSnapshot {
		return nil
	}
	_, err := w.Write(m.Snapshot)
	return err
}

func readConfigurationData(r io.Reader) (ConfigurationData, error) {
	var m ConfigurationData
	var err error
	if m.FileName, err = ReadString(r); err != nil {
		return m, err
	}
	m.Contents, err = ReadByteArray(r)
	return m, err
}

// ReplyTo returns the handshake reply for msg, echoing a ModList back as the
// client's ModListReply. ok is false for kinds the client never answers.
func ReplyTo(msg FMLMessage) (reply FMLMessage, ok bool) {
	switch m := msg.(type) {
	case ModList:
		regs := make([]FMLRegistry, len(m.Registries))
		for i, name := range m.Registries {
			regs[i] = FMLRegistry{Name: name}
		}
		return ModListReply{Mods: m.Mods, Channels: m.Channels, Registries: regs}, true
	case ServerRegistry, ConfigurationData:
		return Acknowledgement{}, true
	}
	return nil, false
}
