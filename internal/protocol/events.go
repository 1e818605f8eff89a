package protocol

import (
	"github.com/Tnze/go-mc/chat"
	"github.com/google/uuid"
)

// Inbound is a canonical server-to-client event. Every wire variant of a
// packet decodes to the same Inbound type; handlers never see variants.
type Inbound interface {
	inbound()
}

// Status

type StatusResponse struct {
	Version       int32
	VersionName   string
	Description   string
	TunnelVersion int // 0 when the server announces no mod loader
	Mods          []ModInfo
}

type ModInfo struct {
	ID      string
	Version string
}

type Pong struct {
	Payload int64
}

// Login

type LoginDisconnect struct {
	Reason string
}

type EncryptionRequest struct {
	ServerID    string
	PublicKey   []byte
	VerifyToken []byte
}

type LoginSuccess struct {
	UUID     uuid.UUID
	Username string
}

type SetCompression struct {
	Threshold int32
}

type LoginPluginRequest struct {
	MessageID int32
	Channel   string
	Data      []byte
}

// Play

type KeepAlive struct {
	ID int64
}

type JoinGame struct {
	EntityID int32
	Gamemode uint8
	Hardcore bool
}

type ServerMessage struct {
	Message  chat.Message
	Position int8
	Sender   uuid.UUID // uuid.Nil before 1.16
}

type TeleportPlayer struct {
	X, Y, Z    float64
	Yaw, Pitch float32
	Flags      byte
	TeleportID int32
}

type PlayDisconnect struct {
	Reason string
}

// Unknown is any packet without a decoder in the current state.
type Unknown struct {
	State State
	ID    int32
	Data  []byte
}

func (StatusResponse) inbound()     {}
func (Pong) inbound()               {}
func (LoginDisconnect) inbound()    {}
func (EncryptionRequest) inbound()  {}
func (LoginSuccess) inbound()       {}
func (SetCompression) inbound()     {}
func (LoginPluginRequest) inbound() {}
func (KeepAlive) inbound()          {}
func (JoinGame) inbound()           {}
func (ServerMessage) inbound()      {}
func (TeleportPlayer) inbound()     {}
func (PlayDisconnect) inbound()     {}
func (Unknown) inbound()            {}

// Outbound is a client-to-server event.
type Outbound interface {
	outbound()
}

type Handshake struct {
	ProtocolVersion int32
	Host            string
	Port            uint16
	NextState       int32
}

type StatusRequest struct{}

type Ping struct {
	Payload int64
}

type LoginStart struct {
	Username string
}

// EncryptionResponse is the VarInt length-prefixed form used from 1.8 on.
type EncryptionResponse struct {
	SharedSecret []byte
	VerifyToken  []byte
}

// EncryptionResponseLegacy is the int16 length-prefixed form used before 1.8.
type EncryptionResponseLegacy struct {
	SharedSecret []byte
	VerifyToken  []byte
}

type LoginPluginResponse struct {
	MessageID  int32
	Successful bool
	Data       []byte
}

type ChatMessage struct {
	Message string
}

type KeepAliveReply struct {
	ID int64
}

type ClientSettings struct {
	Locale             string
	ViewDistance       int8
	ChatMode           int32
	ChatColors         bool
	DisplayedSkinParts uint8
	MainHand           int32
}

type ClientStatus struct {
	Action int32
}

// ClientStatus actions.
const (
	ActionPerformRespawn int32 = 0
	ActionRequestStats   int32 = 1
)

type TeleportConfirm struct {
	TeleportID int32
}

func (Handshake) outbound()                {}
func (StatusRequest) outbound()            {}
func (Ping) outbound()                     {}
func (LoginStart) outbound()               {}
func (EncryptionResponse) outbound()       {}
func (EncryptionResponseLegacy) outbound() {}
func (LoginPluginResponse) outbound()      {}
func (ChatMessage) outbound()              {}
func (KeepAliveReply) outbound()           {}
func (ClientSettings) outbound()           {}
func (ClientStatus) outbound()             {}
func (TeleportConfirm) outbound()          {}
