package event

import "github.com/google/uuid"

const (
	EventLogin      = "session.login"
	EventChatRelay  = "chat.relay"
	EventDisconnect = "session.disconnect"
)

// LoginEvent is published once the session reaches Play.
type LoginEvent struct {
	Username  string
	UUID      uuid.UUID
	Version   int32
	Encrypted bool
	Threshold int
	Mods      int
}

// DisconnectEvent carries the reason a server gave when it kicked the bot.
type DisconnectEvent struct {
	Reason string
}
