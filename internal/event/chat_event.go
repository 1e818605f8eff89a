package event

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

type SourceType int

const (
	SourcePlayer SourceType = iota
	SourceSystem
	SourceHotbar
)

// SourceFromPosition maps a chat position byte to its source.
func SourceFromPosition(position int8) SourceType {
	switch position {
	case 0:
		return SourcePlayer
	case 1:
		return SourceSystem
	case 2:
		return SourceHotbar
	}
	return SourceType(position)
}

func (st SourceType) String() string {
	switch st {
	case SourceSystem:
		return "System"
	case SourcePlayer:
		return "Player"
	case SourceHotbar:
		return "Hotbar"
	default:
		return "Unknown"
	}
}

// ChatEvent describes one inbound chat group and whether it was echoed back.
type ChatEvent struct {
	Sender    uuid.UUID
	Fragments []string
	Source    SourceType
	Relayed   bool
}

func ChatEventHandler(event any) {
	chatEvent, ok := event.(*ChatEvent)
	if !ok {
		slog.Error("Invalid event type for ChatEventHandler")
		return
	}
	slog.Info("Chat event",
		"sender", chatEvent.Sender.String(),
		"message", strings.Join(chatEvent.Fragments, ""),
		"source", chatEvent.Source.String(),
		"relayed", chatEvent.Relayed,
	)
}

func NewChatEvent(sender uuid.UUID, fragments []string, source SourceType, relayed bool) *ChatEvent {
	return &ChatEvent{
		Sender:    sender,
		Fragments: fragments,
		Source:    source,
		Relayed:   relayed,
	}
}
