package event

import (
	"testing"

	"github.com/google/uuid"
)

// TestSourceTypeString 测试 SourceType 的字符串表示
func TestSourceTypeString(t *testing.T) {
	tests := []struct {
		name     string
		source   SourceType
		expected string
	}{
		{"Player", SourcePlayer, "Player"},
		{"System", SourceSystem, "System"},
		{"Hotbar", SourceHotbar, "Hotbar"},
		{"Unknown", SourceType(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.source.String()
			if got != tt.expected {
				t.Errorf("SourceType(%d).String() = %q, 期望 %q", tt.source, got, tt.expected)
			}
		})
	}
}

// TestSourceFromPosition 测试聊天位置到来源的映射
func TestSourceFromPosition(t *testing.T) {
	tests := []struct {
		position int8
		expected SourceType
	}{
		{0, SourcePlayer},
		{1, SourceSystem},
		{2, SourceHotbar},
		{7, SourceType(7)},
	}
	for _, tt := range tests {
		if got := SourceFromPosition(tt.position); got != tt.expected {
			t.Errorf("SourceFromPosition(%d) = %v, 期望 %v", tt.position, got, tt.expected)
		}
	}
}

// TestNewChatEvent 测试创建聊天事件
func TestNewChatEvent(t *testing.T) {
	sender := uuid.UUID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x10}
	event := NewChatEvent(sender, []string{"hello", "world"}, SourcePlayer, true)

	if event == nil {
		t.Fatal("NewChatEvent() 返回 nil")
	}
	if event.Sender != sender {
		t.Errorf("Sender = %v, 期望 %v", event.Sender, sender)
	}
	if len(event.Fragments) != 2 || event.Fragments[1] != "world" {
		t.Errorf("Fragments = %q", event.Fragments)
	}
	if event.Source != SourcePlayer || !event.Relayed {
		t.Errorf("Source/Relayed = %v/%v", event.Source, event.Relayed)
	}
}

// TestChatEventHandlerIgnoresOtherTypes 测试处理器忽略错误类型
func TestChatEventHandlerIgnoresOtherTypes(t *testing.T) {
	ChatEventHandler("not a chat event")
	ChatEventHandler(NewChatEvent(uuid.Nil, nil, SourceSystem, false))
}
