package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vmelnikov/kinosovetnik/internal/catalog"
	"github.com/vmelnikov/kinosovetnik/internal/chatcontext"
)

// MessageType identifies websocket payload variants.
type MessageType string

const (
	TypeUserMessage MessageType = "user_message"
	TypeSetMood     MessageType = "set_mood"

	TypeAssistantMessage MessageType = "assistant_message"
	TypeRecommendations  MessageType = "recommendations"
	TypeContextUpdate    MessageType = "context_update"
	TypeBusy             MessageType = "busy"
	TypeErrorEvent       MessageType = "error_event"
)

var ErrUnsupportedType = errors.New("unsupported message type")

type Envelope struct {
	Type MessageType `json:"type"`
}

// UserMessage carries one chat submission. Text may be empty; the controller
// treats empty submissions as a silent no-op.
type UserMessage struct {
	Type MessageType `json:"type"`
	Text string      `json:"text"`
}

type SetMood struct {
	Type MessageType `json:"type"`
	Mood string      `json:"mood"`
}

type AssistantMessage struct {
	Type   MessageType `json:"type"`
	Text   string      `json:"text"`
	Sender string      `json:"sender"`
}

type Recommendations struct {
	Type  MessageType    `json:"type"`
	Items []catalog.Item `json:"items"`
}

type ContextUpdate struct {
	Type    MessageType          `json:"type"`
	Context chatcontext.Snapshot `json:"context"`
}

type Busy struct {
	Type MessageType `json:"type"`
	Busy bool        `json:"busy"`
}

type ErrorEvent struct {
	Type   MessageType `json:"type"`
	Code   string      `json:"code"`
	Detail string      `json:"detail,omitempty"`
}

func ParseClientMessage(raw []byte) (any, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("invalid envelope: %w", err)
	}

	switch env.Type {
	case TypeUserMessage:
		var msg UserMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		return msg, nil
	case TypeSetMood:
		var msg SetMood
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.Mood == "" {
			return nil, errors.New("invalid set_mood")
		}
		return msg, nil
	default:
		return nil, ErrUnsupportedType
	}
}
