package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages a game socket carries
type MessageType string

const (
	// Client to server.
	MessageTypeSelect  MessageType = "select"
	MessageTypeReset   MessageType = "reset"
	MessageTypeNewGame MessageType = "newGame"
	MessageTypeSave    MessageType = "save"
	MessageTypeLoad    MessageType = "load"

	// Server to client.
	MessageTypeGameState MessageType = "gameState"
	MessageTypeNotice    MessageType = "notice"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// SelectPayload names the activated square. Both fields are required.
type SelectPayload struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

// SlotPayload names a save slot. An empty slot means the configured default.
type SlotPayload struct {
	Slot string `json:"slot"`
}

type TextPayload struct {
	Message string `json:"message"`
}

// NewTextMessage builds a notice or error message with a plain text body.
func NewTextMessage(t MessageType, text string) Message {
	payload, _ := json.Marshal(TextPayload{Message: text})
	return Message{Type: t, Payload: payload}
}
