package core

import (
	"encoding/json"

	"github.com/mkraev/huddle/internal/domain"
)

// Frame is a marshaled outbound message, ready for the transport.
type Frame []byte

// Sender is the transport endpoint of one connection. TrySend must never
// block; a full or closed endpoint returns an error and the frame is lost.
// Owned by the adapter; the adapter must Close() it.
type Sender interface {
	TrySend(Frame) error
}

// Event type strings on the wire.
const (
	EventWelcome    = "welcome"
	EventBye        = "bye"
	EventNewMessage = "new_message"
	EventRoomChange = "room_change"
)

// SignalKind is the relayed negotiation message kind. The payload body is
// opaque to the relay.
type SignalKind string

const (
	SignalOffer  SignalKind = "offer"
	SignalAnswer SignalKind = "answer"
	SignalICE    SignalKind = "ice"
)

func (k SignalKind) Valid() bool {
	switch k {
	case SignalOffer, SignalAnswer, SignalICE:
		return true
	}
	return false
}

type WelcomeEvent struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type ByeEvent struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type MessageEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Name    string `json:"name"`
}

type RoomChangeEvent struct {
	Type  string          `json:"type"`
	Rooms []domain.RoomID `json:"rooms"`
}

type SignalEvent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Delivery is one outbound event bound to its resolved targets. Targets are
// resolved while the index is locked; the send itself happens after the
// lock is released.
type Delivery struct {
	Targets []Sender
	Event   any
}

// RoomInfo is a read-only listing entry for the REST API.
type RoomInfo struct {
	ID    domain.RoomID `json:"id"`
	Count int           `json:"count"`
}
