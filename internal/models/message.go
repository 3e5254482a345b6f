package models

// MessageKind classifies an inbound WhatsApp message for step routing.
type MessageKind string

const (
	MessageKindText  MessageKind = "text"
	MessageKindImage MessageKind = "image"
	MessageKindOther MessageKind = "other"
)

// InboundMessage is one normalized inbound user turn. Body is set for text
// messages, ImageRef for image messages.
type InboundMessage struct {
	From     string      `json:"from"`
	Kind     MessageKind `json:"kind"`
	Body     string      `json:"body"`
	ImageRef string      `json:"image_ref"`
}

// StatusEvent is a delivery/read receipt for a previously sent message.
// It never changes conversation state.
type StatusEvent struct {
	MessageSID     string `json:"message_sid"`
	RecipientPhone string `json:"recipient_phone"`
	Status         string `json:"status"`
	Timestamp      string `json:"timestamp"`
}
