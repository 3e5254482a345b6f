package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/SIMBACM/BaseForWhatsappProj/internal/models"
	"github.com/SIMBACM/BaseForWhatsappProj/internal/services"
)

// WhatsAppHandler handles WhatsApp webhook requests
type WhatsAppHandler struct {
	conversation *services.ConversationService
}

// NewWhatsAppHandler creates a new WhatsApp handler
func NewWhatsAppHandler(conversation *services.ConversationService) *WhatsAppHandler {
	return &WhatsAppHandler{
		conversation: conversation,
	}
}

// TwilioWebhookPayload represents an incoming WhatsApp event from Twilio.
// Inbound messages carry From/Body/media fields; delivery receipts carry
// MessageStatus instead.
type TwilioWebhookPayload struct {
	MessageSid        string `form:"MessageSid"`
	AccountSid        string `form:"AccountSid"`
	From              string `form:"From"` // WhatsApp number (whatsapp:+919876543210)
	To                string `form:"To"`   // Your Twilio number
	Body              string `form:"Body"` // Message text
	NumMedia          string `form:"NumMedia"`
	MediaUrl0         string `form:"MediaUrl0"`
	MediaContentType0 string `form:"MediaContentType0"`
	MessageStatus     string `form:"MessageStatus"`
}

// HandleWebhook processes incoming WhatsApp messages and status callbacks
func (h *WhatsAppHandler) HandleWebhook(c *fiber.Ctx) error {
	var payload TwilioWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing webhook: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook payload",
		})
	}

	// Delivery/read receipts are observed only, never routed to the flow
	if event, ok := payload.statusEvent(); ok {
		h.conversation.HandleStatus(event)
		return c.SendStatus(fiber.StatusOK)
	}

	msg, ok := payload.inboundMessage()
	if !ok {
		// Unrecognized payload shape - acknowledge and move on
		log.Printf("Ignoring unrecognized webhook payload (sid %s)", payload.MessageSid)
		return c.SendStatus(fiber.StatusOK)
	}

	log.Printf("📱 WhatsApp %s message from %s", msg.Kind, msg.From)

	if err := h.conversation.HandleMessage(msg); err != nil {
		// Surface the failure so Twilio retries the webhook
		log.Printf("Error processing message from %s: %v", msg.From, err)
		return err
	}

	return c.SendStatus(fiber.StatusOK)
}

// statusEvent extracts a delivery receipt, if this payload is one
func (p *TwilioWebhookPayload) statusEvent() (*models.StatusEvent, bool) {
	if p.MessageStatus == "" || p.MessageStatus == "received" {
		return nil, false
	}
	return &models.StatusEvent{
		MessageSID:     p.MessageSid,
		RecipientPhone: stripWhatsAppPrefix(p.To),
		Status:         p.MessageStatus,
	}, true
}

// inboundMessage normalizes the payload into one user turn
func (p *TwilioWebhookPayload) inboundMessage() (*models.InboundMessage, bool) {
	from := stripWhatsAppPrefix(p.From)
	if from == "" {
		return nil, false
	}

	hasMedia := p.NumMedia != "" && p.NumMedia != "0"
	switch {
	case hasMedia && strings.HasPrefix(p.MediaContentType0, "image/"):
		ref := p.MediaUrl0
		if ref == "" {
			ref = p.MessageSid
		}
		return &models.InboundMessage{
			From:     from,
			Kind:     models.MessageKindImage,
			ImageRef: ref,
		}, true
	case hasMedia:
		return &models.InboundMessage{
			From: from,
			Kind: models.MessageKindOther,
		}, true
	case p.Body != "":
		return &models.InboundMessage{
			From: from,
			Kind: models.MessageKindText,
			Body: p.Body,
		}, true
	default:
		return nil, false
	}
}

func stripWhatsAppPrefix(number string) string {
	return strings.TrimPrefix(number, "whatsapp:")
}

// TestWebhookPayload is the JSON body of the development test endpoint
type TestWebhookPayload struct {
	From     string `json:"from"`
	Message  string `json:"message"`
	ImageRef string `json:"image_ref"`
}

// HandleTestWebhook feeds a message through the conversation flow and
// returns the reply without sending it (for development)
func (h *WhatsAppHandler) HandleTestWebhook(c *fiber.Ctx) error {
	var payload TestWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid test payload",
		})
	}

	msg := &models.InboundMessage{
		From: payload.From,
		Kind: models.MessageKindText,
		Body: payload.Message,
	}
	if payload.ImageRef != "" {
		msg.Kind = models.MessageKindImage
		msg.Body = ""
		msg.ImageRef = payload.ImageRef
	}

	log.Printf("🧪 Test webhook received from %s", payload.From)

	response, err := h.conversation.ProcessMessage(msg)
	if err != nil {
		log.Printf("Error processing test message: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"response": response,
	})
}
