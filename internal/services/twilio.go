package services

import (
	"fmt"
	"log"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// MessageSender delivers an outbound text message to a user. The
// conversation flow only selects what to send; delivery belongs here.
type MessageSender interface {
	SendText(to, body string) error
}

// TwilioService sends WhatsApp messages through the Twilio API
type TwilioService struct {
	client *twilio.RestClient
	from   string // Your Twilio WhatsApp number, e.g. "whatsapp:+14155238886"
}

// NewTwilioService creates a new Twilio service instance
func NewTwilioService(accountSID, authToken, whatsappFrom string) (*TwilioService, error) {
	if accountSID == "" || authToken == "" || whatsappFrom == "" {
		return nil, fmt.Errorf("missing Twilio credentials in environment variables")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioService{
		client: client,
		from:   whatsappFrom,
	}, nil
}

// SendText sends a WhatsApp message via Twilio
func (t *TwilioService) SendText(to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(fmt.Sprintf("whatsapp:%s", to))
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("❌ Failed to send WhatsApp message: %v", err)
		return err
	}

	log.Printf("✅ WhatsApp message sent! SID: %s", *resp.Sid)
	return nil
}

// LogSender is the development fallback used when Twilio is not
// configured. Messages are logged instead of delivered.
type LogSender struct{}

// NewLogSender creates a sender that only logs outbound messages
func NewLogSender() *LogSender {
	return &LogSender{}
}

func (l *LogSender) SendText(to, body string) error {
	log.Printf("📤 Response to %s (not sent - Twilio not configured): %s", to, body)
	return nil
}
