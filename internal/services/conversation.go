package services

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/SIMBACM/BaseForWhatsappProj/internal/models"
)

// triggerPhrase restarts the flow from any step, discarding progress
const triggerPhrase = "hi"

// ConversationService interprets one inbound message per call and drives
// exactly one state transition (or a validation re-prompt) on the user's
// session.
type ConversationService struct {
	sessions  *SessionManager
	sender    MessageSender
	templates *TemplateService

	// pickup serializes turns per user since webhooks arrive concurrently
	lockMu sync.Mutex
	locks  map[string]*sync.Mutex

	statusEvents int64
}

// NewConversationService creates a new conversation service
func NewConversationService(sessions *SessionManager, sender MessageSender) *ConversationService {
	return &ConversationService{
		sessions:  sessions,
		sender:    sender,
		templates: NewTemplateService(),
		locks:     make(map[string]*sync.Mutex),
	}
}

// HandleMessage processes one inbound turn and delivers the reply. When
// processing fails the user gets the generic error notice (best effort)
// and the original failure propagates to the caller.
func (c *ConversationService) HandleMessage(msg *models.InboundMessage) error {
	reply, err := c.ProcessMessage(msg)
	if err != nil {
		c.notifySystemError(msg.From)
		return err
	}

	if err := c.sender.SendText(msg.From, reply); err != nil {
		return fmt.Errorf("failed to send reply to %s: %w", msg.From, err)
	}
	return nil
}

// ProcessMessage drives one state transition and returns the rendered
// reply without sending it.
func (c *ConversationService) ProcessMessage(msg *models.InboundMessage) (string, error) {
	lock := c.lockFor(msg.From)
	lock.Lock()
	defer lock.Unlock()

	log.Printf("📱 Processing %s message from %s", msg.Kind, msg.From)

	// The trigger phrase wins over step routing, even mid-flow
	if msg.Kind == models.MessageKindText && isTrigger(msg.Body) {
		c.sessions.Create(msg.From)
		return c.templates.Render(TemplateGreeting)
	}

	session := c.sessions.Get(msg.From)
	switch session.Step {
	case models.StepName:
		return c.handleNameStep(msg)
	case models.StepFeedback:
		return c.handleFeedbackStep(msg)
	case models.StepImage:
		return c.handleImageStep(msg)
	default:
		log.Printf("❌ Unexpected step %d for %s - resetting session", session.Step, msg.From)
		c.sessions.Reset(msg.From)
		return c.templates.Render(TemplateGreeting)
	}
}

// HandleStatus observes a delivery/read receipt. Receipts never change
// conversation state.
func (c *ConversationService) HandleStatus(event *models.StatusEvent) {
	atomic.AddInt64(&c.statusEvents, 1)
	log.Printf("📬 Message %s to %s is %s", event.MessageSID, event.RecipientPhone, event.Status)
}

// StatusEvents returns how many delivery receipts have been observed
func (c *ConversationService) StatusEvents() int64 {
	return atomic.LoadInt64(&c.statusEvents)
}

func (c *ConversationService) handleNameStep(msg *models.InboundMessage) (string, error) {
	name := strings.TrimSpace(msg.Body)
	if msg.Kind != models.MessageKindText || name == "" {
		return c.templates.Render(TemplateNeedText)
	}

	c.sessions.Update(msg.From, models.SessionUpdate{Name: &name})
	c.sessions.Advance(msg.From)

	return c.templates.Render(TemplateNameReceived, name)
}

func (c *ConversationService) handleFeedbackStep(msg *models.InboundMessage) (string, error) {
	feedback := strings.TrimSpace(msg.Body)
	if msg.Kind != models.MessageKindText || feedback == "" {
		return c.templates.Render(TemplateNeedText)
	}

	c.sessions.Update(msg.From, models.SessionUpdate{Feedback: &feedback})
	c.sessions.Advance(msg.From)

	return c.templates.Render(TemplateFeedbackReceived)
}

func (c *ConversationService) handleImageStep(msg *models.InboundMessage) (string, error) {
	if msg.Kind != models.MessageKindImage || msg.ImageRef == "" {
		return c.templates.Render(TemplateNeedImage)
	}

	c.sessions.Update(msg.From, models.SessionUpdate{ProfileImageRef: &msg.ImageRef})
	completed := c.sessions.Complete(msg.From)
	if completed == nil {
		return "", fmt.Errorf("no session to complete for %s", msg.From)
	}

	return c.templates.Render(TemplateCompleted, completed.Name)
}

func (c *ConversationService) notifySystemError(to string) {
	body, err := c.templates.Render(TemplateSystemError)
	if err != nil {
		log.Printf("❌ Failed to render system error template: %v", err)
		return
	}
	if err := c.sender.SendText(to, body); err != nil {
		log.Printf("❌ Failed to notify %s about the error: %v", to, err)
	}
}

func (c *ConversationService) lockFor(userPhone string) *sync.Mutex {
	c.lockMu.Lock()
	defer c.lockMu.Unlock()

	lock, exists := c.locks[userPhone]
	if !exists {
		lock = &sync.Mutex{}
		c.locks[userPhone] = lock
	}
	return lock
}

func isTrigger(body string) bool {
	return strings.EqualFold(strings.TrimSpace(body), triggerPhrase)
}
