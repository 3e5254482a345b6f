package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SIMBACM/BaseForWhatsappProj/internal/models"
	"github.com/SIMBACM/BaseForWhatsappProj/internal/storage"
)

// fakeSender records outbound messages for assertions
type fakeSender struct {
	sent []sentMessage
	fail bool
}

type sentMessage struct {
	to   string
	body string
}

func (f *fakeSender) SendText(to, body string) error {
	if f.fail {
		return fmt.Errorf("twilio unavailable")
	}
	f.sent = append(f.sent, sentMessage{to: to, body: body})
	return nil
}

func (f *fakeSender) last() sentMessage {
	return f.sent[len(f.sent)-1]
}

func newTestConversation(t *testing.T) (*ConversationService, *SessionManager, *storage.MemoryStore, *fakeSender) {
	t.Helper()
	store := storage.NewMemoryStore()
	sm := NewSessionManager(store, 12*time.Hour)
	sender := &fakeSender{}
	return NewConversationService(sm, sender), sm, store, sender
}

func text(from, body string) *models.InboundMessage {
	return &models.InboundMessage{From: from, Kind: models.MessageKindText, Body: body}
}

func image(from, ref string) *models.InboundMessage {
	return &models.InboundMessage{From: from, Kind: models.MessageKindImage, ImageRef: ref}
}

func TestFullFeedbackFlow(t *testing.T) {
	conv, sm, store, sender := newTestConversation(t)
	const user = "+15550001"

	t.Run("hi starts the flow", func(t *testing.T) {
		require.NoError(t, conv.HandleMessage(text(user, "hi")))
		assert.Contains(t, sender.last().body, "name")
		assert.Equal(t, models.StepName, sm.Get(user).Step)
	})

	t.Run("name advances to feedback", func(t *testing.T) {
		require.NoError(t, conv.HandleMessage(text(user, "Alice")))
		assert.Contains(t, sender.last().body, "Alice")
		assert.Equal(t, models.StepFeedback, sm.Get(user).Step)
	})

	t.Run("feedback advances to image", func(t *testing.T) {
		require.NoError(t, conv.HandleMessage(text(user, "Great service")))
		assert.Contains(t, sender.last().body, "photo")
		assert.Equal(t, models.StepImage, sm.Get(user).Step)
	})

	t.Run("image completes and removes the session", func(t *testing.T) {
		require.NoError(t, conv.HandleMessage(image(user, "img-42")))
		assert.Contains(t, sender.last().body, "Alice")

		records, err := store.GetCompletions(0)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Alice", records[0].Name)
		assert.Equal(t, "Great service", records[0].Feedback)
		assert.Equal(t, "img-42", records[0].ProfileImageRef)

		// Get now yields a brand-new session, and the image step above
		// was the only completion
		fresh := sm.Get(user)
		assert.Equal(t, models.StepName, fresh.Step)
		assert.Empty(t, fresh.Name)
	})
}

func TestWrongKindReprompts(t *testing.T) {
	conv, sm, _, sender := newTestConversation(t)
	const user = "+15550001"

	t.Run("image at name step", func(t *testing.T) {
		require.NoError(t, conv.HandleMessage(image(user, "img-1")))
		assert.Contains(t, sender.last().body, "text message")
		assert.Equal(t, models.StepName, sm.Get(user).Step)
	})

	t.Run("text at image step", func(t *testing.T) {
		require.NoError(t, conv.HandleMessage(text(user, "Alice")))
		require.NoError(t, conv.HandleMessage(text(user, "Great service")))
		require.NoError(t, conv.HandleMessage(text(user, "here you go")))
		assert.Contains(t, sender.last().body, "photo")
		assert.Equal(t, models.StepImage, sm.Get(user).Step)
	})

	t.Run("non-image media at image step", func(t *testing.T) {
		require.NoError(t, conv.HandleMessage(&models.InboundMessage{
			From: user,
			Kind: models.MessageKindOther,
		}))
		assert.Equal(t, models.StepImage, sm.Get(user).Step)
	})
}

func TestTriggerPhraseResetsMidFlow(t *testing.T) {
	conv, sm, _, sender := newTestConversation(t)
	const user = "+15550001"

	require.NoError(t, conv.HandleMessage(text(user, "Alice")))
	require.NoError(t, conv.HandleMessage(text(user, "Great service")))
	require.Equal(t, models.StepImage, sm.Get(user).Step)

	require.NoError(t, conv.HandleMessage(text(user, "  Hi  ")))

	got := sm.Get(user)
	assert.Equal(t, models.StepName, got.Step)
	assert.Empty(t, got.Name, "partial progress is discarded")
	assert.Contains(t, sender.last().body, "Welcome")
}

func TestExpiredSessionTreatedAsNewUser(t *testing.T) {
	conv, sm, _, _ := newTestConversation(t)
	const user = "+15550001"

	require.NoError(t, conv.HandleMessage(text(user, "Alice")))
	require.Equal(t, models.StepFeedback, sm.Get(user).Step)

	age(sm, user, 13*time.Hour)

	// This message lands on a reset session, so it is taken as the name
	require.NoError(t, conv.HandleMessage(text(user, "Bob")))
	got := sm.Get(user)
	assert.Equal(t, models.StepFeedback, got.Step)
	assert.Equal(t, "Bob", got.Name)
	assert.Empty(t, got.Feedback)
}

func TestUnknownStepForcesReset(t *testing.T) {
	conv, sm, _, sender := newTestConversation(t)
	const user = "+15550001"

	bogus := models.Step(9)
	sm.Create(user)
	sm.Update(user, models.SessionUpdate{Step: &bogus})

	require.NoError(t, conv.HandleMessage(text(user, "anything")))
	assert.Equal(t, models.StepName, sm.Get(user).Step)
	assert.Contains(t, sender.last().body, "Welcome")
}

func TestStatusEventsChangeNoState(t *testing.T) {
	conv, sm, _, _ := newTestConversation(t)
	const user = "+15550001"

	require.NoError(t, conv.HandleMessage(text(user, "Alice")))
	before := sm.Get(user)

	conv.HandleStatus(&models.StatusEvent{
		MessageSID:     "SM123",
		RecipientPhone: user,
		Status:         "delivered",
	})

	after := sm.Get(user)
	assert.Equal(t, before.Step, after.Step)
	assert.Equal(t, before.Name, after.Name)
	assert.Equal(t, int64(1), conv.StatusEvents())
}

func TestSendFailurePropagates(t *testing.T) {
	_, sm, _, _ := newTestConversation(t)
	sender := &fakeSender{fail: true}
	conv := NewConversationService(sm, sender)

	err := conv.HandleMessage(text("+15550001", "Alice"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "twilio unavailable")
}
