package services

import (
	"fmt"
)

// Template keys for the replies the conversation flow can emit
const (
	TemplateGreeting         = "greeting"
	TemplateNeedText         = "need_text"
	TemplateNameReceived     = "name_received"
	TemplateFeedbackReceived = "feedback_received"
	TemplateNeedImage        = "need_image"
	TemplateCompleted        = "completed"
	TemplateSystemError      = "system_error"
)

// replyTemplates maps template keys to their message bodies
var replyTemplates = map[string]string{
	TemplateGreeting: "👋 Hi! Welcome to our feedback service.\n\n" +
		"To get started, please tell me your *name*.",
	TemplateNeedText: "✍️ Please reply with a text message to continue.",
	TemplateNameReceived: "Nice to meet you, %s! 🙌\n\n" +
		"Now tell me, what do you think about our service?",
	TemplateFeedbackReceived: "📝 Got it, your feedback is saved!\n\n" +
		"One last step: please send me a *profile photo*.",
	TemplateNeedImage: "📷 Please send a photo to finish up.",
	TemplateCompleted: "✅ All done, %s! Thank you for your feedback.\n\n" +
		"Send *hi* anytime to start over.",
	TemplateSystemError: "❌ Sorry, something went wrong. Please try again.",
}

// TemplateService renders the outbound reply messages
type TemplateService struct{}

// NewTemplateService creates a new template service
func NewTemplateService() *TemplateService {
	return &TemplateService{}
}

// Render produces the message body for a template key, applying the
// template's arguments.
func (t *TemplateService) Render(key string, args ...interface{}) (string, error) {
	body, exists := replyTemplates[key]
	if !exists {
		return "", fmt.Errorf("unknown template %q", key)
	}
	if len(args) == 0 {
		return body, nil
	}
	return fmt.Sprintf(body, args...), nil
}
