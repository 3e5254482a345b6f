package storage

import (
	"github.com/SIMBACM/BaseForWhatsappProj/internal/models"
)

// CompletionStore is the durable sink for finished feedback submissions.
type CompletionStore interface {
	SaveCompletion(record *models.CompletionRecord) error
	GetCompletions(limit int) ([]*models.CompletionRecord, error)
	CountCompletions() (int64, error)
}
