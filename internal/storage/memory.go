package storage

import (
	"sync"
	"time"

	"github.com/SIMBACM/BaseForWhatsappProj/internal/models"
)

// MemoryStore keeps completion records in memory (for testing and local
// development - not for production!)
type MemoryStore struct {
	mu      sync.RWMutex
	records []*models.CompletionRecord
	counter uint
}

// NewMemoryStore creates a new in-memory completion store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) SaveCompletion(record *models.CompletionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counter++
	record.ID = m.counter
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt

	m.records = append(m.records, record)
	return nil
}

func (m *MemoryStore) GetCompletions(limit int) ([]*models.CompletionRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Newest first
	var results []*models.CompletionRecord
	for i := len(m.records) - 1; i >= 0; i-- {
		if limit > 0 && len(results) >= limit {
			break
		}
		results = append(results, m.records[i])
	}
	return results, nil
}

func (m *MemoryStore) CountCompletions() (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return int64(len(m.records)), nil
}
