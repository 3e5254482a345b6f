package storage

import (
	"gorm.io/gorm"

	"github.com/SIMBACM/BaseForWhatsappProj/internal/models"
)

// DatabaseStore persists completion records in PostgreSQL via GORM
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a new database-backed completion store
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func (d *DatabaseStore) SaveCompletion(record *models.CompletionRecord) error {
	return d.db.Create(record).Error
}

func (d *DatabaseStore) GetCompletions(limit int) ([]*models.CompletionRecord, error) {
	var records []*models.CompletionRecord
	query := d.db.Order("completed_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (d *DatabaseStore) CountCompletions() (int64, error) {
	var count int64
	err := d.db.Model(&models.CompletionRecord{}).Count(&count).Error
	return count, err
}
