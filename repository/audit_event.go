package repository

import (
	"github.com/nitchakan-dev/filevault/entity"
	"gorm.io/gorm"
)

type AuditEventRepository struct {
	db *gorm.DB
}

func NewAuditEventRepository(db *gorm.DB) *AuditEventRepository {
	return &AuditEventRepository{db: db}
}

func (r *AuditEventRepository) Create(event *entity.AuditEvent) error {
	return r.db.Create(event).Error
}

func (r *AuditEventRepository) FindRecent(limit int) ([]entity.AuditEvent, error) {
	var events []entity.AuditEvent
	err := r.db.Order("created_at DESC").Limit(limit).Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
