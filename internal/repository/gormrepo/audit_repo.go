package gormrepo

import (
	"context"

	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain"
	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create always writes against the base connection: audit rows are not
// rolled back together with the business transaction they describe.
func (r *AuditRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
