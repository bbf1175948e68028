package billing

import (
	"time"

	"github.com/google/uuid"
)

// Bill is created exactly once per consultation, atomically with it. The total
// is copied from the consultation's service cost at creation and never
// recomputed afterward.
type Bill struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	ConsultationID uuid.UUID `gorm:"column:consultation_id;type:uuid;not null;uniqueIndex"`

	TotalAmount float64    `gorm:"column:total_amount;type:numeric(18,2);not null"`
	IsPaid      bool       `gorm:"column:is_paid;not null;default:false;index"`
	PaymentDate *time.Time `gorm:"column:payment_date"`

	Version int64 `gorm:"column:version;not null;default:1"`
}

func (Bill) TableName() string {
	return "clinic.bills"
}

// MarkPaid flips the bill to paid. Payment is one-way; re-invocation is an
// error, not a silent no-op.
func (b *Bill) MarkPaid(at time.Time) error {
	if b.IsPaid {
		return ErrAlreadyPaid
	}
	b.IsPaid = true
	b.PaymentDate = &at
	return nil
}
