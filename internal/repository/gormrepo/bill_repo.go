package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/billing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BillRepository struct {
	db *gorm.DB
}

func NewBillRepository(db *gorm.DB) *BillRepository {
	return &BillRepository{db: db}
}

func (r *BillRepository) Create(ctx context.Context, b *billing.Bill) error {
	return dbFrom(ctx, r.db).Create(b).Error
}

func (r *BillRepository) GetByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	var b billing.Bill
	err := dbFrom(ctx, r.db).First(&b, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billing.ErrBillNotFound
		}
		return nil, fmt.Errorf("loading bill: %w", err)
	}
	return &b, nil
}

func (r *BillRepository) GetByConsultationID(ctx context.Context, consultationID uuid.UUID) (*billing.Bill, error) {
	var b billing.Bill
	err := dbFrom(ctx, r.db).First(&b, "consultation_id = ?", consultationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billing.ErrBillNotFound
		}
		return nil, fmt.Errorf("loading bill: %w", err)
	}
	return &b, nil
}

// ListByOwner resolves the consultation → appointment → pet chain with inner
// joins, which drops any bill whose chain is broken.
func (r *BillRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*billing.Bill, error) {
	var bills []*billing.Bill
	err := dbFrom(ctx, r.db).
		Joins("JOIN clinic.consultations c ON c.id = clinic.bills.consultation_id").
		Joins("JOIN clinic.appointments a ON a.id = c.appointment_id AND a.deleted_at IS NULL").
		Joins("JOIN clinic.pets p ON p.id = a.pet_id AND p.deleted_at IS NULL").
		Where("p.owner_id = ?", ownerID).
		Order("clinic.bills.created_at DESC").
		Find(&bills).Error
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}
	return bills, nil
}

func (r *BillRepository) ListAll(ctx context.Context) ([]*billing.Bill, error) {
	var bills []*billing.Bill
	err := dbFrom(ctx, r.db).Order("created_at DESC").Find(&bills).Error
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}
	return bills, nil
}

// Update writes the payment fields conditioned on the loaded version.
func (r *BillRepository) Update(ctx context.Context, b *billing.Bill) error {
	res := dbFrom(ctx, r.db).Model(&billing.Bill{}).
		Where("id = ? AND version = ?", b.ID, b.Version).
		Updates(map[string]any{
			"is_paid":      b.IsPaid,
			"payment_date": b.PaymentDate,
			"version":      b.Version + 1,
		})
	if res.Error != nil {
		return fmt.Errorf("updating bill: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		var exists int64
		if err := dbFrom(ctx, r.db).Model(&billing.Bill{}).
			Where("id = ?", b.ID).Count(&exists).Error; err != nil {
			return fmt.Errorf("checking bill existence: %w", err)
		}
		if exists == 0 {
			return billing.ErrBillNotFound
		}
		return billing.ErrVersionConflict
	}
	b.Version++
	return nil
}

func (r *BillRepository) DeleteByConsultationID(ctx context.Context, consultationID uuid.UUID) error {
	err := dbFrom(ctx, r.db).Delete(&billing.Bill{}, "consultation_id = ?", consultationID).Error
	if err != nil {
		return fmt.Errorf("deleting bill: %w", err)
	}
	return nil
}
