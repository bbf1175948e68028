package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/doctor"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

func (r *DoctorRepository) Create(ctx context.Context, p *doctor.Profile) error {
	return dbFrom(ctx, r.db).Create(p).Error
}

func (r *DoctorRepository) GetByID(ctx context.Context, id uuid.UUID) (*doctor.Profile, error) {
	var p doctor.Profile
	err := dbFrom(ctx, r.db).First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, doctor.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("loading doctor profile: %w", err)
	}
	return &p, nil
}

func (r *DoctorRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*doctor.Profile, error) {
	var p doctor.Profile
	err := dbFrom(ctx, r.db).First(&p, "account_id = ?", accountID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, doctor.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("loading doctor profile: %w", err)
	}
	return &p, nil
}

func (r *DoctorRepository) List(ctx context.Context) ([]*doctor.Profile, error) {
	var profiles []*doctor.Profile
	err := dbFrom(ctx, r.db).Order("specialization ASC").Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("listing doctor profiles: %w", err)
	}
	return profiles, nil
}
