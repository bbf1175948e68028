package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/consultation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConsultationRepository struct {
	db *gorm.DB
}

func NewConsultationRepository(db *gorm.DB) *ConsultationRepository {
	return &ConsultationRepository{db: db}
}

func (r *ConsultationRepository) Create(ctx context.Context, c *consultation.Consultation) error {
	return dbFrom(ctx, r.db).Create(c).Error
}

func (r *ConsultationRepository) GetByID(ctx context.Context, id uuid.UUID) (*consultation.Consultation, error) {
	var c consultation.Consultation
	err := dbFrom(ctx, r.db).First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, consultation.ErrConsultationNotFound
		}
		return nil, fmt.Errorf("loading consultation: %w", err)
	}
	return &c, nil
}

func (r *ConsultationRepository) GetByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*consultation.Consultation, error) {
	var c consultation.Consultation
	err := dbFrom(ctx, r.db).First(&c, "appointment_id = ?", appointmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, consultation.ErrConsultationNotFound
		}
		return nil, fmt.Errorf("loading consultation: %w", err)
	}
	return &c, nil
}

func (r *ConsultationRepository) DeleteByAppointmentID(ctx context.Context, appointmentID uuid.UUID) error {
	err := dbFrom(ctx, r.db).Delete(&consultation.Consultation{}, "appointment_id = ?", appointmentID).Error
	if err != nil {
		return fmt.Errorf("deleting consultation: %w", err)
	}
	return nil
}
