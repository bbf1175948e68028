package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/appointment"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	return dbFrom(ctx, r.db).Create(a).Error
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	var a appointment.Appointment
	err := dbFrom(ctx, r.db).First(&a, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appointment.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("loading appointment: %w", err)
	}
	return &a, nil
}

func (r *AppointmentRepository) List(ctx context.Context, q *appointment.ListAppointmentsQuery) (*appointment.PagedAppointments, error) {
	db := dbFrom(ctx, r.db).Model(&appointment.Appointment{})

	if q.PetID != nil {
		db = db.Where("pet_id = ?", *q.PetID)
	}
	if q.DoctorID != nil {
		db = db.Where("doctor_id = ?", *q.DoctorID)
	}
	if q.Status != nil {
		db = db.Where("status = ?", *q.Status)
	}
	if q.OwnerID != nil {
		db = db.Where("pet_id IN (?)",
			dbFrom(ctx, r.db).Table("clinic.pets").
				Select("id").Where("owner_id = ? AND deleted_at IS NULL", *q.OwnerID),
		)
	}
	if q.DateFrom != nil {
		db = db.Where("scheduled_at >= ?", *q.DateFrom)
	}
	if q.DateTo != nil {
		db = db.Where("scheduled_at < ?", *q.DateTo)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting appointments: %w", err)
	}

	var items []*appointment.Appointment
	offset := (q.Page - 1) * q.PageSize
	err := db.Order("scheduled_at ASC").Limit(q.PageSize).Offset(offset).Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}

	return &appointment.PagedAppointments{
		Appointments: items,
		TotalCount:   total,
		Page:         q.Page,
		PageSize:     q.PageSize,
		TotalPages:   int(math.Ceil(float64(total) / float64(q.PageSize))),
	}, nil
}

// UpdateStatus writes status and scheduled_at conditioned on the version the
// entity was loaded with. RowsAffected == 0 after a successful load means a
// concurrent writer got there first.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, a *appointment.Appointment) error {
	res := dbFrom(ctx, r.db).Model(&appointment.Appointment{}).
		Where("id = ? AND version = ?", a.ID, a.Version).
		Updates(map[string]any{
			"status":       a.Status,
			"scheduled_at": a.ScheduledAt,
			"version":      a.Version + 1,
		})
	if res.Error != nil {
		return fmt.Errorf("updating appointment status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		var exists int64
		if err := dbFrom(ctx, r.db).Model(&appointment.Appointment{}).
			Where("id = ?", a.ID).Count(&exists).Error; err != nil {
			return fmt.Errorf("checking appointment existence: %w", err)
		}
		if exists == 0 {
			return appointment.ErrAppointmentNotFound
		}
		return appointment.ErrVersionConflict
	}
	a.Version++
	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := dbFrom(ctx, r.db).Unscoped().Delete(&appointment.Appointment{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("deleting appointment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return appointment.ErrAppointmentNotFound
	}
	return nil
}
