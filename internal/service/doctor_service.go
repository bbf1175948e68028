package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/authz"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/doctor"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DoctorService manages the doctor directory: admin-created profiles, publicly
// listable so clients can pick a doctor when booking.
type DoctorService struct {
	repo     doctor.Repository
	auditSvc *AuditService
	log      *zap.Logger
}

func NewDoctorService(repo doctor.Repository, auditSvc *AuditService, log *zap.Logger) *DoctorService {
	return &DoctorService{repo: repo, auditSvc: auditSvc, log: log}
}

func (s *DoctorService) CreateProfile(ctx context.Context, actor authz.Actor, cmd *doctor.CreateProfileCommand, ip string) (*doctor.Profile, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, forbidden("admin role required")
	}
	if strings.TrimSpace(cmd.Specialization) == "" {
		return nil, doctor.ErrSpecializationMissing
	}

	if _, err := s.repo.GetByAccountID(ctx, cmd.AccountID); err == nil {
		return nil, doctor.ErrProfileAlreadyExists
	} else if !errors.Is(err, doctor.ErrDoctorNotFound) {
		return nil, fmt.Errorf("checking existing profile: %w", err)
	}

	p := &doctor.Profile{
		AccountID:         cmd.AccountID,
		Specialization:    strings.TrimSpace(cmd.Specialization),
		Bio:               cmd.Bio,
		ProfilePictureURL: cmd.ProfilePictureURL,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("failed to create doctor profile", zap.Error(err))
		return nil, fmt.Errorf("creating doctor profile: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		AccountID:    actor.AccountID,
		Role:         string(actor.Role),
		Action:       "create",
		ResourceType: "doctor_profile",
		ResourceID:   p.ID.String(),
		IPAddress:    ip,
	})

	return p, nil
}

func (s *DoctorService) GetProfile(ctx context.Context, id uuid.UUID) (*doctor.Profile, error) {
	return s.repo.GetByID(ctx, id)
}

// ListProfiles is unauthenticated-read territory: the booking form needs it.
func (s *DoctorService) ListProfiles(ctx context.Context) ([]*doctor.Profile, error) {
	return s.repo.List(ctx)
}
