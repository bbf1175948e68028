package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/authz"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/pet"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PetService is the owner-scoped pet registry. Clients manage their own pets;
// admins may act on any pet.
type PetService struct {
	repo     pet.Repository
	auditSvc *AuditService
	log      *zap.Logger
}

func NewPetService(repo pet.Repository, auditSvc *AuditService, log *zap.Logger) *PetService {
	return &PetService{repo: repo, auditSvc: auditSvc, log: log}
}

func (s *PetService) CreatePet(ctx context.Context, actor authz.Actor, cmd *pet.CreatePetCommand, ip string) (*pet.Pet, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, pet.ErrNameRequired
	}
	if strings.TrimSpace(cmd.Species) == "" {
		return nil, pet.ErrSpeciesRequired
	}

	// Clients register pets for themselves; the owner field is not theirs to
	// choose. Admins may register on a client's behalf.
	ownerID := cmd.OwnerID
	if actor.Role != domain.RoleAdmin {
		ownerID = actor.AccountID
	}

	p := &pet.Pet{
		OwnerID:  ownerID,
		Name:     strings.TrimSpace(cmd.Name),
		Species:  strings.TrimSpace(cmd.Species),
		Breed:    cmd.Breed,
		AgeYears: cmd.AgeYears,
		WeightKg: cmd.WeightKg,
		ImageURL: cmd.ImageURL,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("failed to create pet", zap.Error(err))
		return nil, fmt.Errorf("creating pet: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		AccountID:    actor.AccountID,
		Role:         string(actor.Role),
		Action:       "create",
		ResourceType: "pet",
		ResourceID:   p.ID.String(),
		IPAddress:    ip,
	})

	return p, nil
}

func (s *PetService) GetPet(ctx context.Context, actor authz.Actor, id uuid.UUID) (*pet.Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && p.OwnerID != actor.AccountID {
		return nil, forbidden("not the pet's owner")
	}
	return p, nil
}

func (s *PetService) UpdatePet(ctx context.Context, actor authz.Actor, id uuid.UUID, cmd *pet.UpdatePetCommand, ip string) (*pet.Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && p.OwnerID != actor.AccountID {
		return nil, forbidden("not the pet's owner")
	}
	if cmd.Name != nil && strings.TrimSpace(*cmd.Name) == "" {
		return nil, pet.ErrNameRequired
	}

	updated, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		AccountID:    actor.AccountID,
		Role:         string(actor.Role),
		Action:       "update",
		ResourceType: "pet",
		ResourceID:   id.String(),
		IPAddress:    ip,
	})

	return updated, nil
}

// ListMyPets returns the acting client's pets.
func (s *PetService) ListMyPets(ctx context.Context, actor authz.Actor) ([]*pet.Pet, error) {
	return s.repo.ListByOwner(ctx, actor.AccountID)
}
