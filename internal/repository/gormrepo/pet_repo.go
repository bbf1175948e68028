package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmehra2102/prod-golang-projects/vetflow/internal/domain/pet"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PetRepository struct {
	db *gorm.DB
}

func NewPetRepository(db *gorm.DB) *PetRepository {
	return &PetRepository{db: db}
}

func (r *PetRepository) Create(ctx context.Context, p *pet.Pet) error {
	return dbFrom(ctx, r.db).Create(p).Error
}

func (r *PetRepository) GetByID(ctx context.Context, id uuid.UUID) (*pet.Pet, error) {
	var p pet.Pet
	err := dbFrom(ctx, r.db).First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pet.ErrPetNotFound
		}
		return nil, fmt.Errorf("loading pet: %w", err)
	}
	return &p, nil
}

func (r *PetRepository) Update(ctx context.Context, id uuid.UUID, cmd *pet.UpdatePetCommand) (*pet.Pet, error) {
	updates := map[string]any{}
	if cmd.Name != nil {
		updates["name"] = *cmd.Name
	}
	if cmd.Breed != nil {
		updates["breed"] = *cmd.Breed
	}
	if cmd.AgeYears != nil {
		updates["age_years"] = *cmd.AgeYears
	}
	if cmd.WeightKg != nil {
		updates["weight_kg"] = *cmd.WeightKg
	}
	if cmd.ImageURL != nil {
		updates["image_url"] = *cmd.ImageURL
	}

	if len(updates) > 0 {
		res := dbFrom(ctx, r.db).Model(&pet.Pet{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, fmt.Errorf("updating pet: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, pet.ErrPetNotFound
		}
	}
	return r.GetByID(ctx, id)
}

func (r *PetRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*pet.Pet, error) {
	var pets []*pet.Pet
	err := dbFrom(ctx, r.db).Where("owner_id = ?", ownerID).Order("name ASC").Find(&pets).Error
	if err != nil {
		return nil, fmt.Errorf("listing pets: %w", err)
	}
	return pets, nil
}
