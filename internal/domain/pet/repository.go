package pet

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Pet) error

	// GetByID returns ErrPetNotFound for unknown ids.
	GetByID(ctx context.Context, id uuid.UUID) (*Pet, error)

	Update(ctx context.Context, id uuid.UUID, cmd *UpdatePetCommand) (*Pet, error)

	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Pet, error)
}
