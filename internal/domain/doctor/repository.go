package doctor

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Profile) error

	// GetByID returns ErrDoctorNotFound for unknown ids.
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)

	// GetByAccountID resolves the profile for a doctor account.
	GetByAccountID(ctx context.Context, accountID uuid.UUID) (*Profile, error)

	List(ctx context.Context) ([]*Profile, error)
}
