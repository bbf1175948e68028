package billing

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new bill. The unique index on consultation_id rejects
	// a second bill for the same consultation.
	Create(ctx context.Context, b *Bill) error

	// GetByID returns ErrBillNotFound for unknown ids.
	GetByID(ctx context.Context, id uuid.UUID) (*Bill, error)

	GetByConsultationID(ctx context.Context, consultationID uuid.UUID) (*Bill, error)

	// ListByOwner returns bills whose consultation→appointment→pet chain
	// resolves to the given owner. Bills with a broken chain are excluded.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Bill, error)

	ListAll(ctx context.Context) ([]*Bill, error)

	// Update writes the paid flag and payment date conditioned on the version
	// the bill was loaded with. Returns ErrVersionConflict when the row changed
	// underneath, and bumps b.Version on success.
	Update(ctx context.Context, b *Bill) error

	// DeleteByConsultationID removes the bill linked to a consultation. Used
	// only by the appointment-delete cascade.
	DeleteByConsultationID(ctx context.Context, consultationID uuid.UUID) error
}
