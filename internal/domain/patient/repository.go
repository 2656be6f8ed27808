package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new patient summary.
	Create(ctx context.Context, p *Patient) error

	// GetByID retrieves a patient by primary key. Returns ErrPatientNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)

	// GetByIDs resolves many identifiers in a single query. Identifiers with
	// no matching record are simply absent from the result.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*Patient, error)
}
