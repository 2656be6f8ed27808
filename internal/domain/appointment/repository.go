package appointment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new appointment with the identifier already assigned.
	Create(ctx context.Context, a *Appointment) error

	// GetByID retrieves an appointment by primary key. Returns
	// ErrAppointmentNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// Update applies the non-nil patch fields to an existing record and
	// returns it. The identifier and creation timestamp are never written.
	Update(ctx context.Context, id uuid.UUID, patch *Patch) (*Appointment, error)

	// ListRecent returns every appointment ordered by creation time
	// descending, together with the store-reported total.
	ListRecent(ctx context.Context) ([]*Appointment, int64, error)
}
