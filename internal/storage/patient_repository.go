package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmehra2102/prod-golang-projects/carebook/internal/domain/patient"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) Create(ctx context.Context, p *patient.Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("inserting patient: %w", err)
	}
	return nil
}

func (r *PatientRepository) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	var p patient.Patient
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, patient.ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("selecting patient: %w", err)
	}
	return &p, nil
}

// GetByIDs is the batched lookup behind patient hydration: one IN query no
// matter how many appointments reference the same patient.
func (r *PatientRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*patient.Patient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var patients []*patient.Patient
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("selecting patients: %w", err)
	}
	return patients, nil
}
