package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmehra2102/prod-golang-projects/carebook/internal/domain/appointment"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("inserting appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	var a appointment.Appointment
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appointment.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("selecting appointment: %w", err)
	}
	return &a, nil
}

// Update writes only the non-nil patch fields. The column map keeps the
// identifier and creation timestamp out of reach of any patch.
func (r *AppointmentRepository) Update(ctx context.Context, id uuid.UUID, patch *appointment.Patch) (*appointment.Appointment, error) {
	updates := map[string]any{}
	if patch.PrimaryPhysician != nil {
		updates["primary_physician"] = *patch.PrimaryPhysician
	}
	if patch.Schedule != nil {
		updates["schedule"] = *patch.Schedule
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.CancellationReason != nil {
		updates["cancellation_reason"] = *patch.CancellationReason
	}
	if len(updates) == 0 {
		return nil, appointment.ErrEmptyPatch
	}

	res := r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("updating appointment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, appointment.ErrAppointmentNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *AppointmentRepository) ListRecent(ctx context.Context) ([]*appointment.Appointment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&appointment.Appointment{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting appointments: %w", err)
	}

	var appts []*appointment.Appointment
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&appts).Error; err != nil {
		return nil, 0, fmt.Errorf("listing appointments: %w", err)
	}
	return appts, total, nil
}
