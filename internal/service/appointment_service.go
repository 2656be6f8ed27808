package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/carebook/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/carebook/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/carebook/internal/notify"
	"github.com/dmehra2102/prod-golang-projects/carebook/pkg/datetime"
	"github.com/dmehra2102/prod-golang-projects/carebook/pkg/metrics"
)

// Notifier delivers a best-effort SMS: a nil result means the notice was not
// confirmed, and nothing more happens.
type Notifier interface {
	SendText(ctx context.Context, to, body string) *notify.Message
}

// AdminView caches the rendered recent-appointments aggregate. Create and
// Update invalidate it after every committed write.
type AdminView interface {
	GetRecent(ctx context.Context) (*appointment.RecentAppointments, bool)
	SetRecent(ctx context.Context, view *appointment.RecentAppointments)
	Invalidate(ctx context.Context)
}

type AppointmentService struct {
	repo        appointment.Repository
	patientRepo patient.Repository
	notifier    Notifier
	view        AdminView
	metrics     *metrics.Collector
	business    string
	log         *zap.Logger
}

func NewAppointmentService(
	repo appointment.Repository,
	patientRepo patient.Repository,
	notifier Notifier,
	view AdminView,
	m *metrics.Collector,
	businessName string,
	log *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		repo:        repo,
		patientRepo: patientRepo,
		notifier:    notifier,
		view:        view,
		metrics:     m,
		business:    businessName,
		log:         log,
	}
}

// Create persists a new appointment with exactly the supplied fields and
// invalidates the admin view. Store failures are logged and returned.
func (s *AppointmentService) Create(ctx context.Context, cmd *appointment.CreateAppointmentCommand) (*appointment.Appointment, error) {
	if err := validateCreateCommand(cmd); err != nil {
		return nil, err
	}

	status := cmd.Status
	if status == "" {
		status = appointment.StatusPending
	}
	if !status.IsValid() {
		return nil, appointment.ErrInvalidStatus
	}

	a := &appointment.Appointment{
		ID:               uuid.New(),
		PatientID:        cmd.PatientID,
		UserID:           cmd.UserID,
		PrimaryPhysician: cmd.PrimaryPhysician,
		Schedule:         cmd.Schedule,
		Status:           status,
		Reason:           cmd.Reason,
		Note:             cmd.Note,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.log.Error("failed to create appointment", zap.Error(err))
		return nil, fmt.Errorf("creating appointment: %w", err)
	}

	if s.metrics != nil {
		s.metrics.AppointmentsTotal.WithLabelValues(string(status)).Inc()
	}
	s.view.Invalidate(ctx)

	s.log.Info("appointment created",
		zap.String("appointment_id", a.ID.String()),
		zap.String("patient_id", a.PatientID.String()),
		zap.String("status", string(a.Status)),
	)

	return a, nil
}

// Get returns a single appointment as stored, without patient hydration.
func (s *AppointmentService) Get(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, appointment.ErrAppointmentNotFound) {
			s.log.Error("failed to fetch appointment", zap.Error(err), zap.String("appointment_id", id.String()))
		}
		return nil, err
	}
	return a, nil
}

// ListRecent builds the admin dashboard aggregate: every appointment newest
// first, status bucket counts, and every patient reference resolved to an
// embedded summary through one batched lookup.
func (s *AppointmentService) ListRecent(ctx context.Context) (*appointment.RecentAppointments, error) {
	if view, ok := s.view.GetRecent(ctx); ok {
		if s.metrics != nil {
			s.metrics.AdminViewCacheHits.Inc()
		}
		return view, nil
	}
	if s.metrics != nil {
		s.metrics.AdminViewCacheMisses.Inc()
	}

	docs, total, err := s.repo.ListRecent(ctx)
	if err != nil {
		s.log.Error("failed to list recent appointments", zap.Error(err))
		return nil, fmt.Errorf("listing appointments: %w", err)
	}

	view := &appointment.RecentAppointments{
		TotalCount: total,
		Documents:  docs,
	}
	for _, a := range docs {
		switch a.Status {
		case appointment.StatusScheduled:
			view.ScheduledCount++
		case appointment.StatusPending:
			view.PendingCount++
		case appointment.StatusCancelled:
			view.CancelledCount++
		}
	}

	if err := s.hydratePatients(ctx, docs); err != nil {
		return nil, err
	}

	s.view.SetRecent(ctx, view)
	return view, nil
}

// hydratePatients resolves bare patient references into embedded summaries.
// References are deduplicated and fetched in a single batched query;
// appointments that already carry a summary pass through unchanged, and
// unresolvable references fall back to a placeholder.
func (s *AppointmentService) hydratePatients(ctx context.Context, docs []*appointment.Appointment) error {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, a := range docs {
		if a.Patient != nil {
			continue
		}
		if _, ok := seen[a.PatientID]; ok {
			continue
		}
		seen[a.PatientID] = struct{}{}
		ids = append(ids, a.PatientID)
	}

	byID := make(map[uuid.UUID]*patient.Patient, len(ids))
	if len(ids) > 0 {
		patients, err := s.patientRepo.GetByIDs(ctx, ids)
		if err != nil {
			s.log.Error("failed to resolve patients for appointment list", zap.Error(err))
			return fmt.Errorf("resolving patients: %w", err)
		}
		for _, p := range patients {
			byID[p.ID] = p
		}
	}

	for _, a := range docs {
		if a.Patient != nil {
			continue
		}
		if p, ok := byID[a.PatientID]; ok {
			a.Patient = p
		} else {
			a.Patient = patient.Placeholder(a.PatientID)
		}
	}
	return nil
}

// Update applies the patch, then sends the SMS notice and invalidates the
// admin view. The patch is committed before the notice is attempted, so a
// failed send never rolls it back or surfaces to the caller.
func (s *AppointmentService) Update(ctx context.Context, cmd *appointment.UpdateAppointmentCommand) (*appointment.Appointment, error) {
	if cmd.AppointmentID == uuid.Nil {
		return nil, &ValidationError{Fields: []string{"appointmentId is required"}}
	}
	if cmd.Patch.Status != nil && !cmd.Patch.Status.IsValid() {
		return nil, appointment.ErrInvalidStatus
	}

	updated, err := s.repo.Update(ctx, cmd.AppointmentID, &cmd.Patch)
	if err != nil {
		if !errors.Is(err, appointment.ErrAppointmentNotFound) {
			s.log.Error("failed to update appointment",
				zap.Error(err),
				zap.String("appointment_id", cmd.AppointmentID.String()),
			)
		}
		return nil, err
	}

	body := s.buildNotice(cmd, updated)
	if msg := s.notifier.SendText(ctx, cmd.UserID.String(), body); msg == nil {
		s.log.Warn("appointment notice not confirmed",
			zap.String("appointment_id", updated.ID.String()),
			zap.String("user_id", cmd.UserID.String()),
		)
	}

	if s.metrics != nil {
		s.metrics.AppointmentsTotal.WithLabelValues(string(updated.Status)).Inc()
	}
	s.view.Invalidate(ctx)

	s.log.Info("appointment updated",
		zap.String("appointment_id", updated.ID.String()),
		zap.String("type", string(cmd.Type)),
		zap.String("status", string(updated.Status)),
	)

	return updated, nil
}

// buildNotice words the SMS for the update type. The schedule is rendered in
// the caller's time zone; an unknown zone falls back to UTC because the
// patch is already committed and must not fail on formatting.
func (s *AppointmentService) buildNotice(cmd *appointment.UpdateAppointmentCommand, updated *appointment.Appointment) string {
	formatted, err := datetime.Format(updated.Schedule, cmd.TimeZone)
	if err != nil {
		s.log.Warn("unknown time zone in update, formatting notice in UTC",
			zap.String("time_zone", cmd.TimeZone),
		)
		formatted, _ = datetime.Format(updated.Schedule, "")
	}

	if cmd.Type == appointment.UpdateTypeSchedule {
		return fmt.Sprintf(
			"Greetings from %s! Your appointment is confirmed for %s as per your requested service of %s.",
			s.business, formatted.DateTime, updated.PrimaryPhysician,
		)
	}
	return fmt.Sprintf(
		"Greetings from %s! We regret to inform you that your appointment for %s is cancelled for the following reason: %s.",
		s.business, formatted.DateTime, updated.CancellationReason,
	)
}

func validateCreateCommand(cmd *appointment.CreateAppointmentCommand) error {
	var fields []string
	if cmd.PatientID == uuid.Nil {
		fields = append(fields, "patientId is required")
	}
	if cmd.UserID == uuid.Nil {
		fields = append(fields, "userId is required")
	}
	if cmd.PrimaryPhysician == "" {
		fields = append(fields, "primaryPhysician is required")
	}
	if cmd.Schedule.IsZero() {
		fields = append(fields, "schedule is required")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
