package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/carebook/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/carebook/pkg/metrics"
)

type PatientService struct {
	repo    patient.Repository
	metrics *metrics.Collector
	log     *zap.Logger
}

func NewPatientService(repo patient.Repository, m *metrics.Collector, log *zap.Logger) *PatientService {
	return &PatientService{repo: repo, metrics: m, log: log}
}

func (s *PatientService) Register(ctx context.Context, cmd *patient.RegisterPatientCommand) (*patient.Patient, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	p := &patient.Patient{
		ID:    uuid.New(),
		Name:  strings.TrimSpace(cmd.Name),
		Email: strings.ToLower(strings.TrimSpace(cmd.Email)),
		Phone: strings.TrimSpace(cmd.Phone),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("failed to register patient", zap.Error(err))
		return nil, fmt.Errorf("registering patient: %w", err)
	}

	if s.metrics != nil {
		s.metrics.PatientsCreatedTotal.Inc()
	}

	s.log.Info("patient registered", zap.String("patient_id", p.ID.String()))
	return p, nil
}

func (s *PatientService) Get(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, patient.ErrPatientNotFound) {
			s.log.Error("failed to fetch patient", zap.Error(err), zap.String("patient_id", id.String()))
		}
		return nil, err
	}
	return p, nil
}
