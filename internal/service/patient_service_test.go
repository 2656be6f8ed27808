package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/carebook/internal/domain/patient"
)

func TestRegisterNormalizesContactFields(t *testing.T) {
	repo := newMemPatientRepo()
	svc := NewPatientService(repo, nil, zap.NewNop())

	p, err := svc.Register(context.Background(), &patient.RegisterPatientCommand{
		Name:  "  Asha Rao ",
		Email: " Asha.Rao@Example.COM ",
		Phone: " +15551234567 ",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, "Asha Rao", p.Name)
	assert.Equal(t, "asha.rao@example.com", p.Email)
	assert.Equal(t, "+15551234567", p.Phone)

	stored, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, stored.ID)
}

func TestRegisterRequiresNameAndContact(t *testing.T) {
	svc := NewPatientService(newMemPatientRepo(), nil, zap.NewNop())

	_, err := svc.Register(context.Background(), &patient.RegisterPatientCommand{Name: "   "})
	var vErr *patient.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Fields, 2)
}

func TestGetUnknownPatient(t *testing.T) {
	svc := NewPatientService(newMemPatientRepo(), nil, zap.NewNop())

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, patient.ErrPatientNotFound)
}
