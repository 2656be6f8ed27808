package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/carebook/internal/config"
	"github.com/dmehra2102/prod-golang-projects/carebook/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/carebook/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/carebook/internal/notify"
	"github.com/dmehra2102/prod-golang-projects/carebook/internal/service"
	"github.com/dmehra2102/prod-golang-projects/carebook/internal/viewcache"
)

type fakeAppointmentRepo struct {
	byID    map[uuid.UUID]*appointment.Appointment
	ordered []*appointment.Appointment
}

func (r *fakeAppointmentRepo) Create(_ context.Context, a *appointment.Appointment) error {
	r.byID[a.ID] = a
	r.ordered = append([]*appointment.Appointment{a}, r.ordered...)
	return nil
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	return a, nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, id uuid.UUID, patch *appointment.Patch) (*appointment.Appointment, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	if patch.PrimaryPhysician != nil {
		a.PrimaryPhysician = *patch.PrimaryPhysician
	}
	if patch.Schedule != nil {
		a.Schedule = *patch.Schedule
	}
	if patch.Status != nil {
		a.Status = *patch.Status
	}
	if patch.CancellationReason != nil {
		a.CancellationReason = *patch.CancellationReason
	}
	return a, nil
}

func (r *fakeAppointmentRepo) ListRecent(_ context.Context) ([]*appointment.Appointment, int64, error) {
	return r.ordered, int64(len(r.ordered)), nil
}

type fakePatientRepo struct {
	byID map[uuid.UUID]*patient.Patient
}

func (r *fakePatientRepo) Create(_ context.Context, p *patient.Patient) error {
	r.byID[p.ID] = p
	return nil
}

func (r *fakePatientRepo) GetByID(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	return p, nil
}

func (r *fakePatientRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*patient.Patient, error) {
	var out []*patient.Patient
	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakePatientRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App:     config.AppConfig{Environment: "test", Version: "test"},
		Tracing: config.TracingConfig{ServiceName: "carebook-test"},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"https://app.example.com"},
			AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         time.Hour,
		},
	}
	log := zap.NewNop()

	apptRepo := &fakeAppointmentRepo{byID: make(map[uuid.UUID]*appointment.Appointment)}
	patRepo := &fakePatientRepo{byID: make(map[uuid.UUID]*patient.Patient)}
	notifier := notify.NewService(notify.NewNoopSender(), nil, log)

	apptSvc := service.NewAppointmentService(apptRepo, patRepo, notifier, viewcache.Noop{}, nil, "CareBook", log)
	patSvc := service.NewPatientService(patRepo, nil, log)

	router := NewRouter(RouterDeps{
		Config:       cfg,
		Log:          log,
		Appointments: NewAppointmentHandler(apptSvc),
		Patients:     NewPatientHandler(patSvc),
	})
	return router, patRepo
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRegisterPatientEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/patients", gin.H{
		"name":  "Asha Rao",
		"phone": "+15551234567",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data patient.Patient `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Asha Rao", resp.Data.Name)
	assert.NotEqual(t, uuid.Nil, resp.Data.ID)

	got := doJSON(t, router, http.MethodGet, "/api/v1/patients/"+resp.Data.ID.String(), nil)
	assert.Equal(t, http.StatusOK, got.Code)
}

func TestRegisterPatientRequiresName(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/patients", gin.H{"phone": "+15551234567"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPatientNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/patients/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPatientRejectsBadID(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/patients/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func createAppointmentViaAPI(t *testing.T, router *gin.Engine, patientID uuid.UUID) appointment.Appointment {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/v1/appointments", gin.H{
		"patientId":        patientID.String(),
		"userId":           uuid.NewString(),
		"primaryPhysician": "Dr. Green",
		"schedule":         "2026-03-15T14:30:00Z",
		"reason":           "annual checkup",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data appointment.Appointment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestCreateAppointmentEndpoint(t *testing.T) {
	router, patients := newTestRouter(t)
	p := &patient.Patient{ID: uuid.New(), Name: "Asha Rao"}
	patients.byID[p.ID] = p

	created := createAppointmentViaAPI(t, router, p.ID)
	assert.Equal(t, appointment.StatusPending, created.Status)

	w := doJSON(t, router, http.MethodGet, "/api/v1/appointments/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCreateAppointmentRejectsMissingPhysician(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/appointments", gin.H{
		"patientId": uuid.NewString(),
		"userId":    uuid.NewString(),
		"schedule":  "2026-03-15T14:30:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecentAppointmentsEndpoint(t *testing.T) {
	router, patients := newTestRouter(t)
	p := &patient.Patient{ID: uuid.New(), Name: "Asha Rao"}
	patients.byID[p.ID] = p

	createAppointmentViaAPI(t, router, p.ID)
	createAppointmentViaAPI(t, router, uuid.New())

	w := doJSON(t, router, http.MethodGet, "/api/v1/appointments/recent", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data appointment.RecentAppointments `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Data.TotalCount)
	assert.Equal(t, 2, resp.Data.PendingCount)
	require.Len(t, resp.Data.Documents, 2)
	for _, a := range resp.Data.Documents {
		require.NotNil(t, a.Patient)
		assert.NotEmpty(t, a.Patient.Name)
	}
}

func TestUpdateAppointmentEndpoint(t *testing.T) {
	router, patients := newTestRouter(t)
	p := &patient.Patient{ID: uuid.New(), Name: "Asha Rao"}
	patients.byID[p.ID] = p
	created := createAppointmentViaAPI(t, router, p.ID)

	w := doJSON(t, router, http.MethodPatch, "/api/v1/appointments/"+created.ID.String(), gin.H{
		"userId":   uuid.NewString(),
		"timeZone": "America/New_York",
		"type":     "schedule",
		"appointment": gin.H{
			"status":   "scheduled",
			"schedule": "2026-03-20T15:00:00Z",
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data appointment.Appointment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, appointment.StatusScheduled, resp.Data.Status)
}

func TestUpdateAppointmentRejectsUnknownStatus(t *testing.T) {
	router, patients := newTestRouter(t)
	p := &patient.Patient{ID: uuid.New(), Name: "Asha Rao"}
	patients.byID[p.ID] = p
	created := createAppointmentViaAPI(t, router, p.ID)

	w := doJSON(t, router, http.MethodPatch, "/api/v1/appointments/"+created.ID.String(), gin.H{
		"userId":      uuid.NewString(),
		"type":        "schedule",
		"appointment": gin.H{"status": "archived"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAppointmentNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/v1/appointments/%s", uuid.NewString()), gin.H{
		"userId":      uuid.NewString(),
		"type":        "cancel",
		"appointment": gin.H{"cancellationReason": "double booked"},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSAllowsKnownOrigin(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/appointments/recent", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSIgnoresUnknownOrigin(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
