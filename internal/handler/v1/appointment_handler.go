package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmehra2102/prod-golang-projects/carebook/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/carebook/internal/service"
)

type AppointmentHandler struct {
	svc *service.AppointmentService
}

func NewAppointmentHandler(svc *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

type createAppointmentRequest struct {
	PatientID        string    `json:"patientId" binding:"required"`
	UserID           string    `json:"userId" binding:"required"`
	PrimaryPhysician string    `json:"primaryPhysician" binding:"required"`
	Schedule         time.Time `json:"schedule" binding:"required"`
	Reason           string    `json:"reason"`
	Note             string    `json:"note"`
	Status           string    `json:"status"`
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req createAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}
	patientID, ok := parseBodyUUID(c, "patientId", req.PatientID)
	if !ok {
		return
	}
	userID, ok := parseBodyUUID(c, "userId", req.UserID)
	if !ok {
		return
	}

	a, err := h.svc.Create(c.Request.Context(), &appointment.CreateAppointmentCommand{
		PatientID:        patientID,
		UserID:           userID,
		PrimaryPhysician: req.PrimaryPhysician,
		Schedule:         req.Schedule,
		Reason:           req.Reason,
		Note:             req.Note,
		Status:           appointment.Status(req.Status),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, a)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	a, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, a)
}

func (h *AppointmentHandler) ListRecent(c *gin.Context) {
	view, err := h.svc.ListRecent(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, view)
}

type updateAppointmentRequest struct {
	UserID   string `json:"userId" binding:"required"`
	TimeZone string `json:"timeZone"`
	// Type "schedule" confirms; any other value cancels.
	Type        string                 `json:"type" binding:"required"`
	Appointment appointmentPatchFields `json:"appointment"`
}

type appointmentPatchFields struct {
	PrimaryPhysician   *string    `json:"primaryPhysician"`
	Schedule           *time.Time `json:"schedule"`
	Status             *string    `json:"status"`
	CancellationReason *string    `json:"cancellationReason"`
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req updateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := parseBodyUUID(c, "userId", req.UserID)
	if !ok {
		return
	}

	var status *appointment.Status
	if req.Appointment.Status != nil {
		s := appointment.Status(*req.Appointment.Status)
		status = &s
	}

	a, err := h.svc.Update(c.Request.Context(), &appointment.UpdateAppointmentCommand{
		AppointmentID: id,
		UserID:        userID,
		TimeZone:      req.TimeZone,
		Type:          appointment.UpdateType(req.Type),
		Patch: appointment.Patch{
			PrimaryPhysician:   req.Appointment.PrimaryPhysician,
			Schedule:           req.Appointment.Schedule,
			Status:             status,
			CancellationReason: req.Appointment.CancellationReason,
		},
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, a)
}
