package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/dmehra2102/prod-golang-projects/carebook/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/carebook/internal/service"
)

type PatientHandler struct {
	svc *service.PatientService
}

func NewPatientHandler(svc *service.PatientService) *PatientHandler {
	return &PatientHandler{svc: svc}
}

type registerPatientRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (h *PatientHandler) Register(c *gin.Context) {
	var req registerPatientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.svc.Register(c.Request.Context(), &patient.RegisterPatientCommand{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, p)
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}
