package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmehra2102/prod-golang-projects/carebook/internal/domain/patient"
)

// State transitions possibilities:
//
//	pending   → scheduled (admin confirms)
//	pending   → cancelled (admin cancels)
//	scheduled ⇄ cancelled (no guard; an admin may re-schedule or re-cancel)
//
// No transition is blocked on the current state and there is no terminal
// state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusScheduled, StatusCancelled:
		return true
	}
	return false
}

type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// PatientID is the stored reference. Patient is the hydrated summary the
	// list operation attaches before records leave the service; it is never
	// persisted.
	PatientID uuid.UUID        `gorm:"column:patient_id;type:uuid;not null;index" json:"patientId"`
	Patient   *patient.Patient `gorm:"-" json:"patient,omitempty"`

	// UserID is the account that requested the appointment and receives the
	// SMS notices.
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null" json:"userId"`

	// PrimaryPhysician carries the requested service category. The UI offers
	// a fixed list; the store treats it as free text.
	PrimaryPhysician string    `gorm:"column:primary_physician;type:varchar(200);not null" json:"primaryPhysician"`
	Schedule         time.Time `gorm:"column:schedule;not null;index" json:"schedule"`
	Status           Status    `gorm:"column:status;type:varchar(20);not null;default:'pending';index" json:"status"`

	Reason             string `gorm:"column:reason;type:text" json:"reason,omitempty"`
	Note               string `gorm:"column:note;type:text" json:"note,omitempty"`
	CancellationReason string `gorm:"column:cancellation_reason;type:text" json:"cancellationReason,omitempty"`
}

func (Appointment) TableName() string {
	return "booking.appointments"
}

type CreateAppointmentCommand struct {
	PatientID        uuid.UUID
	UserID           uuid.UUID
	PrimaryPhysician string
	Schedule         time.Time
	Reason           string
	Note             string
	Status           Status
}

// UpdateType selects the SMS wording. Anything other than "schedule" is
// treated as a cancellation.
type UpdateType string

const (
	UpdateTypeSchedule UpdateType = "schedule"
	UpdateTypeCancel   UpdateType = "cancel"
)

// Patch is a partial update; nil fields are left untouched by the store.
type Patch struct {
	PrimaryPhysician   *string
	Schedule           *time.Time
	Status             *Status
	CancellationReason *string
}

type UpdateAppointmentCommand struct {
	AppointmentID uuid.UUID
	UserID        uuid.UUID
	TimeZone      string
	Patch         Patch
	Type          UpdateType
}

// RecentAppointments is the admin dashboard aggregate. Statuses outside the
// three recognized values stay in Documents and TotalCount but are counted
// in no bucket, so the three counters sum to at most TotalCount.
type RecentAppointments struct {
	TotalCount     int64          `json:"totalCount"`
	ScheduledCount int            `json:"scheduledCount"`
	PendingCount   int            `json:"pendingCount"`
	CancelledCount int            `json:"cancelledCount"`
	Documents      []*Appointment `json:"documents"`
}
