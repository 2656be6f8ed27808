package patient

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Patient is the display summary the booking flow works with. The full
// clinical record lives with a separate system; appointments only ever need
// an identifier, a display name, and contact details.
type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Name  string `gorm:"column:name;type:varchar(200);not null" json:"name"`
	Email string `gorm:"column:email;type:varchar(255)" json:"email,omitempty"`
	Phone string `gorm:"column:phone;type:varchar(20)" json:"phone,omitempty"`
}

func (Patient) TableName() string {
	return "booking.patients"
}

// Placeholder stands in for a referenced patient that could not be resolved.
// The reference id doubles as the display name so callers can always render
// something.
func Placeholder(id uuid.UUID) *Patient {
	return &Patient{ID: id, Name: id.String()}
}

type RegisterPatientCommand struct {
	Name  string
	Email string
	Phone string
}

func (c *RegisterPatientCommand) Validate() error {
	var fields []string
	if strings.TrimSpace(c.Name) == "" {
		fields = append(fields, "name is required")
	}
	if strings.TrimSpace(c.Phone) == "" && strings.TrimSpace(c.Email) == "" {
		fields = append(fields, "at least one of phone or email is required")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}
