package patient

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderUsesIDAsName(t *testing.T) {
	id := uuid.New()
	p := Placeholder(id)

	assert.Equal(t, id, p.ID)
	assert.Equal(t, id.String(), p.Name)
	assert.Empty(t, p.Email)
	assert.Empty(t, p.Phone)
}

func TestRegisterCommandValidate(t *testing.T) {
	ok := &RegisterPatientCommand{Name: "Asha Rao", Phone: "+15551234567"}
	assert.NoError(t, ok.Validate())

	emailOnly := &RegisterPatientCommand{Name: "Asha Rao", Email: "asha@example.com"}
	assert.NoError(t, emailOnly.Validate())

	empty := &RegisterPatientCommand{}
	err := empty.Validate()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Fields, 2)
}
