package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,min=2"`
}

func TestRequestValidatorValid(t *testing.T) {
	v := NewRequestValidator()

	err := v.Validate(&sampleRequest{Email: "reader@example.com", Name: "Ana"})
	assert.NoError(t, err)
}

func TestRequestValidatorReportsJSONFieldNames(t *testing.T) {
	v := NewRequestValidator()

	err := v.Validate(&sampleRequest{Email: "nope", Name: ""})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	// Messages name the JSON fields, not the Go ones
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "name")
	assert.NotContains(t, err.Error(), "Email")
}
