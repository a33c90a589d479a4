package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string `validate:"required,email"`
	Name     string `validate:"required"`
	Quantity int    `validate:"gte=0"`
}

func TestValidate_OK(t *testing.T) {
	err := Validate(sample{Email: "a@b.com", Name: "Jo", Quantity: 1})
	assert.NoError(t, err)
}

func TestValidate_CollectsFieldErrors(t *testing.T) {
	err := Validate(sample{Email: "nope", Quantity: -1})

	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)

	fields := valErr.Fields()
	assert.Contains(t, fields, "Email")
	assert.Contains(t, fields, "Name")
	assert.Contains(t, fields, "Quantity")
	assert.Equal(t, "must be a valid email address", fields["Email"])
	assert.Equal(t, "is required", fields["Name"])
}
