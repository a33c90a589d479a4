package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckoutRequest_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		req     CheckoutRequest
		missing []string
	}{
		{
			name:    "all present",
			req:     CheckoutRequest{Email: "a@b.com", FirstName: "Jo", LastName: "Doe"},
			missing: nil,
		},
		{
			name:    "whitespace only counts as missing",
			req:     CheckoutRequest{Email: "  ", FirstName: "Jo", LastName: "\t"},
			missing: []string{"email", "last_name"},
		},
		{
			name:    "all missing",
			req:     CheckoutRequest{},
			missing: []string{"email", "first_name", "last_name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.missing, tt.req.MissingFields())
		})
	}
}

func TestCheckoutRequest_CustomerName(t *testing.T) {
	req := CheckoutRequest{FirstName: "Jo", LastName: "Doe"}
	assert.Equal(t, "Jo Doe", req.CustomerName())

	req = CheckoutRequest{FirstName: "Jo"}
	assert.Equal(t, "Jo", req.CustomerName())
}
