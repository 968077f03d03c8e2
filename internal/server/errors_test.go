package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Zachkp/portfolio/internal/contact"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil", err: nil, expected: http.StatusOK},
		{name: "field errors", err: contact.FieldErrors{contact.FieldEmail: "is required"}, expected: http.StatusUnprocessableEntity},
		{name: "wrapped field errors", err: fmt.Errorf("submit: %w", contact.FieldErrors{}), expected: http.StatusUnprocessableEntity},
		{name: "unknown field", err: fmt.Errorf("%w: phone", contact.ErrUnknownField), expected: http.StatusBadRequest},
		{name: "cancelled", err: context.Canceled, expected: http.StatusServiceUnavailable},
		{name: "deadline", err: context.DeadlineExceeded, expected: http.StatusServiceUnavailable},
		{name: "upstream", err: errors.New("smtp: 421"), expected: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, httpStatus(tt.err))
		})
	}
}
