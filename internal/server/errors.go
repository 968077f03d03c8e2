package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Zachkp/portfolio/internal/contact"
)

// httpStatus returns the HTTP status code for an error.
func httpStatus(err error) int {
	var fieldErrs contact.FieldErrors
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &fieldErrs):
		return http.StatusUnprocessableEntity
	case errors.Is(err, contact.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func retentionText(d time.Duration) string {
	days := int(d / (24 * time.Hour))
	if days%30 == 0 && days >= 30 {
		months := days / 30
		if months == 1 {
			return "1 month"
		}
		return fmt.Sprintf("%d months", months)
	}
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
