package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/facility-attendance-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth boundary errors
	switch {
	case errors.Is(err, user.ErrInvalidToken), errors.Is(err, user.ErrMissingIdentity):
		Unauthorized(w, err.Error())
		return
	case errors.Is(err, user.ErrRoleMissing), errors.Is(err, user.ErrUnknownRole),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())
		return
	}

	// Attendance domain errors
	switch attendance.KindOf(err) {
	case attendance.ErrInvalidInput:
		BadRequest(w, err.Error(), nil)
	case attendance.ErrNotFound:
		NotFound(w, err.Error())
	case attendance.ErrForbidden:
		Forbidden(w, err.Error())
	case attendance.ErrConflict, attendance.ErrDuplicateRecord:
		Conflict(w, err.Error())

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
