package api

import (
	"errors"
	"net/http"

	"github.com/example/startup-analytics/internal/auth"
	"github.com/example/startup-analytics/internal/domain/activity"
	"github.com/example/startup-analytics/internal/domain/dashboard"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, dashboard.ErrSnapshotNotFound):
		return http.StatusNotFound
	case errors.Is(err, dashboard.ErrUnknownRole),
		errors.Is(err, dashboard.ErrPersistence),
		errors.Is(err, activity.ErrInvalidType),
		errors.Is(err, activity.ErrInvalidUserID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// dashboardStatus answers every aggregation failure with 400, except an
// unauthenticated caller.
func dashboardStatus(err error) int {
	if errors.Is(err, auth.ErrUnauthenticated) {
		return http.StatusUnauthorized
	}
	return http.StatusBadRequest
}
