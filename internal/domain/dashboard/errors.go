package dashboard

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownRole      = errors.New("unknown role")
	ErrPersistence      = errors.New("snapshot persistence failed")
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrNoSource         = errors.New("no source registered for facet")
)

// FacetUnavailableError records why one facet could not be fetched. It never
// leaves the orchestrator; the facet's field falls back to its default.
type FacetUnavailableError struct {
	Facet Facet
	Err   error
}

func (e *FacetUnavailableError) Error() string {
	return fmt.Sprintf("facet %s unavailable: %v", e.Facet, e.Err)
}

func (e *FacetUnavailableError) Unwrap() error { return e.Err }

// ActivityUnavailableError records a failed activity-log read. The snapshot
// is returned with an empty activity list instead.
type ActivityUnavailableError struct {
	UserID string
	Err    error
}

func (e *ActivityUnavailableError) Error() string {
	return fmt.Sprintf("recent activity unavailable: %v", e.Err)
}

func (e *ActivityUnavailableError) Unwrap() error { return e.Err }

// PersistenceError is returned when the snapshot upsert fails.
type PersistenceError struct {
	UserID string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", ErrPersistence, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// UnknownRoleError names the role that has no profile.
type UnknownRoleError struct {
	Role Role
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownRole, string(e.Role))
}

func (e *UnknownRoleError) Is(target error) bool { return target == ErrUnknownRole }
