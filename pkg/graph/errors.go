package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrUnknownUnit       = errors.New("unknown unit id")
	ErrDuplicateUnit     = errors.New("duplicate unit id")
	ErrEmptyUnitID       = errors.New("empty unit id")
	ErrUnknownUnitType   = errors.New("unknown unit type")
	ErrUnknownUnitStatus = errors.New("unknown unit status")
)

// BuildError provides structured error information for snapshot construction.
type BuildError struct {
	Op     string // Operation that failed (e.g., "index", "link")
	UnitID string // Unit involved, if any
	FromID string // Edge endpoints, if the failure is edge-related
	ToID   string
	Cause  error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.FromID != "" || e.ToID != "" {
		return fmt.Sprintf("%s edge %s -> %s: %v", e.Op, e.FromID, e.ToID, e.Cause)
	}
	if e.UnitID != "" {
		return fmt.Sprintf("%s unit %s: %v", e.Op, e.UnitID, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *BuildError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *BuildError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// unitBuildError creates a build error for a unit-level failure.
func unitBuildError(op, unitID string, cause error) error {
	return &BuildError{Op: op, UnitID: unitID, Cause: cause}
}

// edgeBuildError creates a build error for an edge-level failure.
func edgeBuildError(op, fromID, toID string, cause error) error {
	return &BuildError{Op: op, FromID: fromID, ToID: toID, Cause: cause}
}

// IsInvalidGraph returns true if the error indicates the supplied
// unit/edge lists cannot form a valid snapshot.
func IsInvalidGraph(err error) bool {
	return errors.Is(err, ErrUnknownUnit) ||
		errors.Is(err, ErrDuplicateUnit) ||
		errors.Is(err, ErrEmptyUnitID)
}
