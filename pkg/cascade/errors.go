package cascade

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dd0wney/infragraph/pkg/graph"
)

// Common sentinel errors
var (
	ErrEmptyLocations = errors.New("location set is empty")
	ErrNoCandidates   = errors.New("no matching units")
)

// NotFoundError reports that no unit matched the requested type and
// location filter. It carries both so the caller can render a helpful
// message.
type NotFoundError struct {
	UnitType  graph.UnitType
	Locations []string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s units found in locations [%s]",
		e.UnitType, strings.Join(e.Locations, ", "))
}

// Unwrap lets errors.Is(err, ErrNoCandidates) match.
func (e *NotFoundError) Unwrap() error {
	return ErrNoCandidates
}

// IsNotFound returns true if the error indicates an empty candidate set.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNoCandidates)
}
