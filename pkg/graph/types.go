package graph

import "fmt"

// UnitType classifies an infrastructure unit by the service it provides.
type UnitType string

const (
	TypePower     UnitType = "power"
	TypeWater     UnitType = "water"
	TypeTelecom   UnitType = "telecom"
	TypeTransport UnitType = "transport"
)

// knownTypes is the set of unit types the boundary accepts. New service
// classes are added here; the engine itself treats the type as opaque.
var knownTypes = map[UnitType]bool{
	TypePower:     true,
	TypeWater:     true,
	TypeTelecom:   true,
	TypeTransport: true,
}

// ParseUnitType converts a free-text type parameter into a UnitType.
func ParseUnitType(s string) (UnitType, error) {
	t := UnitType(s)
	if !knownTypes[t] {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnitType, s)
	}
	return t, nil
}

// KnownUnitTypes returns the accepted unit types in declaration order.
func KnownUnitTypes() []UnitType {
	return []UnitType{TypePower, TypeWater, TypeTelecom, TypeTransport}
}

// UnitStatus is the reported operational state of a unit. It is carried
// through snapshots and responses but never consulted by traversal.
type UnitStatus string

const (
	StatusOperational UnitStatus = "operational"
	StatusDegraded    UnitStatus = "degraded"
	StatusFailed      UnitStatus = "failed"
)

// ParseUnitStatus converts a free-text status into a UnitStatus.
// Empty input defaults to operational.
func ParseUnitStatus(s string) (UnitStatus, error) {
	switch UnitStatus(s) {
	case "":
		return StatusOperational, nil
	case StatusOperational:
		return StatusOperational, nil
	case StatusDegraded:
		return StatusDegraded, nil
	case StatusFailed:
		return StatusFailed, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownUnitStatus, s)
	}
}

// Unit is a single piece of infrastructure: a substation, a water
// treatment plant, a telecom exchange, a transit hub.
type Unit struct {
	ID         string
	Name       string
	Type       UnitType
	Location   string
	Department string
	Status     UnitStatus
}

// Edge is a directed DependsOn relation: From requires To to be
// operational, so a failure of To can propagate to From.
type Edge struct {
	FromID string
	ToID   string
}
