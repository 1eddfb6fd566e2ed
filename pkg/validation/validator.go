// Package validation guards the request boundary: free-text query
// parameters become a validated unit type and a deduplicated location
// set before the engine sees them.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/infragraph/pkg/graph"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	MaxLocations      = 50
	MaxLocationLength = 100
)

func init() {
	validate = validator.New()
}

// RootCauseRequest is the payload of a root-cause analysis query.
type RootCauseRequest struct {
	Type      string   `json:"type" validate:"required,min=1,max=50"`
	Locations []string `json:"locations" validate:"required,min=1"`
}

// RegionRequest is the payload of a region analysis query.
type RegionRequest struct {
	Locations []string `json:"locations" validate:"required,min=1"`
}

// ValidateRootCauseRequest checks the request and returns the parsed
// unit type and normalized location set.
func ValidateRootCauseRequest(req *RootCauseRequest) (graph.UnitType, []string, error) {
	if req == nil {
		return "", nil, errors.New("root cause request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return "", nil, formatValidationError(err)
	}

	unitType, err := graph.ParseUnitType(strings.TrimSpace(strings.ToLower(req.Type)))
	if err != nil {
		return "", nil, err
	}

	locations, err := NormalizeLocations(req.Locations)
	if err != nil {
		return "", nil, err
	}
	return unitType, locations, nil
}

// ValidateRegionRequest checks the request and returns the normalized
// location set.
func ValidateRegionRequest(req *RegionRequest) ([]string, error) {
	if req == nil {
		return nil, errors.New("region request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}
	return NormalizeLocations(req.Locations)
}

// NormalizeLocations trims and deduplicates locations, preserving first
// occurrence order. All-blank input is rejected.
func NormalizeLocations(locations []string) ([]string, error) {
	if len(locations) > MaxLocations {
		return nil, fmt.Errorf("Locations: maximum %d locations allowed, got %d", MaxLocations, len(locations))
	}

	seen := make(map[string]bool, len(locations))
	out := make([]string, 0, len(locations))
	for _, loc := range locations {
		loc = strings.TrimSpace(loc)
		if loc == "" {
			continue
		}
		if len(loc) > MaxLocationLength {
			return nil, fmt.Errorf("Locations: %q exceeds maximum length of %d characters", loc, MaxLocationLength)
		}
		if seen[loc] {
			continue
		}
		seen[loc] = true
		out = append(out, loc)
	}

	if len(out) == 0 {
		return nil, errors.New("Locations: at least one non-blank location is required")
	}
	return out, nil
}

// ParseLocationList splits a comma-joined location parameter, as used in
// query strings, into a normalized location set.
func ParseLocationList(s string) ([]string, error) {
	return NormalizeLocations(strings.Split(s, ","))
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	for _, e := range validationErrs {
		field := e.Field()
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, e.Param())
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, e.Param())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}
	return err
}
