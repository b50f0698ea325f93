package transform

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// ProfileTransform defines the interface for all what-if profile transformations.
// Transforms are composable operations that modify a household profile in predictable
// ways, enabling profile comparison and quick what-if runs from the CLI.
type ProfileTransform interface {
	// Apply returns a modified deep copy of base. The base is never mutated.
	Apply(base *domain.HouseholdProfile) (*domain.HouseholdProfile, error)

	// Name returns a short identifier for this transform (e.g., "adjust_sip").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks if the transform parameters are valid against base without applying it.
	Validate(base *domain.HouseholdProfile) error
}

// ApplyTransforms applies a sequence of transforms to a base profile.
// Transforms are applied in order, with each transform receiving the output of the previous one.
func ApplyTransforms(base *domain.HouseholdProfile, transforms []ProfileTransform) (*domain.HouseholdProfile, error) {
	if base == nil {
		return nil, fmt.Errorf("base profile cannot be nil")
	}

	if len(transforms) == 0 {
		return base.DeepCopy(), nil
	}

	current := base
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// Describe joins the descriptions of a transform chain
func Describe(transforms []ProfileTransform) []string {
	out := make([]string, 0, len(transforms))
	for _, t := range transforms {
		out = append(out, t.Description())
	}
	return out
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

func validateBase(name string, base *domain.HouseholdProfile) error {
	if base == nil {
		return NewTransformError(name, "validate", "base profile cannot be nil", nil)
	}
	return nil
}
