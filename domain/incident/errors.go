package incident

import (
	"errors"
	"fmt"
	"strings"
)

// ErrResolutionConflict indicates a reference string matched more than one
// existing reference row. Resolution is exact-match, so this should not
// occur; when it does, the record fails rather than guessing.
var ErrResolutionConflict = errors.New("reference resolution conflict")

// ErrUnresolvableCampus indicates a record carried neither a recognizable
// campus code nor a campus name to fall back on.
var ErrUnresolvableCampus = errors.New("record campus cannot be resolved")

// IntegrityError reports referential-integrity or uniqueness violations found
// by the reconciliation verification pass. It is fatal to the batch and is
// surfaced to the operator, never patched automatically.
type IntegrityError struct {
	violations []string
}

// NewIntegrityError creates an IntegrityError from violation descriptions.
func NewIntegrityError(violations []string) *IntegrityError {
	return &IntegrityError{violations: violations}
}

// Violations returns the individual violation descriptions.
func (e *IntegrityError) Violations() []string {
	out := make([]string, len(e.violations))
	copy(out, e.violations)
	return out
}

// Error implements the error interface.
func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity violation: %s", strings.Join(e.violations, "; "))
}
