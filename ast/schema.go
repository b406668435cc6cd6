package ast

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// SchemaVersion is the version of the JSON shape produced by MarshalJSON.
// Consumers pin it with a semver constraint.
const SchemaVersion = "1.0.0"

// ErrSchemaMismatch is returned when SchemaVersion doesn't satisfy a
// consumer's constraint.
var ErrSchemaMismatch = errors.New("AST schema mismatch")

// CheckSchema verifies that SchemaVersion satisfies the given constraint,
// e.g. "^1.0" or ">= 1.0, < 2".
func CheckSchema(constraint string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid schema constraint %q: %w", constraint, err)
	}

	v := semver.MustParse(SchemaVersion)
	if ok, errs := c.Validate(v); !ok {
		if len(errs) > 0 {
			return fmt.Errorf("%w: %v", ErrSchemaMismatch, errs[0])
		}
		return fmt.Errorf("%w: %s does not satisfy %q", ErrSchemaMismatch, SchemaVersion, constraint)
	}

	return nil
}
