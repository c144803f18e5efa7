// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/docgrid/internal/core/record"
)

// Required validates a value is non-empty after trimming whitespace.
func Required(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

// RequiredField returns a criterio validator for required values.
func RequiredField(field, value string) error {
	return criterio.Run(field, value, Required)
}

// RecordID validates a server record id. Ids are used as a path segment, so
// whitespace and slashes are rejected.
func RecordID(id string) error {
	if id == "" {
		return fmt.Errorf("id is required")
	}
	if strings.ContainsAny(id, "/ \t\n") {
		return fmt.Errorf("id %q contains invalid characters", id)
	}
	return nil
}

// RecordIDField returns a criterio validator for record ids.
func RecordIDField(field, id string) error {
	return criterio.Run(field, id, RecordID)
}

// Assignments parses "field=value" pairs into record values. Every pair is
// checked; all failures are reported together.
func Assignments(pairs []string) (record.Values, error) {
	values := make(record.Values, len(pairs))
	var errs criterio.FieldErrorsBuilder

	for i, pair := range pairs {
		field := fmt.Sprintf("set[%d]", i)

		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			errs = errs.Append(field, fmt.Errorf("expected field=value, got %q", pair))
			continue
		}

		name, err := record.ParseField(strings.TrimSpace(name))
		if err != nil {
			errs = errs.Append(field, err)
			continue
		}

		values[name] = value
	}

	if err := errs.ToError(); err != nil {
		return nil, err
	}
	return values, nil
}
