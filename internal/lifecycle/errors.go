package lifecycle

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// TextCodeDataConflict marks every uniqueness conflict this package
// raises, whether detected by the pre-check or by the storage layer.
const TextCodeDataConflict = "data_conflict"

// NewDataConflict reports that an active record already holds the
// given unique field values.
func NewDataConflict(fields []string, values []any) error {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s=%v", f, values[i])
	}
	return errors.New(
		fmt.Sprintf("an active record with %s already exists", strings.Join(parts, ", ")),
		errors.CategoryValidation,
	).
		WithTextCode(TextCodeDataConflict).
		WithCode(errors.CodeConflict).
		WithMetadata(map[string]any{"fields": fields})
}

// NewDualInactiveConflict reports that two distinct inactive records
// each hold one of the candidate's unique keys, so no single restore
// can satisfy the request.
func NewDualInactiveConflict(a, b uuid.UUID) error {
	return errors.New(
		"multiple deleted records hold the requested unique values; resolve them before retrying",
		errors.CategoryValidation,
	).
		WithTextCode(TextCodeDataConflict).
		WithCode(errors.CodeConflict).
		WithMetadata(map[string]any{"record_ids": []string{a.String(), b.String()}})
}

// IsDataConflict reports whether err is a uniqueness conflict raised
// by this package.
func IsDataConflict(err error) bool {
	var e *errors.Error
	if !errors.As(err, &e) {
		return false
	}
	return e.TextCode == TextCodeDataConflict
}
