package errors

import (
	"strings"
	"unicode"
)

// MaxIDLength bounds bead identifiers accepted at the input boundary.
const MaxIDLength = 256

// ValidateID validates a bead identifier.
//
// The rules are intentionally small:
//   - No empty ids
//   - No control characters or null bytes
//   - Maximum length of MaxIDLength bytes
//
// The engine itself treats ids as opaque strings; this check only guards
// the boundary so that malformed input is reported as a parse error.
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "bead id cannot be empty")
	}

	if len(id) > MaxIDLength {
		return New(ErrCodeInvalidID, "bead id too long (max %d characters)", MaxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "bead id %q contains control characters", id)
		}
	}

	return nil
}

// ValidatePath validates a file path supplied to a loader.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "path contains null bytes")
	}

	return nil
}
