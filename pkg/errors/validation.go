package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePath validates an output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
//
// Absolute paths are allowed; output directories are chosen by the operator.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// gridNameRegex matches grid identifiers such as "Grid_3".
var gridNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{0,63}$`)

// ValidateGridName validates a grid identifier. Names end up in rendered
// labels, question text and file names, so they are kept to a safe subset.
func ValidateGridName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "grid name cannot be empty")
	}
	if !gridNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid grid name: %q", name)
	}
	return nil
}

// ValidateColorName validates a palette label. Labels may contain spaces
// ("Dark Red") but no control characters.
func ValidateColorName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidPalette, "color name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidPalette, "color name too long (max 64 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPalette, "color name contains invalid control characters")
		}
	}
	return nil
}
