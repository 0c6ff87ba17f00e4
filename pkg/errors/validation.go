package errors

import (
	"regexp"
	"strings"
	"unicode"
)

const maxIDLength = 128

// ValidateID validates a page, session or component identifier.
// Identifiers end up in file names, Redis keys and URL paths, so the
// rules are conservative:
//   - not empty, at most 128 characters
//   - no control characters
//   - no path separators or traversal sequences
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "id cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidID, "id too long (max %d characters)", maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "id contains invalid control characters")
		}
	}
	for _, pattern := range []string{"..", "/", "\\", "\x00"} {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidID, "id contains invalid characters: %q", pattern)
		}
	}
	return nil
}

// typeNameRegex matches registry keys such as "hero", "product-grid" or "promo_banner".
var typeNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ValidateTypeName validates a component type key used by the registry.
func ValidateTypeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "component type cannot be empty")
	}
	if !typeNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid component type %q", name)
	}
	return nil
}
