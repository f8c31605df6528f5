package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateName validates a human-readable object name.
//
// The validation rules are intentionally conservative:
//   - Empty names are allowed (IFC Name is optional)
//   - No control characters or null bytes
//   - Maximum length of 255 characters (IfcLabel)
func ValidateName(name string) error {
	if len(name) > 255 {
		return New(ErrCodeInvalidName, "name too long (max 255 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "name contains invalid control characters")
		}
	}

	return nil
}

// globalIDRegex matches the 22-character base-64 GlobalId alphabet.
var globalIDRegex = regexp.MustCompile(`^[0-9A-Za-z_$]{22}$`)

// ValidateGlobalID validates a compressed IFC GlobalId.
func ValidateGlobalID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidGlobalID, "GlobalId cannot be empty")
	}
	if len(id) != 22 {
		return New(ErrCodeInvalidGlobalID, "GlobalId must be 22 characters, got %d", len(id))
	}
	if !globalIDRegex.MatchString(id) {
		return New(ErrCodeInvalidGlobalID, "invalid GlobalId: %q", id)
	}
	return nil
}

// uuidHexRegex matches a 32-digit hex UUID with optional separators.
var uuidHexRegex = regexp.MustCompile(`^[0-9a-fA-F]{32}$`)

// ValidateUUIDHex validates a hex-encoded UUID. Dashes and braces are ignored.
func ValidateUUIDHex(s string) error {
	cleaned := strings.NewReplacer("-", "", "{", "", "}", "").Replace(s)
	if !uuidHexRegex.MatchString(cleaned) {
		return New(ErrCodeInvalidInput, "invalid UUID: %q", s)
	}
	return nil
}
