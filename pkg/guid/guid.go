// Package guid reads and writes IFC GlobalIds.
//
// A GlobalId is a 128-bit UUID stored as 22 characters of base-64 text using
// the alphabet A-Z a-z 0-9 with "_" and "$" in place of "+" and "/", without
// padding. The package converts between that form and the 32-digit hex form.
//
//	id := guid.New()                 // e.g. "HhxMGposTY6POgscLT5PUA"
//	hex, _ := guid.Expand(id)        // "1e1c4c1a9a2c4d8e8f3a0b1c2d3e4f50"
//	guid.Split(hex)                  // "1e1c4c1a-9a2c-4d8e-8f3a-0b1c2d3e4f50"
package guid

import (
	"encoding/base64"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/placegraph/pkg/errors"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_$"

var encoding = base64.NewEncoding(alphabet).WithPadding(base64.NoPadding)

var nonWord = regexp.MustCompile(`\W`)

// New generates a random UUID and returns its GlobalId.
func New() string {
	u := uuid.New()
	return encoding.EncodeToString(u[:])
}

// FromUUID returns the GlobalId of u.
func FromUUID(u uuid.UUID) string {
	return encoding.EncodeToString(u[:])
}

// Compress converts a hex UUID to a GlobalId. Separators are ignored and an
// odd number of digits is left-padded with a zero.
func Compress(hexUUID string) (string, error) {
	s := nonWord.ReplaceAllString(strings.ToLower(hexUUID), "")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid hex UUID %q", hexUUID)
	}
	return encoding.EncodeToString(b), nil
}

// Expand converts a GlobalId to its 32-digit lower-case hex UUID.
func Expand(globalID string) (string, error) {
	b, err := encoding.DecodeString(strings.TrimRight(globalID, "="))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidGlobalID, err, "invalid GlobalId %q", globalID)
	}
	return hex.EncodeToString(b), nil
}

// Split formats a 32-digit hex UUID as xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx.
// Shorter input is split as far as it goes.
func Split(hexUUID string) string {
	bounds := []int{8, 12, 16, 20}
	var parts []string
	start := 0
	for _, end := range bounds {
		if end >= len(hexUUID) {
			break
		}
		parts = append(parts, hexUUID[start:end])
		start = end
	}
	parts = append(parts, hexUUID[start:])
	return strings.Join(parts, "-")
}

// Parse returns the UUID of a GlobalId.
func Parse(globalID string) (uuid.UUID, error) {
	if err := errors.ValidateGlobalID(globalID); err != nil {
		return uuid.Nil, err
	}
	h, err := Expand(globalID)
	if err != nil {
		return uuid.Nil, err
	}
	u, err := uuid.Parse(Split(h))
	if err != nil {
		return uuid.Nil, errors.Wrap(errors.ErrCodeInvalidGlobalID, err, "invalid GlobalId %q", globalID)
	}
	return u, nil
}
