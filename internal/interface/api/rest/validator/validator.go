package validator

import (
	"regexp"
	"strings"
)

// Access codes are exactly 8 alphanumeric characters, case-insensitive.
// Anything else is rejected before a store lookup is attempted.
const codeLength = 8

var codeRe = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// NormalizeCode validates the boundary code format and returns the
// uppercase form used internally.
func NormalizeCode(raw string) (string, bool) {
	code := strings.TrimSpace(raw)
	if len(code) != codeLength || !codeRe.MatchString(code) {
		return "", false
	}
	return strings.ToUpper(code), true
}

// IsBlobKey rejects anything that is not a plain `token.ext` style file
// name, keeping path fragments away from the blob store.
func IsBlobKey(key string) bool {
	if key == "" || len(key) > 128 {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '-' || r == '_':
		default:
			return false
		}
	}
	return !strings.Contains(key, "..")
}
