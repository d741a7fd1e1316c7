package token

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var bearerRe = regexp.MustCompile(`(?i)^\s*bearer\s+(.*)$`)

// New returns a random 128-bit session token as 32 lowercase hex characters.
func New() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// FromHeader extracts the token from an Authorization header value.
// It returns "" when the header is absent or not of the form "Bearer <token>".
func FromHeader(header string) string {
	m := bearerRe.FindStringSubmatch(header)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
