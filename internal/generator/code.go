package generator

import (
	"strings"

	"github.com/google/uuid"
)

// NewVerificationCode returns the upper-cased first segment of a random
// UUID, e.g. "9F1C2A7B". Codes are not checked against existing ones; the
// 32 random bits of the segment are treated as unique enough.
func NewVerificationCode() string {
	id := uuid.NewString()
	segment, _, _ := strings.Cut(id, "-")
	return strings.ToUpper(segment)
}
