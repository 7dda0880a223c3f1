package consent

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewApprovalToken generates a random 256-bit approval token rendered as 64
// lowercase hex characters. Uniqueness is probabilistic, not enforced.
func NewApprovalToken() (string, error) {
	var raw [32]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", fmt.Errorf("generate approval token: %w", err)
	}
	return hex.EncodeToString(raw[:]), nil
}
