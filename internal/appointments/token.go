package appointments

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewCancellationToken returns a 64-character hex token from 32 random
// bytes. The token is the only credential needed to cancel, so it has to be
// unguessable.
func NewCancellationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("appointments: generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
