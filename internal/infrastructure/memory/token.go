package memory

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// newOpaqueToken mirrors the token shape of the redis stores so swapping
// backends never changes what clients see.
func newOpaqueToken(bytesLen int) (string, error) {
	if bytesLen <= 0 {
		return "", errors.New("invalid token length")
	}
	raw := make([]byte, bytesLen)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
