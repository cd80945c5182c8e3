package pkg

import (
	"crypto/rand"
	"fmt"

	"github.com/google/uuid"
)

const (
	roomCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	roomCodeLength   = 6
)

// GenerateRoomCode returns a 6-character room code over [0-9A-Z]. Random
// bytes are drawn with rejection sampling so every character of the
// alphabet is equally likely.
func GenerateRoomCode() (string, error) {
	// the largest multiple of len(roomCodeAlphabet) that fits in a byte
	limit := byte(256 - 256%len(roomCodeAlphabet))

	code := make([]byte, 0, roomCodeLength)
	buf := make([]byte, roomCodeLength)

	for len(code) < roomCodeLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}

		for _, b := range buf {
			if b >= limit {
				continue
			}

			code = append(code, roomCodeAlphabet[int(b)%len(roomCodeAlphabet)])
			if len(code) == roomCodeLength {
				break
			}
		}
	}

	return string(code), nil
}

// GenerateSessionID returns an opaque per-connection participant ID.
func GenerateSessionID() string {
	return uuid.NewString()
}
