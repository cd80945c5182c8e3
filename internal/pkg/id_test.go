package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRoomCode(t *testing.T) {
	// When: generating a batch of codes
	for i := 0; i < 100; i++ {
		code, err := GenerateRoomCode()

		// Then: every code is 6 characters over [0-9A-Z]
		require.NoError(t, err)
		assert.Regexp(t, `^[0-9A-Z]{6}$`, code)
	}
}

func TestGenerateRoomCode_CoversAlphabet(t *testing.T) {
	// When: generating a large batch of codes
	seen := make(map[byte]bool)
	for i := 0; i < 500; i++ {
		code, err := GenerateRoomCode()
		require.NoError(t, err)

		for j := 0; j < len(code); j++ {
			seen[code[j]] = true
		}
	}

	// Then: every character of the alphabet shows up
	for i := 0; i < len(roomCodeAlphabet); i++ {
		assert.True(t, seen[roomCodeAlphabet[i]], "character %q never generated", roomCodeAlphabet[i])
	}
}

func TestGenerateSessionID(t *testing.T) {
	// When: generating two session ids
	first := GenerateSessionID()
	second := GenerateSessionID()

	// Then: both are non-empty and distinct
	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}
