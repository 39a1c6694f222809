package token

import (
	"errors"
	"testing"

	"csrf-hub/internal/domain"

	"github.com/stretchr/testify/assert"
)

const testSecret = "a-secure-csrf-secret-value-that-is-long-enough"

func TestHMACCodec_Issue(t *testing.T) {
	codec := NewHMACCodec(testSecret)

	token, err := codec.Issue("session-token-123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestHMACCodec_Deterministic(t *testing.T) {
	codec := NewHMACCodec(testSecret)

	token1, _ := codec.Issue("session-token-123")
	token2, _ := codec.Issue("session-token-123")
	assert.Equal(t, token1, token2)
}

func TestHMACCodec_EmptySecret(t *testing.T) {
	codec := NewHMACCodec("")

	token, err := codec.Issue("session-token-123")
	assert.Empty(t, token)
	assert.True(t, errors.Is(err, domain.ErrCSRFSecretMissing))
}

func TestHMACCodec_VerifyRoundTrip(t *testing.T) {
	codec := NewHMACCodec(testSecret)

	token, err := codec.Issue("session-token-123")
	assert.NoError(t, err)
	assert.True(t, codec.Verify(token, "session-token-123"))
}

func TestHMACCodec_SessionBinding(t *testing.T) {
	codec := NewHMACCodec(testSecret)

	token, _ := codec.Issue("session-token-123")
	assert.False(t, codec.Verify(token, "session-token-456"),
		"a token issued for one session must not verify for another")
}

func TestHMACCodec_DifferentSecrets(t *testing.T) {
	codec1 := NewHMACCodec(testSecret)
	codec2 := NewHMACCodec("another-secret-that-is-also-long-enough-here")

	token, _ := codec1.Issue("session-token-123")
	assert.False(t, codec2.Verify(token, "session-token-123"))
}

func TestHMACCodec_TamperSensitivity(t *testing.T) {
	codec := NewHMACCodec(testSecret)

	token, _ := codec.Issue("session-token-123")

	// Flipping any single character must invalidate the token.
	for i := 0; i < len(token); i++ {
		tampered := []byte(token)
		if tampered[i] == 'A' {
			tampered[i] = 'B'
		} else {
			tampered[i] = 'A'
		}
		assert.False(t, codec.Verify(string(tampered), "session-token-123"),
			"tampered token at position %d should not verify", i)
	}
}

func TestHMACCodec_MalformedPresented(t *testing.T) {
	codec := NewHMACCodec(testSecret)

	tests := []struct {
		name      string
		presented string
	}{
		{"empty token", ""},
		{"not base64", "!!!not-a-token!!!"},
		{"truncated token", "abc"},
		{"overlong token", "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, codec.Verify(tt.presented, "session-token-123"))
		})
	}
}
