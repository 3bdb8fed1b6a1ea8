// ABOUTME: Tests for PBKDF2 password hashing and verification.
// ABOUTME: Covers round trips, salts, encoded format, and malformed input.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/pbkdf2"
)

// Low iteration count keeps the suite fast; the format is identical.
const testIterations = 1000

func TestHashAndVerify(t *testing.T) {
	h := NewHasher(testIterations)

	encoded, err := h.Hash("pw1")
	require.NoError(t, err)

	ok, err := h.Verify(encoded, "pw1")
	require.NoError(t, err)
	assert.True(t, ok, "correct password should verify")

	ok, err = h.Verify(encoded, "wrong")
	require.NoError(t, err)
	assert.False(t, ok, "wrong password should not verify")
}

func TestHashFormat(t *testing.T) {
	h := NewHasher(testIterations)

	encoded, err := h.Hash("secret")
	require.NoError(t, err)

	parts := strings.Split(encoded, "$")
	require.Len(t, parts, 3)
	assert.Equal(t, "pbkdf2:sha256:1000", parts[0])
	assert.Len(t, parts[1], SaltLength)
	assert.Len(t, parts[2], KeyLength*2)

	for _, c := range parts[1] {
		assert.True(t, strings.ContainsRune(saltChars, c), "salt char %q not alphanumeric", c)
	}
}

func TestHashUsesFreshSalt(t *testing.T) {
	h := NewHasher(testIterations)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "two hashes of the same password should differ")
}

func TestEmptyPasswordIsAccepted(t *testing.T) {
	h := NewHasher(testIterations)

	encoded, err := h.Hash("")
	require.NoError(t, err)

	ok, err := h.Verify(encoded, "")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyReadsIterationsFromHash(t *testing.T) {
	// Hash with one iteration count, verify with a hasher configured for another.
	encoded, err := NewHasher(2000).Hash("pw")
	require.NoError(t, err)

	ok, err := NewHasher(testIterations).Verify(encoded, "pw")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyKnownVector(t *testing.T) {
	salt := "abcdefgh12345678"
	key := pbkdf2.Key([]byte("hunter2"), []byte(salt), 1000, 32, sha256.New)
	encoded := "pbkdf2:sha256:1000$" + salt + "$" + hex.EncodeToString(key)

	ok, err := DefaultHasher().Verify(encoded, "hunter2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyWithoutIterationsUsesDefault(t *testing.T) {
	salt := "saltsaltsaltsalt"
	key := pbkdf2.Key([]byte("pw"), []byte(salt), DefaultIterations, 32, sha256.New)
	encoded := "pbkdf2:sha256$" + salt + "$" + hex.EncodeToString(key)

	ok, err := DefaultHasher().Verify(encoded, "pw")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyMalformed(t *testing.T) {
	h := NewHasher(testIterations)

	tests := []struct {
		name    string
		encoded string
		wantErr error
	}{
		{"empty", "", ErrMalformedHash},
		{"no separators", "pbkdf2:sha256:1000", ErrMalformedHash},
		{"bad method", "scrypt:32768:8:1$salt$abcd", ErrUnsupportedHash},
		{"bad digest", "pbkdf2:sha1:1000$salt$abcd", ErrUnsupportedHash},
		{"bad iterations", "pbkdf2:sha256:many$salt$abcd", ErrInvalidIterations},
		{"zero iterations", "pbkdf2:sha256:0$salt$abcd", ErrInvalidIterations},
		{"non-hex digest", "pbkdf2:sha256:1000$salt$zzzz", ErrMalformedHash},
		{"empty digest", "pbkdf2:sha256:1000$salt$", ErrMalformedHash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := h.Verify(tt.encoded, "pw")
			assert.False(t, ok)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestNewHasherDefaults(t *testing.T) {
	assert.Equal(t, DefaultIterations, NewHasher(0).Iterations())
	assert.Equal(t, DefaultIterations, NewHasher(-5).Iterations())
	assert.Equal(t, DefaultIterations, DefaultHasher().Iterations())
	assert.Equal(t, 42, NewHasher(42).Iterations())
}

func TestGenerateSalt(t *testing.T) {
	salt, err := generateSalt(64)
	require.NoError(t, err)
	assert.Len(t, salt, 64)
}
