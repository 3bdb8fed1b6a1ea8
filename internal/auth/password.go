// ABOUTME: PBKDF2-HMAC-SHA256 password hashing with per-hash random salts.
// ABOUTME: Encodes hashes as pbkdf2:sha256:<iterations>$<salt>$<hex digest>.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Hash parameters. The encoded form matches the one produced by the
// original Flask deployment, so existing databases keep verifying.
const (
	Method            = "pbkdf2"
	Digest            = "sha256"
	DefaultIterations = 600000
	SaltLength        = 16
	KeyLength         = sha256.Size
)

const saltChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	ErrMalformedHash     = errors.New("malformed password hash")
	ErrUnsupportedHash   = errors.New("unsupported password hash method")
	ErrInvalidIterations = errors.New("invalid iteration count")
)

// Hasher hashes and verifies passwords with a fixed iteration count.
type Hasher struct {
	iterations int
}

// NewHasher returns a Hasher using the given iteration count.
// A non-positive count selects DefaultIterations.
func NewHasher(iterations int) *Hasher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &Hasher{iterations: iterations}
}

// DefaultHasher returns a Hasher with the production parameters.
func DefaultHasher() *Hasher {
	return NewHasher(DefaultIterations)
}

// Iterations returns the iteration count used for new hashes.
func (h *Hasher) Iterations() int {
	return h.iterations
}

// Hash derives a new encoded hash for password using a fresh salt.
func (h *Hasher) Hash(password string) (string, error) {
	salt, err := generateSalt(SaltLength)
	if err != nil {
		return "", err
	}
	key := derive(password, salt, h.iterations)
	return fmt.Sprintf("%s:%s:%d$%s$%s", Method, Digest, h.iterations, salt, hex.EncodeToString(key)), nil
}

// Verify reports whether password matches the encoded hash. The iteration
// count is taken from the encoded hash, not from the Hasher.
func (h *Hasher) Verify(encoded, password string) (bool, error) {
	iterations, salt, want, err := parse(encoded)
	if err != nil {
		return false, err
	}
	got := derive(password, salt, iterations)
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func derive(password, salt string, iterations int) []byte {
	return pbkdf2.Key([]byte(password), []byte(salt), iterations, KeyLength, sha256.New)
}

// parse splits an encoded hash into its iteration count, salt and digest.
func parse(encoded string) (int, string, []byte, error) {
	parts := strings.SplitN(encoded, "$", 3)
	if len(parts) != 3 {
		return 0, "", nil, ErrMalformedHash
	}
	method, salt, digest := parts[0], parts[1], parts[2]

	fields := strings.Split(method, ":")
	if len(fields) < 2 || fields[0] != Method || fields[1] != Digest {
		return 0, "", nil, fmt.Errorf("%w: %s", ErrUnsupportedHash, method)
	}

	iterations := DefaultIterations
	if len(fields) == 3 {
		n, err := strconv.Atoi(fields[2])
		if err != nil || n <= 0 {
			return 0, "", nil, fmt.Errorf("%w: %s", ErrInvalidIterations, fields[2])
		}
		iterations = n
	} else if len(fields) > 3 {
		return 0, "", nil, ErrMalformedHash
	}

	want, err := hex.DecodeString(digest)
	if err != nil || len(want) == 0 {
		return 0, "", nil, ErrMalformedHash
	}

	return iterations, salt, want, nil
}

// generateSalt returns n random alphanumeric characters.
func generateSalt(n int) (string, error) {
	// 248 is the largest multiple of len(saltChars) below 256; rejecting
	// bytes above it keeps the choice uniform.
	const limit = 256 - 256%len(saltChars)

	out := make([]byte, 0, n)
	buf := make([]byte, n*2)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("generate salt: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, saltChars[int(b)%len(saltChars)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
