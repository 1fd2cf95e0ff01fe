// Package password derives and verifies salted PBKDF2 digests.
//
// A digest is stored as "<salt>:<key>", both hex-encoded. The salt is drawn
// fresh for every Hash call and the hex form of the salt is what feeds the
// derivation, so digests are portable across processes that agree on the
// iteration count.
package password

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltBytes = 16
	keyBytes  = 64

	// DefaultIterations follows current PBKDF2-SHA512 guidance. The legacy
	// store used 1000; instances reading legacy digests must be constructed
	// with the matching count.
	DefaultIterations = 210000
)

// Hasher derives and checks password digests with a fixed iteration count.
type Hasher struct {
	iterations int
}

// New returns a Hasher. A non-positive iteration count falls back to
// DefaultIterations.
func New(iterations int) *Hasher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &Hasher{iterations: iterations}
}

// Hash derives a digest from plaintext under a fresh random salt.
func (h *Hasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("draw salt: %w", err)
	}
	saltHex := hex.EncodeToString(salt)
	key := pbkdf2.Key([]byte(plaintext), []byte(saltHex), h.iterations, keyBytes, sha512.New)
	return saltHex + ":" + hex.EncodeToString(key), nil
}

// Verify reports whether plaintext matches the stored digest. A malformed
// digest fails closed: the result is false, never an error that could leak
// whether the identity exists.
func (h *Hasher) Verify(plaintext, digest string) bool {
	saltHex, keyHex, ok := strings.Cut(digest, ":")
	if !ok || saltHex == "" {
		return false
	}
	stored, err := hex.DecodeString(keyHex)
	if err != nil || len(stored) == 0 {
		return false
	}
	derived := pbkdf2.Key([]byte(plaintext), []byte(saltHex), h.iterations, len(stored), sha512.New)
	return subtle.ConstantTimeCompare(derived, stored) == 1
}
