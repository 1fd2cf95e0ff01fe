// Package otp implements the in-process store for pending password-recovery
// codes. State lives in one shared map per process and is lost on restart;
// the Redis-backed store is the durable alternative, selected at composition
// time.
package otp

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/herbaria/plants-api/internal/core/domain"
	"github.com/herbaria/plants-api/internal/core/ports"
)

const defaultTTL = 10 * time.Minute

type record struct {
	code      string
	expiresAt time.Time
	identity  ports.Identity
}

// MemoryStore is a mutex-guarded map from email to the single pending
// recovery record for that address.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]record
	ttl     time.Duration

	// injected for tests
	now  func() time.Time
	rand io.Reader
}

// NewMemoryStore returns a MemoryStore. A non-positive ttl falls back to
// 10 minutes.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &MemoryStore{
		records: make(map[string]record),
		ttl:     ttl,
		now:     time.Now,
		rand:    rand.Reader,
	}
}

// Request generates a fresh code for email, overwriting any pending record.
func (s *MemoryStore) Request(_ context.Context, email string, identity ports.Identity) (string, error) {
	code, err := GenerateCode(s.rand)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[email] = record{
		code:      code,
		expiresAt: s.now().Add(s.ttl),
		identity:  identity,
	}
	return code, nil
}

// Verify checks code against the pending record for email. A wrong guess
// leaves the record in place so retries remain possible until expiry; an
// expired record is deleted on sight.
func (s *MemoryStore) Verify(_ context.Context, email, code string) (ports.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[email]
	if !ok {
		return ports.Identity{}, domain.ErrOTPNotFound
	}
	if s.now().After(rec.expiresAt) {
		delete(s.records, email)
		return ports.Identity{}, domain.ErrOTPExpired
	}
	if rec.code != code {
		return ports.Identity{}, domain.ErrOTPInvalid
	}
	return rec.identity, nil
}

// Pending reports the identity of a live record without checking a code.
func (s *MemoryStore) Pending(_ context.Context, email string) (ports.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[email]
	if !ok {
		return ports.Identity{}, domain.ErrOTPNotFound
	}
	if s.now().After(rec.expiresAt) {
		delete(s.records, email)
		return ports.Identity{}, domain.ErrOTPExpired
	}
	return rec.identity, nil
}

// Consume deletes the pending record for email.
func (s *MemoryStore) Consume(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, email)
	return nil
}

// GenerateCode draws a uniform 6-digit numeric code, left-padded with zeros.
func GenerateCode(r io.Reader) (string, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return "", fmt.Errorf("draw otp: %w", err)
	}
	n := binary.BigEndian.Uint64(buf[:]) % 1000000
	return fmt.Sprintf("%06d", n), nil
}
