package redis

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/herbaria/plants-api/internal/core/domain"
	"github.com/herbaria/plants-api/internal/core/ports"
	"github.com/herbaria/plants-api/internal/pkg/otp"
)

// OTPStore is the Redis-backed pending-recovery store. Unlike the in-process
// store it survives restarts and is shared across instances. Expiry is
// delegated to key TTLs, so an aged-out code surfaces as "not found" rather
// than "expired".
// Key format: otp:<email>
type OTPStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOTPStore wraps the given Redis client. A non-positive ttl falls back to
// 10 minutes.
func NewOTPStore(client *redis.Client, ttl time.Duration) *OTPStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &OTPStore{client: client, ttl: ttl}
}

type otpRecord struct {
	Code     string `json:"code"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Request generates a fresh code and overwrites any pending record for email.
func (s *OTPStore) Request(ctx context.Context, email string, identity ports.Identity) (string, error) {
	code, err := otp.GenerateCode(rand.Reader)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(otpRecord{Code: code, Username: identity.Username, Email: identity.Email})
	if err != nil {
		return "", fmt.Errorf("marshal otp record: %w", err)
	}
	if err := s.client.Set(ctx, s.key(email), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}
	return code, nil
}

// Verify checks code against the pending record. A wrong guess leaves the
// record (and its TTL) untouched.
func (s *OTPStore) Verify(ctx context.Context, email, code string) (ports.Identity, error) {
	rec, err := s.get(ctx, email)
	if err != nil {
		return ports.Identity{}, err
	}
	if rec.Code != code {
		return ports.Identity{}, domain.ErrOTPInvalid
	}
	return ports.Identity{Username: rec.Username, Email: rec.Email}, nil
}

// Pending reports the identity of a live record without checking a code.
func (s *OTPStore) Pending(ctx context.Context, email string) (ports.Identity, error) {
	rec, err := s.get(ctx, email)
	if err != nil {
		return ports.Identity{}, err
	}
	return ports.Identity{Username: rec.Username, Email: rec.Email}, nil
}

// Consume deletes the pending record for email.
func (s *OTPStore) Consume(ctx context.Context, email string) error {
	return s.client.Del(ctx, s.key(email)).Err()
}

func (s *OTPStore) get(ctx context.Context, email string) (otpRecord, error) {
	raw, err := s.client.Get(ctx, s.key(email)).Bytes()
	if err == redis.Nil {
		return otpRecord{}, domain.ErrOTPNotFound
	}
	if err != nil {
		return otpRecord{}, fmt.Errorf("fetch otp: %w", err)
	}

	var rec otpRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return otpRecord{}, fmt.Errorf("unmarshal otp record: %w", err)
	}
	return rec, nil
}

func (s *OTPStore) key(email string) string {
	return "otp:" + email
}
