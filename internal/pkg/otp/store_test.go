package otp

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/herbaria/plants-api/internal/core/domain"
	"github.com/herbaria/plants-api/internal/core/ports"
)

var codePattern = regexp.MustCompile(`^\d{6}$`)

func newTestStore(t *testing.T) (*MemoryStore, *time.Time) {
	t.Helper()
	s := NewMemoryStore(10 * time.Minute)
	current := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }
	return s, &current
}

func TestMemoryStore_Lifecycle(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	identity := ports.Identity{Username: "alice", Email: "a@x.com"}

	code, err := s.Request(ctx, "a@x.com", identity)
	if err != nil {
		t.Fatalf("Request returned error: %v", err)
	}
	if !codePattern.MatchString(code) {
		t.Fatalf("expected 6-digit code, got %q", code)
	}

	// A wrong guess leaves the record intact.
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	if _, err := s.Verify(ctx, "a@x.com", wrong); !errors.Is(err, domain.ErrOTPInvalid) {
		t.Fatalf("expected ErrOTPInvalid, got %v", err)
	}

	got, err := s.Verify(ctx, "a@x.com", code)
	if err != nil {
		t.Fatalf("Verify returned error after wrong guess: %v", err)
	}
	if got != identity {
		t.Fatalf("unexpected identity: %+v", got)
	}

	// Verification does not consume: the record survives for the reset step.
	if _, err := s.Pending(ctx, "a@x.com"); err != nil {
		t.Fatalf("expected pending record after verify, got %v", err)
	}

	if err := s.Consume(ctx, "a@x.com"); err != nil {
		t.Fatalf("Consume returned error: %v", err)
	}
	if _, err := s.Pending(ctx, "a@x.com"); !errors.Is(err, domain.ErrOTPNotFound) {
		t.Fatalf("expected ErrOTPNotFound after consume, got %v", err)
	}
}

func TestMemoryStore_UnknownEmail(t *testing.T) {
	s, _ := newTestStore(t)

	if _, err := s.Verify(context.Background(), "ghost@x.com", "123456"); !errors.Is(err, domain.ErrOTPNotFound) {
		t.Fatalf("expected ErrOTPNotFound, got %v", err)
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	s, current := newTestStore(t)
	ctx := context.Background()

	code, err := s.Request(ctx, "a@x.com", ports.Identity{Username: "alice", Email: "a@x.com"})
	if err != nil {
		t.Fatalf("Request returned error: %v", err)
	}

	*current = current.Add(11 * time.Minute)

	if _, err := s.Verify(ctx, "a@x.com", code); !errors.Is(err, domain.ErrOTPExpired) {
		t.Fatalf("expected ErrOTPExpired, got %v", err)
	}
	// The expired record was deleted on sight.
	if _, err := s.Verify(ctx, "a@x.com", code); !errors.Is(err, domain.ErrOTPNotFound) {
		t.Fatalf("expected ErrOTPNotFound after expiry deletion, got %v", err)
	}
}

func TestMemoryStore_RequestOverwrites(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	identity := ports.Identity{Username: "alice", Email: "a@x.com"}

	first, err := s.Request(ctx, "a@x.com", identity)
	if err != nil {
		t.Fatalf("Request returned error: %v", err)
	}
	second, err := s.Request(ctx, "a@x.com", identity)
	if err != nil {
		t.Fatalf("Request returned error: %v", err)
	}

	if first != second {
		if _, err := s.Verify(ctx, "a@x.com", first); !errors.Is(err, domain.ErrOTPInvalid) {
			t.Fatalf("expected stale code to be invalid, got %v", err)
		}
	}
	if _, err := s.Verify(ctx, "a@x.com", second); err != nil {
		t.Fatalf("expected newest code to verify, got %v", err)
	}
}

func TestGenerateCode_ZeroPadded(t *testing.T) {
	code, err := GenerateCode(bytes.NewReader(make([]byte, 8)))
	if err != nil {
		t.Fatalf("GenerateCode returned error: %v", err)
	}
	if code != "000000" {
		t.Fatalf("expected zero draw to produce %q, got %q", "000000", code)
	}
}
