package token

import (
	"testing"
	"time"
)

func TestCodec_RoundTrip(t *testing.T) {
	c := NewCodec("secret", time.Hour)

	tok, err := c.Issue("alice", "a@x.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := c.Decode(tok)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if claims.Username != "alice" || claims.Email != "a@x.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.IssuedAt.Time.Before(claims.ExpiresAt.Time) {
		t.Fatalf("expected issued-at %v before expiry %v", claims.IssuedAt, claims.ExpiresAt)
	}
}

func TestCodec_ExpiredTokenRejected(t *testing.T) {
	c := NewCodec("secret", time.Hour)

	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return issuedAt }
	tok, err := c.Issue("alice", "a@x.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	c.now = func() time.Time { return issuedAt.Add(61 * time.Minute) }
	if _, err := c.Decode(tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestCodec_TamperedTokenRejected(t *testing.T) {
	issuer := NewCodec("secret-a", time.Hour)
	verifier := NewCodec("secret-b", time.Hour)

	tok, err := issuer.Issue("alice", "a@x.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := verifier.Decode(tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestCodec_MalformedTokenRejected(t *testing.T) {
	c := NewCodec("secret", time.Hour)

	for _, tok := range []string{"", "garbage", "a.b.c", "eyJub3QiOiJhand0In0"} {
		if _, err := c.Decode(tok); err != ErrInvalidToken {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", tok, err)
		}
	}
}

func TestCodec_DefaultTTL(t *testing.T) {
	c := NewCodec("secret", 0)
	if c.TTL() != 24*time.Hour {
		t.Fatalf("expected 24h default TTL, got %v", c.TTL())
	}
}
