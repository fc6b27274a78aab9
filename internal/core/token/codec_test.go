package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNewCodec_WeakSecret(t *testing.T) {
	if _, err := NewCodec("", time.Hour); !errors.Is(err, ErrWeakSecret) {
		t.Fatalf("expected ErrWeakSecret for empty secret, got %v", err)
	}
	if _, err := NewCodec("short", time.Hour); !errors.Is(err, ErrWeakSecret) {
		t.Fatalf("expected ErrWeakSecret for short secret, got %v", err)
	}
	if _, err := NewCodec(testSecret, time.Hour); err != nil {
		t.Fatalf("expected 32-byte secret to be accepted, got %v", err)
	}
}

func TestNewCodec_DefaultTTL(t *testing.T) {
	c, err := NewCodec(testSecret, 0)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	if c.TTL() != DefaultTTL {
		t.Fatalf("expected default TTL %v, got %v", DefaultTTL, c.TTL())
	}
}

func TestCodec_IssueVerify_RoundTrip(t *testing.T) {
	c, err := NewCodec(testSecret, 24*time.Hour)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	now := time.Now().UTC()
	signed, err := c.Issue("alice@example.com", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	subject, err := c.Verify(signed, now)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if subject != "alice@example.com" {
		t.Fatalf("expected subject alice@example.com, got %q", subject)
	}
}

func TestCodec_Verify_ExpiryBoundary(t *testing.T) {
	ttl := 24 * time.Hour
	c, err := NewCodec(testSecret, ttl)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	issuedAt := time.Now().UTC()
	signed, err := c.Issue("alice@example.com", issuedAt)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := c.Verify(signed, issuedAt.Add(ttl-time.Second)); err != nil {
		t.Fatalf("token should still verify 1s before expiry: %v", err)
	}
	if _, err := c.Verify(signed, issuedAt.Add(ttl+time.Second)); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("token should fail verification 1s after expiry, got %v", err)
	}
}

func TestCodec_Verify_Tampered(t *testing.T) {
	c, err := NewCodec(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	now := time.Now().UTC()
	signed, err := c.Issue("alice@example.com", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flip the signature segment.
	parts := strings.Split(signed, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", signed)
	}
	forged := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	if _, err := c.Verify(forged, now); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for forged signature, got %v", err)
	}
}

func TestCodec_Verify_OtherSecret(t *testing.T) {
	c1, _ := NewCodec(testSecret, time.Hour)
	c2, _ := NewCodec("another-secret-with-32-characters!!", time.Hour)

	now := time.Now().UTC()
	signed, err := c1.Issue("alice@example.com", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := c2.Verify(signed, now); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken across secrets, got %v", err)
	}
}

func TestCodec_Verify_Malformed(t *testing.T) {
	c, _ := NewCodec(testSecret, time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := c.Verify(tok, time.Now().UTC()); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", tok, err)
		}
	}
}
