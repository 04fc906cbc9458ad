//go:build unit

package auth

import (
	"testing"
	"time"
)

func TestSessions_SignAndVerify(t *testing.T) {
	sessions := NewSessions("test-secret", time.Hour)

	token, err := sessions.Sign("Rehan")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, ok := sessions.Verify(token)
	if !ok {
		t.Fatal("freshly signed token should verify")
	}
	if claims.Subject != "Rehan" {
		t.Errorf("want subject Rehan; got %q", claims.Subject)
	}
	if claims.Role != RoleAdmin {
		t.Errorf("want role admin; got %q", claims.Role)
	}
}

func TestSessions_VerifyFailuresAreUniform(t *testing.T) {
	sessions := NewSessions("test-secret", time.Hour)
	token, err := sessions.Sign("Rehan")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("empty token", func(t *testing.T) {
		if _, ok := sessions.Verify(""); ok {
			t.Error("empty token must not verify")
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if _, ok := sessions.Verify("not.a.jwt"); ok {
			t.Error("garbage must not verify")
		}
	})

	t.Run("tampered token", func(t *testing.T) {
		tampered := token[:len(token)-2] + "xx"
		if _, ok := sessions.Verify(tampered); ok {
			t.Error("tampered token must not verify")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewSessions("other-secret", time.Hour)
		if _, ok := other.Verify(token); ok {
			t.Error("token signed with a different secret must not verify")
		}
	})

	t.Run("expired token", func(t *testing.T) {
		short := NewSessions("test-secret", time.Nanosecond)
		expired, err := short.Sign("Rehan")
		if err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
		if _, ok := short.Verify(expired); ok {
			t.Error("expired token must not verify")
		}
	})
}

func TestNewSessions_Defaults(t *testing.T) {
	sessions := NewSessions("", 0)

	if sessions.Lifetime() != 12*time.Hour {
		t.Errorf("want default 12h lifetime; got %v", sessions.Lifetime())
	}
	// The empty secret falls back to the dev secret rather than failing, so
	// misconfigured checkouts still come up.
	token, err := sessions.Sign("dev")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sessions.Verify(token); !ok {
		t.Error("fallback-secret token should verify against the same service")
	}
}
