package authorization

import (
	"testing"
	"time"

	"github.com/cristalhq/jwt/v4"

	"stayvista_service/domain"
)

func TestIssueAndVerify(t *testing.T) {
	manager := NewTokenManager("test-secret")

	token, expiry, err := manager.Issue("guest@mail.com")
	if err != nil {
		t.Fatalf("unexpected error issuing token: %s", err)
	}
	if token == "" {
		t.Fatal("expected a token string")
	}

	lifetime := time.Until(expiry)
	if lifetime < TokenLifetime-time.Minute || lifetime > TokenLifetime+time.Minute {
		t.Errorf("expected roughly %s lifetime, got %s", TokenLifetime, lifetime)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("unexpected error verifying token: %s", err)
	}
	if claims.Email != "guest@mail.com" {
		t.Errorf("expected email claim, got %q", claims.Email)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-one").Issue("guest@mail.com")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if _, err := NewTokenManager("secret-two").Verify(token); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	manager := NewTokenManager("test-secret")

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := manager.Verify(token); err == nil {
			t.Errorf("expected %q to be rejected", token)
		}
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	secret := "test-secret"
	signer, err := jwt.NewSignerHS(jwt.HS256, []byte(secret))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	now := time.Now().UTC()
	expired, err := jwt.NewBuilder(signer).Build(&domain.Claims{
		Email:     "guest@mail.com",
		IssuedAt:  now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if _, err := NewTokenManager(secret).Verify(expired.String()); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestVerifyRejectsMissingEmail(t *testing.T) {
	secret := "test-secret"
	signer, err := jwt.NewSignerHS(jwt.HS256, []byte(secret))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	now := time.Now().UTC()
	anonymous, err := jwt.NewBuilder(signer).Build(&domain.Claims{
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if _, err := NewTokenManager(secret).Verify(anonymous.String()); err == nil {
		t.Fatal("expected token without email claim to be rejected")
	}
}
