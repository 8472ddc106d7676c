package auth

import (
	"testing"
	"time"

	"github.com/vyavasthita/ecommerce/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	user := &models.User{ID: 3, Email: "ana@example.com"}
	token, err := tm.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.UserID != 3 || claims.Email != "ana@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Role != RoleCustomer {
		t.Fatalf("expected customer role, got %q", claims.Role)
	}
}

func TestGenerate_StaffRole(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.Generate(&models.User{ID: 1, Email: "ops@example.com", IsStaff: true})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.Role != RoleStaff {
		t.Fatalf("expected staff role, got %q", claims.Role)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Generate(&models.User{ID: 3, Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := NewTokenManager("secret-b", time.Hour).Parse(token); err == nil {
		t.Fatalf("expected signature verification to fail")
	}
}

func TestParse_ExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)

	token, err := tm.Generate(&models.User{ID: 3, Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := tm.Parse(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestParse_Garbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	if _, err := tm.Parse("not-a-token"); err == nil {
		t.Fatalf("expected parse error")
	}
}
