package helpers

import (
	"testing"
	"time"

	"github.com/busca-app/cacapreco-api/internal/domain/entity"
)

const testSecret = "this-is-a-test-secret-with-32-bytes!"

func TestGenerateAndParseToken(t *testing.T) {
	m := NewJWTManager(testSecret, time.Hour)

	token, exp, err := m.GenerateToken(42, entity.RoleVendedor)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if until := time.Until(exp); until < 59*time.Minute || until > time.Hour {
		t.Errorf("expected ~1h expiry, got %v", until)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected uid 42, got %d", claims.UserID)
	}
	if !claims.Tipo.Is(entity.RoleVendedor) {
		t.Errorf("expected tipo Vendedor, got %s", claims.Tipo)
	}
}

func TestParseToken_Expired(t *testing.T) {
	m := NewJWTManager(testSecret, -time.Minute)

	token, _, err := m.GenerateToken(42, entity.RoleCliente)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := m.ParseToken(token); err == nil {
		t.Fatal("expected expired token to fail validation")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, _, err := NewJWTManager(testSecret, time.Hour).GenerateToken(42, entity.RoleCliente)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := NewJWTManager("another-secret-entirely-32-bytes!!", time.Hour).ParseToken(token); err == nil {
		t.Fatal("expected signature mismatch to fail validation")
	}
}

func TestParseToken_Garbage(t *testing.T) {
	m := NewJWTManager(testSecret, time.Hour)
	if _, err := m.ParseToken("not.a.token"); err == nil {
		t.Fatal("expected garbage token to fail validation")
	}
}

func TestGenVerificationCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenVerificationCode()
		if err != nil {
			t.Fatalf("GenVerificationCode: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("non-digit in code %q", code)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("codes do not look random")
	}
}
