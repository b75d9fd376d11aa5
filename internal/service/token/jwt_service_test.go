package token

import (
	"errors"
	"testing"
	"time"

	"github.com/savethegov/govbudget/internal/domain"
)

func TestJWTService(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour)
	member := domain.NewMember("minister_finance", "Avery Chen", domain.DomainFinance)

	t.Run("GenerateToken", func(t *testing.T) {
		token, err := service.GenerateToken(member)
		if err != nil {
			t.Errorf("Failed to generate token: %v", err)
		}
		if token == "" {
			t.Error("Token should not be empty")
		}
	})

	t.Run("GenerateTokenNilActor", func(t *testing.T) {
		if _, err := service.GenerateToken(nil); err == nil {
			t.Error("Should fail to generate token for nil actor")
		}
	})

	t.Run("ValidateToken", func(t *testing.T) {
		tokenString, err := service.GenerateToken(member)
		if err != nil {
			t.Fatalf("Failed to generate token: %v", err)
		}

		claims, err := service.ValidateToken(tokenString)
		if err != nil {
			t.Fatalf("Failed to validate token: %v", err)
		}
		if claims.UserID != member.ID.String() {
			t.Errorf("Expected user id %q, got %q", member.ID, claims.UserID)
		}
		if claims.Username != "minister_finance" {
			t.Errorf("Expected username 'minister_finance', got %q", claims.Username)
		}
		if claims.Role != string(domain.RoleMember) {
			t.Errorf("Expected role %q, got %q", domain.RoleMember, claims.Role)
		}
	})

	t.Run("ValidateInvalidToken", func(t *testing.T) {
		if _, err := service.ValidateToken("invalid-token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("ValidateWrongSecret", func(t *testing.T) {
		other := NewJWTService("other-secret", time.Hour)
		tokenString, err := other.GenerateToken(member)
		if err != nil {
			t.Fatalf("Failed to generate token: %v", err)
		}

		if _, err := service.ValidateToken(tokenString); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("ValidateExpiredToken", func(t *testing.T) {
		expired := NewJWTService("test-secret", -time.Minute)
		tokenString, err := expired.GenerateToken(member)
		if err != nil {
			t.Fatalf("Failed to generate token: %v", err)
		}

		if _, err := service.ValidateToken(tokenString); !errors.Is(err, ErrTokenExpired) {
			t.Errorf("Expected ErrTokenExpired, got %v", err)
		}
	})
}
