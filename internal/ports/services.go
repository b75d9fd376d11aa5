package ports

import (
	"context"

	"github.com/savethegov/govbudget/internal/domain"
)

// Logger defines the structured logging interface used across usecases
type Logger interface {
	Info(ctx context.Context, message string, fields map[string]interface{})
	Error(ctx context.Context, message string, err error, fields map[string]interface{})
	Warn(ctx context.Context, message string, fields map[string]interface{})
	Debug(ctx context.Context, message string, fields map[string]interface{})
	WithFields(fields map[string]interface{}) Logger
}

// PasswordService defines the interface for credential hashing
type PasswordService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) (bool, error)
}

// TokenClaims carries the identity embedded in a session token
type TokenClaims struct {
	UserID   string
	Username string
	Role     string
}

// TokenService defines the interface for session token handling
type TokenService interface {
	GenerateToken(actor *domain.Actor) (string, error)
	ValidateToken(token string) (*TokenClaims, error)
}
