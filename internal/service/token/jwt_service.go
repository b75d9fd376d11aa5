package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/savethegov/govbudget/internal/domain"
	"github.com/savethegov/govbudget/internal/ports"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// JWTService issues and validates HS256 session tokens
type JWTService struct {
	secret     []byte
	expiration time.Duration
}

func NewJWTService(secret string, expiration time.Duration) *JWTService {
	if expiration == 0 {
		expiration = 24 * time.Hour
	}
	return &JWTService{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

var _ ports.TokenService = (*JWTService)(nil)

func (s *JWTService) GenerateToken(actor *domain.Actor) (string, error) {
	if actor == nil {
		return "", fmt.Errorf("actor cannot be nil")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  actor.ID.String(),
		"username": actor.Username,
		"role":     string(actor.Role),
		"exp":      now.Add(s.expiration).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*ports.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	username, ok := claims["username"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &ports.TokenClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
	}, nil
}
