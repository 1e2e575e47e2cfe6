package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IdentityVerifier resolves an opaque bearer credential to the stable
// subject identifier the provider issued for the user. It is constructed
// once at startup and shared by all request handlers.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (string, error)
}

// JWTVerifier verifies HS256-signed tokens whose subject claim carries the
// provider subject-id.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(ctx context.Context, credential string) (string, error) {
	token, err := jwt.Parse(credential, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrInvalidToken
	}
	return subject, nil
}

// Issue signs a short-lived token for the given subject. Only the dev-mode
// bootstrap route uses this; in production tokens come from the identity
// provider.
func (v *JWTVerifier) Issue(subjectID string, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
