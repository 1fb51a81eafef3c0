package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rafabene/avantpro-blog/internal/domain/ports"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// JWTIssuer implementa ports.TokenIssuer com HS256
type JWTIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTIssuer cria um emissor de tokens; now pode ser nil (usa time.Now)
func NewJWTIssuer(secret, issuer string, ttl time.Duration, now func() time.Time) *JWTIssuer {
	if now == nil {
		now = time.Now
	}
	return &JWTIssuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    now,
	}
}

// Issue emite um token vinculado ao id do usuário (claim sub)
func (i *JWTIssuer) Issue(userID string) (ports.Token, error) {
	now := i.now().UTC()
	expiresAt := now.Add(i.ttl)

	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID,
		Issuer:    i.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return ports.Token{}, fmt.Errorf("sign token: %w", err)
	}

	return ports.Token{
		Value:     signed,
		ID:        claims.ID,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}, nil
}

// Parse valida assinatura, emissor e expiração
func (i *JWTIssuer) Parse(raw string) (ports.Token, error) {
	var claims jwt.RegisteredClaims

	_, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ports.Token{}, ErrExpiredToken
		}
		return ports.Token{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" || claims.ID == "" {
		return ports.Token{}, fmt.Errorf("%w: missing sub or jti", ErrInvalidToken)
	}

	return ports.Token{
		Value:     raw,
		ID:        claims.ID,
		UserID:    claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
