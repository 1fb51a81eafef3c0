package ports

import (
	"context"
	"time"
)

// Token é um bearer token emitido para um usuário
type Token struct {
	Value     string
	ID        string // jti
	UserID    string
	ExpiresAt time.Time
}

// TokenIssuer emite e valida bearer tokens
type TokenIssuer interface {
	Issue(userID string) (Token, error)
	Parse(raw string) (Token, error)
}

// TokenDenylist guarda tokens revogados até expirarem
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// PasswordHasher gera e verifica hashes de senha (one-way, com salt)
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// OAuthIdentity é a identidade verificada devolvida pelo provedor
type OAuthIdentity struct {
	ID    string
	Name  string
	Email string
}

// OAuthProvider troca um token do provedor por uma identidade verificada
type OAuthProvider interface {
	FetchIdentity(ctx context.Context, accessToken string) (*OAuthIdentity, error)
}
