package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"github.com/rafabene/avantpro-blog/internal/domain/entities"
	"github.com/rafabene/avantpro-blog/internal/domain/errors"
	"github.com/rafabene/avantpro-blog/internal/domain/ports"
	"github.com/rafabene/avantpro-blog/internal/domain/repositories"
	"github.com/rafabene/avantpro-blog/internal/domain/valueobjects"
)

// placeholderSecretSize é o tamanho do segredo aleatório usado como senha
// de contas criadas via OAuth
const placeholderSecretSize = 32

// AuthService contém a lógica de registro, login e validação de tokens
type AuthService struct {
	users    repositories.UserRepository
	uow      ports.UnitOfWork
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	denylist ports.TokenDenylist
	oauth    ports.OAuthProvider
	logger   ports.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService cria um novo AuthService
func NewAuthService(
	users repositories.UserRepository,
	uow ports.UnitOfWork,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	denylist ports.TokenDenylist,
	oauth ports.OAuthProvider,
	logger ports.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		uow:      uow,
		hasher:   hasher,
		tokens:   tokens,
		denylist: denylist,
		oauth:    oauth,
		logger:   logger,
	}
}

// RegisterInput representa os dados para registrar um usuário
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register cria um usuário com senha
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*entities.User, error) {
	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.Validation(errors.ErrFieldRequired, "name")
	}

	s.logger.Info("registering user", "email", email.String())

	// Validar se email já existe
	existing, err := s.users.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Validation(errors.ErrEmailAlreadyExists, "email")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Registro concorrente com o mesmo email
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, errors.Validation(errors.ErrEmailAlreadyExists, "email")
		}
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login autentica por email e senha.
// Email inexistente e senha incorreta devolvem exatamente o mesmo erro.
func (s *AuthService) Login(ctx context.Context, rawEmail, password string) (ports.Token, *entities.User, error) {
	invalid := errors.Authentication(errors.ErrInvalidCredentials)

	var user *entities.User
	if email, err := valueobjects.NewEmail(rawEmail); err == nil {
		user, err = s.users.FindByEmail(ctx, email.String())
		if err != nil {
			return ports.Token{}, nil, err
		}
	}

	if user == nil {
		// Mantém o custo de uma verificação de hash
		_ = s.hasher.Compare(s.dummyPasswordHash(), password)
		s.logger.Warn("login failed")
		return ports.Token{}, nil, invalid
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.logger.Warn("login failed")
		return ports.Token{}, nil, invalid
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return ports.Token{}, nil, err
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return token, user, nil
}

// LoginWithOAuthToken autentica com um access token do Google, vinculando
// ou criando a conta local
func (s *AuthService) LoginWithOAuthToken(ctx context.Context, providerToken string) (ports.Token, *entities.User, error) {
	identity, err := s.oauth.FetchIdentity(ctx, providerToken)
	if err != nil {
		s.logger.Warn("oauth identity rejected", "error", err)
		return ports.Token{}, nil, errors.Authentication(errors.ErrInvalidOAuthToken)
	}

	email, err := valueobjects.NewEmail(identity.Email)
	if err != nil || identity.ID == "" {
		return ports.Token{}, nil, errors.Authentication(errors.ErrInvalidOAuthToken)
	}

	var user *entities.User
	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		var txErr error
		user, txErr = s.resolveOAuthUser(txCtx, identity, email)
		return txErr
	})
	if err != nil {
		return ports.Token{}, nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return ports.Token{}, nil, err
	}

	s.logger.Info("user logged in with google", "user_id", user.ID)
	return token, user, nil
}

func (s *AuthService) resolveOAuthUser(ctx context.Context, identity *ports.OAuthIdentity, email valueobjects.Email) (*entities.User, error) {
	user, err := s.users.FindByGoogleID(ctx, identity.ID)
	if err != nil || user != nil {
		return user, err
	}

	user, err = s.users.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if user != nil {
		// Conta já vinculada a outra identidade Google não é revinculada
		if user.HasGoogleAccount() {
			s.logger.Warn("google identity mismatch for linked account", "user_id", user.ID)
			return nil, errors.Authentication(errors.ErrInvalidOAuthToken)
		}
		user.LinkGoogle(identity.ID)
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
		s.logger.Info("google account linked", "user_id", user.ID)
		return user, nil
	}

	secret, err := randomSecret(placeholderSecretSize)
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(secret)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(identity.Name)
	if name == "" {
		name = email.String()
	}

	user = &entities.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}
	user.LinkGoogle(identity.ID)

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created from google", "user_id", user.ID)
	return user, nil
}

// Authenticate valida um bearer token e rejeita tokens revogados
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (ports.Token, error) {
	unauthorized := errors.Authentication(errors.ErrUnauthorized)

	if rawToken == "" {
		return ports.Token{}, unauthorized
	}

	token, err := s.tokens.Parse(rawToken)
	if err != nil {
		s.logger.Debug("token rejected", "error", err)
		return ports.Token{}, unauthorized
	}

	revoked, err := s.denylist.IsRevoked(ctx, token.ID)
	if err != nil {
		return ports.Token{}, err
	}
	if revoked {
		return ports.Token{}, unauthorized
	}

	return token, nil
}

// Logout revoga o token até sua expiração
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	token, err := s.Authenticate(ctx, rawToken)
	if err != nil {
		return err
	}

	if err := s.denylist.Revoke(ctx, token.ID, token.ExpiresAt); err != nil {
		return err
	}

	s.logger.Info("user logged out", "user_id", token.UserID)
	return nil
}

// CurrentUser busca o usuário autenticado
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*entities.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.NotFound(errors.ErrUserNotFound)
	}
	return user, nil
}

func (s *AuthService) dummyPasswordHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("dummy-password-for-timing")
		if err != nil {
			s.logger.Error("failed to build dummy hash", "error", err)
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func randomSecret(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
