package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/rafabene/avantpro-blog/internal/domain/ports"
)

// DefaultGoogleUserInfoURL é o endpoint OpenID de userinfo do Google
const DefaultGoogleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

var (
	ErrProviderRejected  = errors.New("oauth provider rejected token")
	ErrIncompleteProfile = errors.New("oauth profile missing id or email")
	ErrUnverifiedEmail   = errors.New("oauth profile email not verified")
)

// GoogleProvider implementa ports.OAuthProvider consultando o userinfo do Google
// com o access token recebido do cliente.
type GoogleProvider struct {
	userInfoURL string
	baseClient  *http.Client
}

// NewGoogleProvider cria o provider; baseClient nil usa um cliente com timeout de 10s
func NewGoogleProvider(userInfoURL string, baseClient *http.Client) *GoogleProvider {
	if userInfoURL == "" {
		userInfoURL = DefaultGoogleUserInfoURL
	}
	if baseClient == nil {
		baseClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &GoogleProvider{userInfoURL: userInfoURL, baseClient: baseClient}
}

type googleUserInfo struct {
	Sub           string `json:"sub"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

func (p *GoogleProvider) FetchIdentity(ctx context.Context, accessToken string) (*ports.OAuthIdentity, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, ErrProviderRejected
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.baseClient)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrProviderRejected, resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}

	if info.Sub == "" || info.Email == "" {
		return nil, ErrIncompleteProfile
	}

	// O email é usado para vincular contas locais
	if !info.EmailVerified {
		return nil, ErrUnverifiedEmail
	}

	return &ports.OAuthIdentity{
		ID:    info.Sub,
		Name:  firstNonEmpty(info.Name, info.Email),
		Email: info.Email,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
