package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"attendify/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// stateLifetime bounds how long a login redirect may take before the state
// parameter is considered stale.
const stateLifetime = 10 * time.Minute

// Userinfo is the identity payload Google returns for an access token. The
// backend only relies on the email and its verification flag.
type Userinfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GoogleConfig collects the OAuth client settings loaded from the env.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	StateSecret  string
}

// GoogleClient exchanges authorization codes for verified identities. The
// state parameter is an HS256-signed short-lived token so the callback can
// reject forged redirects without server-side state.
type GoogleClient struct {
	oauth       *oauth2.Config
	stateSecret []byte
	now         func() time.Time
}

// NewGoogleClient builds a client for the Google identity provider.
func NewGoogleClient(cfg GoogleConfig) *GoogleClient {
	return &GoogleClient{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		stateSecret: []byte(cfg.StateSecret),
		now:         time.Now,
	}
}

// LoginURL returns the Google consent URL with a freshly signed state.
func (g *GoogleClient) LoginURL() (string, error) {
	state, err := g.SignState()
	if err != nil {
		return "", err
	}
	return g.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

// SignState mints the signed state parameter for a login redirect.
func (g *GoogleClient) SignState() (string, error) {
	now := g.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"nonce": uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(stateLifetime).Unix(),
	})
	signed, err := token.SignedString(g.stateSecret)
	if err != nil {
		return "", apperror.Wrap(apperror.Upstream, "failed to sign oauth state", err)
	}
	return signed, nil
}

// VerifyState checks the signature and expiry of a returned state parameter.
func (g *GoogleClient) VerifyState(state string) error {
	token, err := jwt.Parse(state, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return g.stateSecret, nil
	}, jwt.WithTimeFunc(g.now))
	if err != nil || !token.Valid {
		return apperror.New(apperror.Unauthenticated, "invalid or expired login state")
	}
	return nil
}

// Exchange trades an authorization code for the caller's Google identity.
// Any upstream failure surfaces as an authentication failure; provider
// internals are never exposed.
func (g *GoogleClient) Exchange(ctx context.Context, code string) (Userinfo, error) {
	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return Userinfo{}, apperror.Wrap(apperror.Unauthenticated, "google code exchange failed", err)
	}

	resp, err := g.oauth.Client(ctx, token).Get(userinfoURL)
	if err != nil {
		return Userinfo{}, apperror.Wrap(apperror.Unauthenticated, "failed to fetch google userinfo", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Userinfo{}, apperror.New(apperror.Unauthenticated, "google userinfo request rejected")
	}

	var info Userinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return Userinfo{}, apperror.Wrap(apperror.Unauthenticated, "failed to decode google userinfo", err)
	}
	if info.Email == "" || !info.VerifiedEmail {
		return Userinfo{}, apperror.New(apperror.Unauthenticated, "google account email not verified")
	}
	return info, nil
}
