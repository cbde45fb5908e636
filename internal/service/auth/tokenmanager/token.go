package tokenmanager

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/crediya/auth/internal/apperrors"
	"github.com/crediya/auth/internal/models"
)

const (
	defaultSigningMethod   = "HS256"
	defaultAccessTokenTTL  = 60 * time.Second
	defaultRefreshTokenTTL = 15 * time.Minute
)

// Token kinds carried in the 'kind' claim
// An explicit typed claim instead of tagging the subject string,
// so a refresh token can never pass an access token check
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

// Claims is the typed token payload
// Parsed once at the trust boundary: no string-keyed maps past this package
type Claims struct {
	jwt.RegisteredClaims
	Kind  string   `json:"kind"`
	UID   int64    `json:"uid,omitempty"`
	Email string   `json:"email"`
	Name  string   `json:"name,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

// Token manager with sensible defaults
type Config struct {
	// Secret key to sign tokens
	// Required to be set
	SecretKey string

	// JWT MAC (Message Authentication Code) algorithm
	// If not set the default is used
	Alg string

	// Access and refresh token lifetimes
	// If not set the defaults are used
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// TokenManager issues and validates signed time-bounded tokens
// The key is set once at construction and never mutated,
// so a single instance is safe for concurrent use
type TokenManager struct {
	key        string
	alg        jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func New(cfg Config) (*TokenManager, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("secret key must not be empty")
	}

	if cfg.Alg == "" {
		cfg.Alg = defaultSigningMethod
	}

	setDefaultDuration := func(field *time.Duration, def time.Duration) {
		if *field == 0 {
			*field = def
		}
	}
	setDefaultDuration(&cfg.AccessTTL, defaultAccessTokenTTL)
	setDefaultDuration(&cfg.RefreshTTL, defaultRefreshTokenTTL)

	if cfg.AccessTTL >= cfg.RefreshTTL {
		return nil, errors.New("access token TTL must be shorter than refresh token TTL")
	}

	return &TokenManager{
		key:        cfg.SecretKey,
		alg:        jwt.GetSigningMethod(cfg.Alg),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}, nil
}

// AccessTTL returns the configured access token lifetime
// Callers use it to fill 'expires_in' of issued pairs
func (m *TokenManager) AccessTTL() time.Duration {
	return m.accessTTL
}

// IssueAccess signs a short-lived token carrying identity and role claims
func (m *TokenManager) IssueAccess(identity models.Identity, roles []string) (string, error) {
	now := time.Now().Truncate(time.Second)

	token := jwt.NewWithClaims(
		m.alg,
		Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        uuid.NewString(),
				Subject:   identity.Email,
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			},
			Kind:  KindAccess,
			UID:   identity.ID,
			Email: identity.Email,
			Name:  identity.DisplayName(),
			Roles: roles,
		},
	)

	signed, err := token.SignedString([]byte(m.key))
	if err != nil {
		return "", apperrors.ErrInternal
	}
	return signed, nil
}

// IssueRefresh signs a longer-lived token carrying the identity reference only
// No roles: a stolen refresh token grants nothing until exchanged
func (m *TokenManager) IssueRefresh(identity models.Identity) (string, error) {
	now := time.Now().Truncate(time.Second)

	token := jwt.NewWithClaims(
		m.alg,
		Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        uuid.NewString(),
				Subject:   identity.Email,
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTTL)),
			},
			Kind:  KindRefresh,
			Email: identity.Email,
		},
	)

	signed, err := token.SignedString([]byte(m.key))
	if err != nil {
		return "", apperrors.ErrInternal
	}
	return signed, nil
}

// Parse verifies signature, expiry, algorithm and token kind
// Every failure collapses into apperrors.ErrInvalidToken: callers
// must not be able to tell which check rejected the token
func (m *TokenManager) Parse(tokenString string, kind string) (Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (any, error) {
			return []byte(m.key), nil
		},
		jwt.WithValidMethods([]string{m.alg.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, apperrors.ErrInvalidToken
	}

	if claims.Kind != kind {
		return Claims{}, apperrors.ErrInvalidToken
	}

	return *claims, nil
}
