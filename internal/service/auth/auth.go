package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/crediya/auth/internal/apperrors"
	"github.com/crediya/auth/internal/logger"
	"github.com/crediya/auth/internal/models"
	"github.com/crediya/auth/internal/repository"
	"github.com/crediya/auth/internal/service/auth/tokenmanager"
)

// Interface to compare user passwords against stored hashes
type PasswordHasher interface {
	// Generate hash from password
	Hash(password string) (string, error)

	// Compare known hashedPassword and user provided password
	// Must be protected against timing attacks
	Compare(hashedPassword string, password string) error
}

type Config struct {
	// Hasher to verify passwords on login
	// Defaults to BcryptHasher
	Hasher PasswordHasher
}

// Auth service: verifies credentials and exchanges refresh tokens,
// both ending in a freshly minted token pair
type Service struct {
	token     *tokenmanager.TokenManager
	hasher    PasswordHasher
	directory repository.UserDirectory
	logger    logger.Logger
}

func NewService(cfg Config, token *tokenmanager.TokenManager, directory repository.UserDirectory, l logger.Logger) (*Service, error) {
	hasher := cfg.Hasher
	if hasher == nil {
		hasher = BcryptHasher{}
	}

	if token == nil || directory == nil {
		return nil, errors.New("token manager and directory must not be nil")
	}

	if l == nil {
		l = logger.NewNoOpLogger()
	}

	return &Service{
		token:     token,
		hasher:    hasher,
		directory: directory,
		logger:    l,
	}, nil
}

// Login verifies email and password and returns a new token pair
// Unknown email and wrong password fail with the same error value,
// so responses never reveal whether the account exists
func (s *Service) Login(ctx context.Context, email string, password string) (models.TokenPair, error) {
	if isBlank(email) || isBlank(password) {
		return models.TokenPair{}, apperrors.ErrFieldsRequired
	}

	identity, err := s.directory.LookupByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Info("login rejected: unknown email", "email", email)
			return models.TokenPair{}, apperrors.ErrInvalidCredentials
		}
		s.logger.Error("directory lookup failed", "error", err)
		return models.TokenPair{}, apperrors.ErrInternal
	}

	if err := s.hasher.Compare(identity.PasswordHash, password); err != nil {
		s.logger.Info("login rejected: password mismatch", "email", email)
		return models.TokenPair{}, apperrors.ErrInvalidCredentials
	}

	return s.issuePair(ctx, identity)
}

// Refresh validates a refresh token and mints a new pair
// The identity is reloaded from the directory so role changes made after
// the original issuance end up in the new access token
// The previous refresh token stays valid until it expires: rotation is
// stateless, there is no server side token record
func (s *Service) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	if isBlank(refreshToken) {
		return models.TokenPair{}, apperrors.ErrInvalidToken
	}

	claims, err := s.token.Parse(refreshToken, tokenmanager.KindRefresh)
	if err != nil {
		s.logger.Info("refresh rejected: token did not validate")
		return models.TokenPair{}, apperrors.ErrInvalidToken
	}

	if isBlank(claims.Email) {
		s.logger.Info("refresh rejected: token carries no identity reference")
		return models.TokenPair{}, apperrors.ErrInvalidToken
	}

	identity, err := s.directory.LookupByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Account vanished since issuance
			// Mapped to the same token error as every other refresh failure,
			// so the response never confirms an account was deleted
			s.logger.Info("refresh rejected: identity no longer exists", "email", claims.Email)
			return models.TokenPair{}, apperrors.ErrInvalidToken
		}
		s.logger.Error("directory lookup failed", "error", err)
		return models.TokenPair{}, apperrors.ErrInternal
	}

	return s.issuePair(ctx, identity)
}

// issuePair resolves roles and signs both tokens
// The two issuances are independent pure computations, run concurrently,
// and the pair fails as a whole if either fails
func (s *Service) issuePair(ctx context.Context, identity models.Identity) (models.TokenPair, error) {
	roles := ResolveRoles(identity.RoleID)

	var access, refresh string

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		access, err = s.token.IssueAccess(identity, roles)
		return err
	})
	g.Go(func() error {
		var err error
		refresh, err = s.token.IssueRefresh(identity)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("token signing failed", "error", err)
		return models.TokenPair{}, apperrors.ErrInternal
	}

	return models.TokenPair{
		TokenType:    models.TokenTypeBearer,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.token.AccessTTL().Seconds()),
	}, nil
}

// Authenticate validates a bearer access token and builds the calling principal
// Pure CPU bound check: no I/O, no state between calls
func (s *Service) Authenticate(accessToken string) (models.Principal, error) {
	claims, err := s.token.Parse(accessToken, tokenmanager.KindAccess)
	if err != nil {
		return models.Principal{}, apperrors.ErrInvalidToken
	}

	subject := claims.Email
	if subject == "" {
		subject = claims.Subject
	}

	authorities := make([]string, 0, len(claims.Roles))
	for _, role := range claims.Roles {
		authorities = append(authorities, models.RolePrefix+role)
	}

	return models.Principal{
		Subject:     subject,
		Authorities: authorities,
	}, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
