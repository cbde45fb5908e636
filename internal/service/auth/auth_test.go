package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crediya/auth/internal/apperrors"
	"github.com/crediya/auth/internal/models"
	"github.com/crediya/auth/internal/service/auth/tokenmanager"
)

// In-memory user directory
// Counts lookups so tests can assert no I/O happened
type fakeDirectory struct {
	mu         sync.Mutex
	identities map[string]models.Identity
	lookups    int
}

func newFakeDirectory(identities ...models.Identity) *fakeDirectory {
	d := &fakeDirectory{identities: map[string]models.Identity{}}
	for _, i := range identities {
		d.identities[i.Email] = i
	}
	return d
}

func (d *fakeDirectory) LookupByEmail(_ context.Context, email string) (models.Identity, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.lookups++
	identity, ok := d.identities[email]
	if !ok {
		return models.Identity{}, apperrors.ErrUserNotFound
	}
	return identity, nil
}

func (d *fakeDirectory) setRole(email string, roleID int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	identity := d.identities[email]
	identity.RoleID = roleID
	d.identities[email] = identity
}

// Plain text hasher to keep tests fast; bcrypt has its own tests
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hash:" + password, nil }

func (plainHasher) Compare(hashedPassword string, password string) error {
	if hashedPassword != "hash:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

func newTestService(t *testing.T, directory *fakeDirectory) (*Service, *tokenmanager.TokenManager) {
	t.Helper()

	manager, err := tokenmanager.New(tokenmanager.Config{
		SecretKey:  "test-secret-key",
		AccessTTL:  60 * time.Second,
		RefreshTTL: 15 * time.Minute,
	})
	require.NoError(t, err)

	service, err := NewService(Config{Hasher: plainHasher{}}, manager, directory, nil)
	require.NoError(t, err)

	return service, manager
}

var adminIdentity = models.Identity{
	ID:           1,
	Email:        "a@x.com",
	FirstName:    "Ada",
	LastName:     "Lovelace",
	PasswordHash: "hash:correct",
	RoleID:       1,
}

func Test_Service_Login(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		service, manager := newTestService(t, newFakeDirectory(adminIdentity))

		pair, err := service.Login(t.Context(), "a@x.com", "correct")
		require.NoError(t, err)

		assert.Equal(t, "Bearer", pair.TokenType)
		assert.Equal(t, int64(60), pair.ExpiresIn, "expires_in must equal the configured access TTL in seconds")
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)

		claims, err := manager.Parse(pair.AccessToken, tokenmanager.KindAccess)
		require.NoError(t, err)
		assert.Equal(t, []string{"ADMIN"}, claims.Roles, "access claims must contain exactly the resolved role set")
		assert.Equal(t, "a@x.com", claims.Email)
		assert.Equal(t, int64(1), claims.UID)

		refreshClaims, err := manager.Parse(pair.RefreshToken, tokenmanager.KindRefresh)
		require.NoError(t, err)
		assert.Empty(t, refreshClaims.Roles, "refresh token must not carry roles")
	})

	t.Run("unknown role issues empty role set", func(t *testing.T) {
		identity := adminIdentity
		identity.RoleID = 99
		service, manager := newTestService(t, newFakeDirectory(identity))

		pair, err := service.Login(t.Context(), "a@x.com", "correct")
		require.NoError(t, err)

		claims, err := manager.Parse(pair.AccessToken, tokenmanager.KindAccess)
		require.NoError(t, err)
		assert.Empty(t, claims.Roles, "unmapped role id must never produce a default role")
	})

	t.Run("unknown email and wrong password fail identically", func(t *testing.T) {
		service, _ := newTestService(t, newFakeDirectory(adminIdentity))

		_, errGhost := service.Login(t.Context(), "ghost@x.com", "whatever")
		_, errWrong := service.Login(t.Context(), "a@x.com", "wrong")

		require.Error(t, errGhost)
		require.Error(t, errWrong)
		assert.Equal(t, errGhost, errWrong, "both failures must be the same error value")
		assert.Equal(t, errGhost.Error(), errWrong.Error(), "messages must be byte identical")
		assert.ErrorIs(t, errGhost, apperrors.ErrInvalidCredentials)
	})

	t.Run("blank input fails before any lookup", func(t *testing.T) {
		directory := newFakeDirectory(adminIdentity)
		service, _ := newTestService(t, directory)

		tests := []struct {
			name     string
			email    string
			password string
		}{
			{"empty email", "", "password"},
			{"blank email", "   ", "password"},
			{"empty password", "a@x.com", ""},
			{"blank password", "a@x.com", "  "},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := service.Login(t.Context(), tt.email, tt.password)
				require.ErrorIs(t, err, apperrors.ErrFieldsRequired)
			})
		}

		require.Zero(t, directory.lookups, "validation must happen before any directory I/O")
	})

	t.Run("concurrent logins do not mix claims", func(t *testing.T) {
		client := models.Identity{
			ID:           2,
			Email:        "b@x.com",
			PasswordHash: "hash:correct",
			RoleID:       3,
		}
		service, manager := newTestService(t, newFakeDirectory(adminIdentity, client))

		const iterations = 50
		var wg sync.WaitGroup
		pairsA := make([]models.TokenPair, iterations)
		pairsB := make([]models.TokenPair, iterations)

		for i := range iterations {
			wg.Add(2)
			go func() {
				defer wg.Done()
				pair, err := service.Login(context.Background(), "a@x.com", "correct")
				assert.NoError(t, err)
				pairsA[i] = pair
			}()
			go func() {
				defer wg.Done()
				pair, err := service.Login(context.Background(), "b@x.com", "correct")
				assert.NoError(t, err)
				pairsB[i] = pair
			}()
		}
		wg.Wait()

		for i := range iterations {
			claimsA, err := manager.Parse(pairsA[i].AccessToken, tokenmanager.KindAccess)
			require.NoError(t, err)
			require.Equal(t, "a@x.com", claimsA.Email)
			require.Equal(t, []string{"ADMIN"}, claimsA.Roles)

			claimsB, err := manager.Parse(pairsB[i].AccessToken, tokenmanager.KindAccess)
			require.NoError(t, err)
			require.Equal(t, "b@x.com", claimsB.Email)
			require.Equal(t, []string{"CLIENT"}, claimsB.Roles)
		}
	})
}

func Test_Service_Refresh(t *testing.T) {
	t.Parallel()

	login := func(t *testing.T, service *Service) models.TokenPair {
		t.Helper()
		pair, err := service.Login(t.Context(), "a@x.com", "correct")
		require.NoError(t, err)
		return pair
	}

	t.Run("success", func(t *testing.T) {
		service, manager := newTestService(t, newFakeDirectory(adminIdentity))
		pair := login(t, service)

		refreshed, err := service.Refresh(t.Context(), pair.RefreshToken)
		require.NoError(t, err)

		assert.Equal(t, "Bearer", refreshed.TokenType)
		assert.Equal(t, int64(60), refreshed.ExpiresIn)

		claims, err := manager.Parse(refreshed.AccessToken, tokenmanager.KindAccess)
		require.NoError(t, err)
		assert.Equal(t, []string{"ADMIN"}, claims.Roles)
	})

	t.Run("picks up role change since issuance", func(t *testing.T) {
		directory := newFakeDirectory(adminIdentity)
		service, manager := newTestService(t, directory)
		pair := login(t, service)

		directory.setRole("a@x.com", 3)

		refreshed, err := service.Refresh(t.Context(), pair.RefreshToken)
		require.NoError(t, err)

		claims, err := manager.Parse(refreshed.AccessToken, tokenmanager.KindAccess)
		require.NoError(t, err)
		assert.Equal(t, []string{"CLIENT"}, claims.Roles, "roles must reflect the directory at refresh time")
	})

	t.Run("blank token", func(t *testing.T) {
		service, _ := newTestService(t, newFakeDirectory(adminIdentity))

		_, err := service.Refresh(t.Context(), "  ")
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("access token is not accepted", func(t *testing.T) {
		service, _ := newTestService(t, newFakeDirectory(adminIdentity))
		pair := login(t, service)

		_, err := service.Refresh(t.Context(), pair.AccessToken)
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("expired refresh token", func(t *testing.T) {
		service, _ := newTestService(t, newFakeDirectory(adminIdentity))

		// Same secret, TTLs already in the past
		expiredIssuer, err := tokenmanager.New(tokenmanager.Config{
			SecretKey:  "test-secret-key",
			AccessTTL:  -2 * time.Second,
			RefreshTTL: -time.Second,
		})
		require.NoError(t, err)

		expired, err := expiredIssuer.IssueRefresh(adminIdentity)
		require.NoError(t, err)

		_, err = service.Refresh(t.Context(), expired)
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("identity vanished since issuance", func(t *testing.T) {
		directory := newFakeDirectory(adminIdentity)
		service, _ := newTestService(t, directory)
		pair := login(t, service)

		delete(directory.identities, "a@x.com")

		_, errVanished := service.Refresh(t.Context(), pair.RefreshToken)
		_, errGarbage := service.Refresh(t.Context(), "garbage")

		require.ErrorIs(t, errVanished, apperrors.ErrInvalidToken)
		require.Equal(t, errGarbage, errVanished, "a deleted account must fail exactly like a bad token")
	})
}

func Test_Service_Authenticate(t *testing.T) {
	t.Parallel()

	service, manager := newTestService(t, newFakeDirectory(adminIdentity))

	t.Run("valid access token", func(t *testing.T) {
		pair, err := service.Login(t.Context(), "a@x.com", "correct")
		require.NoError(t, err)

		principal, err := service.Authenticate(pair.AccessToken)
		require.NoError(t, err)

		assert.Equal(t, "a@x.com", principal.Subject)
		assert.Equal(t, []string{"ROLE_ADMIN"}, principal.Authorities)
		assert.True(t, principal.HasRole("ADMIN"))
		assert.False(t, principal.HasRole("CLIENT"))
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		refresh, err := manager.IssueRefresh(adminIdentity)
		require.NoError(t, err)

		_, err = service.Authenticate(refresh)
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := service.Authenticate("garbage")
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}
