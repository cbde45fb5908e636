package postgres

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crediya/auth/internal/apperrors"
	"github.com/crediya/auth/internal/models"
	"github.com/crediya/auth/internal/testutil"
)

func Test_UserRepo(t *testing.T) {
	t.Parallel() // It's ok to run in parallel with other tests, but not with subtests

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	identity := models.Identity{
		Email:        "ada@x.com",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		PasswordHash: "hashedpassword123",
		BaseSalary:   decimal.RequireFromString("2500000.50"),
		RoleID:       1,
	}

	t.Run("create identity ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := NewUserRepo(tx)

			created, err := r.Create(t.Context(), identity)

			require.NoError(t, err)
			assert.NotZero(t, created.ID)
			assert.Equal(t, "ada@x.com", created.Email)
			assert.Equal(t, "Ada", created.FirstName)
			assert.Equal(t, "Lovelace", created.LastName)
			assert.Equal(t, "hashedpassword123", created.PasswordHash)
			assert.True(t, created.BaseSalary.Equal(identity.BaseSalary), "salary must survive the roundtrip exactly")
			assert.Equal(t, int64(1), created.RoleID)
			assert.WithinDuration(t, time.Now(), created.CreatedAt, time.Second, "CreatedAt should be recent")
		})
	})

	t.Run("create without role stores null and reads back zero", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := NewUserRepo(tx)

			noRole := identity
			noRole.Email = "norole@x.com"
			noRole.RoleID = 0

			created, err := r.Create(t.Context(), noRole)

			require.NoError(t, err)
			assert.Zero(t, created.RoleID)
		})
	})

	t.Run("create duplicate email", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := NewUserRepo(tx)

			_, err := r.Create(t.Context(), identity)
			require.NoError(t, err)

			_, err = r.Create(t.Context(), identity)

			assert.ErrorIs(t, err, apperrors.ErrUserAlreadyExists, "should return well known error")
		})
	})

	t.Run("lookup by email ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := NewUserRepo(tx)

			created, err := r.Create(t.Context(), identity)
			require.NoError(t, err)

			got, err := r.LookupByEmail(t.Context(), created.Email)

			require.NoError(t, err)
			assert.Equal(t, created.ID, got.ID)
			assert.Equal(t, created.Email, got.Email)
			assert.Equal(t, created.PasswordHash, got.PasswordHash)
			assert.True(t, created.BaseSalary.Equal(got.BaseSalary))
			assert.Equal(t, created.RoleID, got.RoleID)
			assert.Equal(t, created.CreatedAt, got.CreatedAt)
		})
	})

	t.Run("lookup by email not found", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := NewUserRepo(tx)

			_, err := r.LookupByEmail(t.Context(), "nobody@x.com")

			assert.ErrorIs(t, err, apperrors.ErrUserNotFound, "should return well known error")
		})
	})

	t.Run("set role ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := NewUserRepo(tx)

			created, err := r.Create(t.Context(), identity)
			require.NoError(t, err)

			err = r.SetRole(t.Context(), created.Email, 3)
			require.NoError(t, err)

			got, err := r.LookupByEmail(t.Context(), created.Email)
			require.NoError(t, err)
			assert.Equal(t, int64(3), got.RoleID)
		})
	})

	t.Run("set role to zero clears it", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := NewUserRepo(tx)

			created, err := r.Create(t.Context(), identity)
			require.NoError(t, err)

			err = r.SetRole(t.Context(), created.Email, 0)
			require.NoError(t, err)

			got, err := r.LookupByEmail(t.Context(), created.Email)
			require.NoError(t, err)
			assert.Zero(t, got.RoleID)
		})
	})

	t.Run("set role for missing email", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := NewUserRepo(tx)

			err := r.SetRole(t.Context(), "nobody@x.com", 1)

			assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		})
	})
}
