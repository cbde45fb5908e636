package repository

import (
	"context"

	"github.com/crediya/auth/internal/models"
)

// UserDirectory is the identity store the auth core reads from
// The core never owns the data: it only looks identities up
type UserDirectory interface {
	// Get identity by email
	// If no identity exists must return apperrors.ErrUserNotFound
	LookupByEmail(ctx context.Context, email string) (models.Identity, error)
}

// UserRepo extends the directory with the write operations used for
// provisioning and account administration
type UserRepo interface {
	UserDirectory

	// Create identity
	// If an identity with the same email exists must return apperrors.ErrUserAlreadyExists
	Create(ctx context.Context, identity models.Identity) (models.Identity, error)

	// Change the stored role id
	// Tokens issued after the change must carry the new role set
	SetRole(ctx context.Context, email string, roleID int64) error
}
