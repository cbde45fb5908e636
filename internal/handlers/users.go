package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/crediya/auth/internal/apperrors"
	"github.com/crediya/auth/internal/handlers/authctx"
	"github.com/crediya/auth/internal/handlers/render"
	"github.com/crediya/auth/internal/logger"
	"github.com/crediya/auth/internal/models"
)

type userDirectory interface {
	LookupByEmail(ctx context.Context, email string) (models.Identity, error)
}

type UserHandler struct {
	directory userDirectory
	logger    logger.Logger
}

func NewUsers(directory userDirectory, l logger.Logger) *UserHandler {
	return &UserHandler{directory: directory, logger: l}
}

// me returns the authenticated caller as seen by downstream authorization
func (h *UserHandler) me(w http.ResponseWriter, r *http.Request) {
	type MeResponse struct {
		Subject     string   `json:"subject"`
		Authorities []string `json:"authorities"`
	}

	principal, ok := authctx.FromContext(r.Context())
	if !ok {
		// Unreachable behind RequireAuth, kept as a guard
		render.ServiceError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	render.JSON(w, MeResponse{
		Subject:     principal.Subject,
		Authorities: principal.Authorities,
	})
}

// existsByEmail reports whether an identity is registered
// Admin gated: this endpoint IS an account oracle, which is why
// it sits behind RequireRole and not on the public surface
func (h *UserHandler) existsByEmail(w http.ResponseWriter, r *http.Request) {
	type ExistsResponse struct {
		Exists bool `json:"exists"`
	}

	email := r.PathValue("email")

	_, err := h.directory.LookupByEmail(r.Context(), email)
	switch {
	case err == nil:
		render.JSON(w, ExistsResponse{Exists: true})
	case errors.Is(err, apperrors.ErrUserNotFound):
		render.JSON(w, ExistsResponse{Exists: false})
	default:
		h.logger.Error("directory lookup failed", "error", err)
		render.AppError(w, apperrors.ErrInternal)
	}
}
