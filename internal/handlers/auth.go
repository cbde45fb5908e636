package handlers

import (
	"context"
	"net/http"

	"github.com/crediya/auth/internal/handlers/render"
	"github.com/crediya/auth/internal/logger"
	"github.com/crediya/auth/internal/models"
)

type authService interface {
	// Login with email and password
	// Has to return apperrors.ErrInvalidCredentials on any credential failure
	Login(ctx context.Context, email string, password string) (models.TokenPair, error)

	// Exchange a refresh token for a new pair
	// Has to return apperrors.ErrInvalidToken if the token does not validate
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)
}

type AuthHandler struct {
	auth   authService
	logger logger.Logger
}

func NewAuth(auth authService, l logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: l}
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	data, err := render.BindAndValidate[LoginRequest](w, r)
	if err != nil {
		return
	}

	pair, err := h.auth.Login(r.Context(), data.Email, data.Password)
	if err != nil {
		render.AppError(w, err)
		return
	}

	h.logger.Info("login succeeded", "email", data.Email)
	render.JSON(w, pair)
}

func (h *AuthHandler) refresh(w http.ResponseWriter, r *http.Request) {
	// refresh_token deliberately has no 'required' tag:
	// a missing token is an authentication failure, not a validation one
	type RefreshRequest struct {
		RefreshToken string `json:"refresh_token"`
	}

	data, err := render.BindAndValidate[RefreshRequest](w, r)
	if err != nil {
		return
	}

	pair, err := h.auth.Refresh(r.Context(), data.RefreshToken)
	if err != nil {
		render.AppError(w, err)
		return
	}

	h.logger.Info("token pair refreshed")
	render.JSON(w, pair)
}
