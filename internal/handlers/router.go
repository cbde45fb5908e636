package handlers

import (
	"net/http"

	"github.com/crediya/auth/internal/handlers/middleware"
	"github.com/crediya/auth/internal/service/auth"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	authHandler *AuthHandler,
	userHandler *UserHandler,
	mds ...func(next http.Handler) http.Handler,
) http.Handler {
	apiv1 := http.NewServeMux()

	apiv1.HandleFunc("POST /login", authHandler.login)
	apiv1.HandleFunc("POST /token/refresh", authHandler.refresh)

	apiv1.Handle("GET /me", middleware.RequireAuth(http.HandlerFunc(userHandler.me)))
	apiv1.Handle("GET /users/exists/{email}",
		middleware.RequireRole(auth.RoleAdmin)(http.HandlerFunc(userHandler.existsByEmail)),
	)

	root := http.NewServeMux()
	root.Handle("/api/v1/", http.StripPrefix("/api/v1", apiv1))

	return chain(root, mds...)
}
