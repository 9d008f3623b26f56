package handler

import (
	"context"
	"go-voice-api/common"
	"go-voice-api/model"
	"go-voice-api/service"
	"net/http"
	"strings"
)

type contextKey string

const AuthContextKey contextKey = "authContext"

// AuthMiddleware extracts the Bearer credential, resolves it to an
// AuthContext and stores it on the request context. Every failure yields the
// same 401 response regardless of cause.
func AuthMiddleware(authz service.IAuthzService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				common.NewUnauthorizedError(nil).Send(w)
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				common.NewUnauthorizedError(nil).Send(w)
				return
			}

			authCtx, err := authz.Resolve(headerParts[1])
			if err != nil {
				common.NewUnauthorizedError(nil).Send(w)
				return
			}

			ctx := context.WithValue(r.Context(), AuthContextKey, authCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authContextFrom pulls the resolved AuthContext out of the request context.
func authContextFrom(r *http.Request) (*model.AuthContext, bool) {
	authCtx, ok := r.Context().Value(AuthContextKey).(*model.AuthContext)
	return authCtx, ok
}

// userFrom returns the authenticated user, rejecting api_key mode: some
// operations only make sense for an identity-bound session.
func userFrom(r *http.Request) (*model.User, *common.AppError) {
	authCtx, ok := authContextFrom(r)
	if !ok {
		return nil, common.NewUnauthorizedError(nil)
	}

	switch authCtx.Mode {
	case model.AuthModeUser:
		return authCtx.User, nil
	case model.AuthModeAPIKey:
		return nil, common.NewUnauthorizedError(nil)
	default:
		return nil, common.NewUnauthorizedError(nil)
	}
}
