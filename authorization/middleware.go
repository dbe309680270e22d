package authorization

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/casbin/casbin"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"stayvista_service/domain"
	"stayvista_service/errors"
)

type contextKey string

const claimsKey contextKey = "claims"

func ClaimsFromContext(ctx context.Context) (*domain.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*domain.Claims)
	return claims, ok
}

// Authenticate verifies the session credential and stores the identity
// claims in the request context. It decides nothing about permissions.
func Authenticate(manager *TokenManager, logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
			tokenString := extractToken(req)
			if tokenString == "" {
				writeMessage(writer, http.StatusUnauthorized, errors.UnauthorizedError)
				return
			}

			claims, err := manager.Verify(tokenString)
			if err != nil {
				logger.Warn("Unauthorized access attempt")
				writeMessage(writer, http.StatusUnauthorized, errors.UnauthorizedError)
				return
			}

			ctx := context.WithValue(req.Context(), claimsKey, claims)
			next.ServeHTTP(writer, req.WithContext(ctx))
		})
	}
}

// RoleResolver maps an authenticated email to its persisted role.
type RoleResolver interface {
	ResolveRole(ctx context.Context, email string) (domain.UserRole, error)
}

// Authorize resolves the persisted role for the authenticated email and
// enforces it against the casbin policy. A missing user record means no
// permission, never a default role.
func Authorize(enforcer *casbin.Enforcer, roles RoleResolver, logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
			claims, ok := ClaimsFromContext(req.Context())
			if !ok {
				writeMessage(writer, http.StatusUnauthorized, errors.UnauthorizedError)
				return
			}

			role, err := roles.ResolveRole(req.Context(), claims.Email)
			if err != nil {
				logger.Warnf("role lookup failed for %s", claims.Email)
				writeMessage(writer, http.StatusForbidden, errors.ForbiddenError)
				return
			}

			res, err := enforcer.EnforceSafe(string(role), req.URL.Path, req.Method)
			if err != nil {
				logger.Error("Error enforcing authorization policy")
				writeMessage(writer, http.StatusForbidden, errors.ForbiddenError)
				return
			}

			if !res {
				logger.Warn("Unauthorized access attempt: forbidden")
				writeMessage(writer, http.StatusForbidden, errors.ForbiddenError)
				return
			}

			next.ServeHTTP(writer, req)
		})
	}
}

func extractToken(req *http.Request) string {
	if cookie, err := req.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	bearer := req.Header.Get("Authorization")
	if bearer == "" {
		return ""
	}
	bearerToken := strings.Split(bearer, "Bearer ")
	if len(bearerToken) != 2 {
		return ""
	}
	return bearerToken[1]
}

func writeMessage(writer http.ResponseWriter, status int, message string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	json.NewEncoder(writer).Encode(map[string]string{"message": message})
}
