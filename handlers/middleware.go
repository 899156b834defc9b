package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/omegonstudio/fotospatagonia-backend/models"
	"github.com/omegonstudio/fotospatagonia-backend/repository"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// UserContextKey is the key used to store the user object in the request context.
	UserContextKey ContextKey = "user"
)

// userFromBearerToken parses the Authorization header, validates the
// token and loads the user. The returned code/detail pair describes the
// failure for the API error response.
func userFromBearerToken(r *http.Request, userRepo repository.UserRepositoryInterface, jwtSecret []byte) (user *models.User, code, detail string) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, "missing_token", "Authorization header required"
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, "malformed_header", "Authorization header format must be Bearer {token}"
	}
	tokenString := parts[1]

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, "invalid_token", "invalid or expired token"
	}

	var userID uint
	if _, err := fmt.Sscan(claims.Subject, &userID); err != nil {
		return nil, "invalid_token", "invalid user ID in token"
	}

	user, err = userRepo.GetByID(userID)
	if err != nil {
		// the user may have been deleted after the token was issued
		return nil, "user_not_found", "user not found"
	}
	return user, "", ""
}

// AuthMiddleware verifies the bearer token and, if valid, fetches the
// user and adds them to the request context.
func AuthMiddleware(userRepo repository.UserRepositoryInterface, jwtSecret []byte, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, code, detail := userFromBearerToken(r, userRepo, jwtSecret)
		if user == nil {
			WriteAPIError(w, http.StatusUnauthorized, code, detail)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuthMiddleware attaches the user to the context when a valid
// bearer token is present and lets the request through anonymously
// otherwise. Used on routes that serve both customers with accounts and
// guests, such as the cart.
func OptionalAuthMiddleware(userRepo repository.UserRepositoryInterface, jwtSecret []byte, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _, _ := userFromBearerToken(r, userRepo, jwtSecret)
		if user != nil {
			r = r.WithContext(context.WithValue(r.Context(), UserContextKey, user))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireGlobalPermission checks that the authenticated user holds a
// specific permission. It should be used after AuthMiddleware.
func RequireGlobalPermission(requiredPermission string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(UserContextKey).(*models.User)
		if !ok || user == nil {
			WriteAPIError(w, http.StatusInternalServerError, "context_error", "user not found in context")
			return
		}

		if !user.HasGlobalPermission(requiredPermission) {
			WriteAPIError(w, http.StatusForbidden, "forbidden", fmt.Sprintf("requires permission '%s'", requiredPermission))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAnyGlobalPermission checks that the authenticated user holds at
// least one of the given permissions. It should be used after AuthMiddleware.
func RequireAnyGlobalPermission(permissions []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(UserContextKey).(*models.User)
		if !ok || user == nil {
			WriteAPIError(w, http.StatusInternalServerError, "context_error", "user not found in context")
			return
		}

		for _, p := range permissions {
			if user.HasGlobalPermission(p) {
				next.ServeHTTP(w, r)
				return
			}
		}

		WriteAPIError(w, http.StatusForbidden, "forbidden", fmt.Sprintf("requires one of: %s", strings.Join(permissions, ", ")))
	})
}
