package http

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/tarotstamp/internal/core/domain"
	"github.com/vncsmyrnk/tarotstamp/internal/core/ports"
)

type contextKey string

const CustomerIDKey contextKey = "customer_id"

const (
	accessTokenCookie = "access_token"
	adminKeyHeader    = "X-Admin-Key"
)

type AuthMiddleware struct {
	authService ports.AuthService
	adminKey    string
}

func NewAuthMiddleware(authService ports.AuthService, adminKey string) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		adminKey:    adminKey,
	}
}

// RequireCustomer accepts the access token from the access_token cookie or a
// bearer Authorization header and puts the customer ID in the context.
func (m *AuthMiddleware) RequireCustomer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			if cookie, err := r.Cookie(accessTokenCookie); err == nil {
				token = cookie.Value
			}
		}
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing access token"})
			return
		}

		session, err := m.authService.ParseToken(token)
		if err != nil {
			writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), CustomerIDKey, session.CustomerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects every request when no admin password is configured.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(adminKeyHeader)
		if m.adminKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(m.adminKey)) != 1 {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "admin access required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func customerID(r *http.Request) (uuid.UUID, error) {
	id, ok := r.Context().Value(CustomerIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, domain.ErrInvalidToken
	}
	return id, nil
}

func bearerToken(header string) string {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
