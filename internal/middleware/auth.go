// Package middleware provides the HTTP middleware for the API server.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ownerKey struct{}

// Auth validates bearer tokens and puts the owner id into the request
// context. Tokens are HS256-signed with the shared secret; the owner id is
// carried in the `sub` claim. Routes that stay open (health, metrics) are
// mounted outside the protected route group instead of being skipped here.
type Auth struct {
	secret []byte
	logger *logrus.Logger
}

func NewAuth(secret string, logger *logrus.Logger) *Auth {
	return &Auth{secret: []byte(secret), logger: logger}
}

func (m *Auth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			m.unauthorized(w, "missing Authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			m.unauthorized(w, "invalid Authorization header format")
			return
		}

		ownerID, err := m.validateToken(parts[1])
		if err != nil {
			m.logger.WithError(err).WithField("path", r.URL.Path).Warn("token validation failed")
			m.unauthorized(w, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), ownerKey{}, ownerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Auth) validateToken(tokenString string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	if !token.Valid {
		return uuid.Nil, jwt.ErrTokenUnverifiable
	}
	return uuid.Parse(claims.Subject)
}

func (m *Auth) unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"code": "unauthorized", "error": message})
}

// OwnerID extracts the authenticated owner id from the request context.
func OwnerID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ownerKey{}).(uuid.UUID)
	return id, ok
}

// WithOwnerID returns a context carrying the owner id. Used by tests.
func WithOwnerID(ctx context.Context, ownerID uuid.UUID) context.Context {
	return context.WithValue(ctx, ownerKey{}, ownerID)
}
