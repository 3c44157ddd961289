package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"logmed-backend/internal/models"
	"logmed-backend/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const SessionContextKey contextKey = "session"

// ErrSessionInactive is returned for revoked, expired or unknown sessions.
var ErrSessionInactive = errors.New("session is not active")

// SessionClaims identifies the caller of an authenticated request. Role is
// read from the profile on every request, not from the token.
type SessionClaims struct {
	SessionID string `json:"session_id"`
	ProfileID string `json:"profile_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
}

// SessionValidator resolves a session id to the profile that owns it.
// It returns ErrSessionInactive when the session can no longer be used.
type SessionValidator interface {
	ValidateSession(sessionID string) (*models.Profile, error)
}

// IssueToken signs an HS256 token bound to the session. It expires together
// with the session.
func IssueToken(secret string, s *models.Session, p *models.Profile) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid":     s.ID,
		"user_id": p.ID,
		"email":   p.Email,
		"iat":     s.CreatedAt,
		"exp":     s.ExpiresAt,
	})
	return token.SignedString([]byte(secret))
}

// ParseToken validates the signature and expiry and returns the session id.
func ParseToken(secret, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errors.New("token has no session")
	}
	return sid, nil
}

// Authenticate resolves a raw token into the caller's claims.
func Authenticate(secret string, sessions SessionValidator, tokenString string) (SessionClaims, error) {
	sid, err := ParseToken(secret, tokenString)
	if err != nil {
		return SessionClaims{}, err
	}
	p, err := sessions.ValidateSession(sid)
	if err != nil {
		return SessionClaims{}, err
	}
	return SessionClaims{
		SessionID: sid,
		ProfileID: p.ID,
		Email:     p.Email,
		Name:      p.Name,
		Role:      p.Role,
	}, nil
}

// Auth validates the bearer token against the session store and adds the
// caller's claims to the request context.
func Auth(secret string, sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				log.Printf("❌ %s %s: missing or malformed authorization header", r.Method, r.URL.Path)
				utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := Authenticate(secret, sessions, parts[1])
			if err != nil {
				log.Printf("❌ %s %s: %v", r.Method, r.URL.Path, err)
				utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), SessionContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole middleware checks if the caller has the required role (must be used after Auth)
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetSessionFromContext(r)
			if !ok {
				utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if claims.Role != role {
				log.Printf("❌ Insufficient permissions: required %s, got %s", role, claims.Role)
				utils.RespondError(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetSessionFromContext extracts the caller's claims from request context
func GetSessionFromContext(r *http.Request) (SessionClaims, bool) {
	claims, ok := r.Context().Value(SessionContextKey).(SessionClaims)
	return claims, ok
}

// WithSession returns a copy of ctx carrying claims.
func WithSession(ctx context.Context, claims SessionClaims) context.Context {
	return context.WithValue(ctx, SessionContextKey, claims)
}

// SessionLookup adapts two lookup functions into a SessionValidator.
type SessionLookup struct {
	Session func(id string) (*models.Session, error)
	Profile func(id string) (*models.Profile, error)
	Now     func() time.Time
}

func (l SessionLookup) ValidateSession(sessionID string) (*models.Profile, error) {
	s, err := l.Session(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionInactive, err)
	}
	now := time.Now
	if l.Now != nil {
		now = l.Now
	}
	if !s.Active(now().Unix()) {
		return nil, ErrSessionInactive
	}
	return l.Profile(s.ProfileID)
}
