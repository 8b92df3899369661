package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/psharishgithub/open-space-platform-pro/errs"
	"github.com/psharishgithub/open-space-platform-pro/services"
)

// Session is the identity vouched for by the external auth provider.
type Session struct {
	Email    string
	Name     string
	GoogleID string
}

func (s Session) Identity() services.Identity {
	return services.Identity{Email: s.Email, Name: s.Name, GoogleID: s.GoogleID}
}

type sessionClaims struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	GoogleID string `json:"googleId"`
	jwt.RegisteredClaims
}

// IssueSessionToken signs a session the way the auth provider does. Used by
// local tooling and tests.
func IssueSessionToken(secret string, s Session, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Email:    s.Email,
		Name:     s.Name,
		GoogleID: s.GoogleID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parseSessionToken(secret, tokenStr string) (Session, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if errors.Is(err, jwt.ErrTokenExpired) {
		return Session{}, errs.NewExpiredTokenError()
	}
	if err != nil || !token.Valid {
		return Session{}, errs.NewInvalidTokenError()
	}

	email := services.NormalizeEmail(claims.Email)
	if email == "" {
		return Session{}, errs.NewInvalidTokenError()
	}
	return Session{Email: email, Name: strings.TrimSpace(claims.Name), GoogleID: claims.GoogleID}, nil
}

// sessionToken reads the token from the Authorization header, falling back to the session cookie.
func sessionToken(r *http.Request, cookieName string) string {
	authHeader := r.Header.Get("Authorization")
	if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}

	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
