// File: internal/session/token.go
package session

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The cookie value is not the raw session id: it is an HS256 token over
// the id, signed with COOKIE_SECRET, so a tampered cookie fails before
// redis is ever consulted.

type sidClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// Seams for tests.
var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
)

// SignSID wraps a session id in a signed token with the session TTL.
func SignSID(sid string) (string, error) {
	secret := os.Getenv("COOKIE_SECRET")
	if secret == "" {
		return "", fmt.Errorf("COOKIE_SECRET not set")
	}

	now := timeNow()
	claims := sidClaims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifySID validates a cookie value and returns the session id inside.
func VerifySID(tokenString string) (string, error) {
	secret := os.Getenv("COOKIE_SECRET")
	if secret == "" {
		return "", fmt.Errorf("COOKIE_SECRET not set")
	}

	token, err := parseWithClaims(tokenString, &sidClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*sidClaims)
	if !ok || !token.Valid || claims.SID == "" {
		return "", fmt.Errorf("invalid session token")
	}
	return claims.SID, nil
}

// NewCookie builds the session cookie. Production gets Secure +
// SameSite=None (cross-site client behind TLS); development keeps Lax.
func NewCookie(token string) *http.Cookie {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if os.Getenv("APP_ENV") == "production" {
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}

// ExpiredCookie tells the browser to drop the session cookie.
func ExpiredCookie() *http.Cookie {
	c := NewCookie("")
	c.MaxAge = -1
	return c
}
