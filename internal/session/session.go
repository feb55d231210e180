package session

import (
	"errors"
	"net/http"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
)

// CookieName is the portal session cookie.
const CookieName = "galileo_auth"

// TTL is the session lifetime carried by both the cookie Max-Age and the
// signed expiry claim.
const TTL = 7 * 24 * time.Hour

var ErrInvalidSession = errors.New("invalid session")

// Claims is the signed session payload. The admin flag lives inside the
// signature so a client cannot grant itself admin by editing the cookie.
type Claims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.StandardClaims
}

// Manager issues and verifies session cookies.
type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Issue signs a session token for the given identity.
func (m *Manager) Issue(username string, isAdmin bool) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		IsAdmin:  isAdmin,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(TTL).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse verifies a session token. Any failure (bad signature, expiry,
// malformed token) collapses to ErrInvalidSession; callers treat that the
// same as no session at all.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}
	if claims.Username == "" {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// Cookie wraps a signed token in the portal cookie: HTTP-only, strict
// same-site, 7-day max-age.
func Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

// ExpiredCookie clears the session cookie on logout.
func ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

// FromRequest extracts and verifies the session cookie. A missing or
// unparseable cookie is reported as ErrInvalidSession.
func (m *Manager) FromRequest(r *http.Request) (*Claims, error) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return nil, ErrInvalidSession
	}
	return m.Parse(c.Value)
}
