package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueParseRoundtrip(t *testing.T) {
	m := NewManager("test-secret")

	token, err := m.Issue("mfernandez", true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "mfernandez", claims.Username)
	assert.True(t, claims.IsAdmin)
}

func TestParseRejectsTamperedToken(t *testing.T) {
	m := NewManager("test-secret")

	token, err := m.Issue("analyst", false)
	require.NoError(t, err)

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = m.Parse(tampered)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestParseRejectsForeignSecret(t *testing.T) {
	token, err := NewManager("secret-a").Issue("analyst", false)
	require.NoError(t, err)

	_, err = NewManager("secret-b").Parse(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestParseRejectsGarbage(t *testing.T) {
	m := NewManager("test-secret")
	for _, tok := range []string{"", "garbage", `{"username":"admin","isAdmin":true}`} {
		_, err := m.Parse(tok)
		assert.ErrorIs(t, err, ErrInvalidSession, "token %q", tok)
	}
}

func TestCookieAttributes(t *testing.T) {
	c := Cookie("tok")
	assert.Equal(t, CookieName, c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, int(TTL.Seconds()), c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)

	expired := ExpiredCookie()
	assert.Equal(t, CookieName, expired.Name)
	assert.Negative(t, expired.MaxAge)
}

func TestFromRequest(t *testing.T) {
	m := NewManager("test-secret")

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := m.FromRequest(r)
	assert.ErrorIs(t, err, ErrInvalidSession)

	token, err := m.Issue("analyst", false)
	require.NoError(t, err)
	r.AddCookie(Cookie(token))

	claims, err := m.FromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "analyst", claims.Username)
	assert.False(t, claims.IsAdmin)
}
