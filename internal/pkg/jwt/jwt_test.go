package jwt

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSessionToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, "session", false)

	token, sessionID, expiresAt, err := svc.GenerateSessionToken(42, user.RoleHR)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, sessionID)
	assert.Greater(t, expiresAt, time.Now().Unix())

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims, err := svc.ParseClaims(decoded)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, user.RoleHR, claims.Role)
	assert.Equal(t, sessionID, claims.SessionID)
}

func TestDecode_RejectsForeignSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour, "session", false)
	verifier := NewJWTService("secret-b", time.Hour, "session", false)

	token, _, _, err := issuer.GenerateSessionToken(1, user.RoleEmployee)
	require.NoError(t, err)

	_, err = verifier.JWTAuth().Decode(token)
	assert.Error(t, err)
}

func TestParseClaims_RejectsOtherTokenTypes(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, "session", false)

	_, token, err := svc.JWTAuth().Encode(map[string]interface{}{
		"user_id": "1",
		"role":    "ADMIN",
		"type":    "refresh",
		"exp":     time.Now().Add(time.Minute).Unix(),
	})
	require.NoError(t, err)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	_, err = svc.ParseClaims(decoded)
	assert.ErrorIs(t, err, ErrMalformedClaims)
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, "session", false)

	assert.False(t, svc.IsTokenRevoked("abc"))
	svc.RevokeToken("abc", time.Now().Add(time.Hour))
	assert.True(t, svc.IsTokenRevoked("abc"))

	// expired entries are dropped on the next revoke
	svc.RevokeToken("old", time.Now().Add(-time.Hour))
	svc.RevokeToken("new", time.Now().Add(time.Hour))
	assert.False(t, svc.IsTokenRevoked("old"))
	assert.True(t, svc.IsTokenRevoked("abc"))
}

func TestCookies(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, "dayflow_session", true)

	c := svc.SessionCookie("tok", time.Now().Add(time.Hour).Unix())
	assert.Equal(t, "dayflow_session", c.Name)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	assert.Equal(t, "tok", svc.TokenFromCookie(req))

	cleared := svc.ClearCookie()
	assert.Equal(t, -1, cleared.MaxAge)
	assert.Empty(t, cleared.Value)
}
