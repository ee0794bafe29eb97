package jwt

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenTypeSession = "session"

// SessionClaims is the decoded content of a session token.
type SessionClaims struct {
	UserID    int64
	Role      user.Role
	SessionID string
	ExpiresAt time.Time
}

type Service interface {
	GenerateSessionToken(userID int64, role user.Role) (token string, sessionID string, expiresAt int64, err error)
	ParseClaims(token jwt.Token) (SessionClaims, error)
	JWTAuth() *jwtauth.JWTAuth
	SessionCookie(token string, expiresAt int64) *http.Cookie
	ClearCookie() *http.Cookie
	// TokenFromCookie reads the session token from the configured cookie
	TokenFromCookie(r *http.Request) string
	RevokeToken(sessionID string, expiresAt time.Time)
	IsTokenRevoked(sessionID string) bool
}

type JWTService struct {
	expiration    time.Duration
	cookieName    string
	cookieSecure  bool
	tokenAuth     *jwtauth.JWTAuth
	revokedTokens map[string]int64
	mu            sync.RWMutex
	now           func() time.Time
}

// ErrMalformedClaims is returned when a verified token lacks session claims.
var ErrMalformedClaims = errors.New("session token has malformed claims")

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, expiration time.Duration, cookieName string, cookieSecure bool) *JWTService {
	return &JWTService{
		expiration:    expiration,
		cookieName:    cookieName,
		cookieSecure:  cookieSecure,
		tokenAuth:     jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens: make(map[string]int64),
		now:           time.Now,
	}
}

func (j *JWTService) GenerateSessionToken(userID int64, role user.Role) (token string, sessionID string, expiresAt int64, err error) {
	sessionID = uuid.NewString()
	expiresAt = j.now().Add(j.expiration).Unix()

	claims := map[string]interface{}{
		"user_id": strconv.FormatInt(userID, 10),
		"role":    string(role),
		"type":    tokenTypeSession,
		"jti":     sessionID,
		"exp":     expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, sessionID, expiresAt, err
}

// ParseClaims extracts session claims from a token already verified by jwtauth.
func (j *JWTService) ParseClaims(token jwt.Token) (SessionClaims, error) {
	tokenType, ok := token.Get("type")
	if !ok || tokenType != tokenTypeSession {
		return SessionClaims{}, ErrMalformedClaims
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return SessionClaims{}, ErrMalformedClaims
	}
	userIDStr, ok := userIDVal.(string)
	if !ok {
		return SessionClaims{}, ErrMalformedClaims
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil || userID <= 0 {
		return SessionClaims{}, ErrMalformedClaims
	}

	roleVal, ok := token.Get("role")
	if !ok {
		return SessionClaims{}, ErrMalformedClaims
	}
	roleStr, _ := roleVal.(string)
	role, ok := user.ParseRole(roleStr)
	if !ok {
		return SessionClaims{}, ErrMalformedClaims
	}

	return SessionClaims{
		UserID:    userID,
		Role:      role,
		SessionID: token.JwtID(),
		ExpiresAt: token.Expiration(),
	}, nil
}

func (j *JWTService) SessionCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     j.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (j *JWTService) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     j.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   j.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (j *JWTService) TokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(j.cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// RevokeToken denies sessionID until expiresAt. Entries past their expiry are pruned
// on every call since the token itself would be rejected by then.
func (j *JWTService) RevokeToken(sessionID string, expiresAt time.Time) {
	if sessionID == "" {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now().Unix()
	for id, exp := range j.revokedTokens {
		if exp < now {
			delete(j.revokedTokens, id)
		}
	}
	j.revokedTokens[sessionID] = expiresAt.Unix()
}

func (j *JWTService) IsTokenRevoked(sessionID string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[sessionID]
	return revoked
}
