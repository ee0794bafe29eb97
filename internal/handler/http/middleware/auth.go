package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/hrms-backend-go/internal/handler/http/response"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// Authenticate verifies the session token from the cookie or the Authorization header
// and stores the principal in the request context. Requests without a usable session
// are answered with 401.
func Authenticate(jwtService jwt.Service) func(http.Handler) http.Handler {
	verify := jwtauth.Verify(jwtService.JWTAuth(), jwtService.TokenFromCookie, jwtauth.TokenFromHeader)

	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			principal, err := principalFromRequest(r, jwtService)
			if err != nil {
				response.HandleError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.NewContext(r.Context(), principal)))
		}
		return verify(http.HandlerFunc(hfn))
	}
}

// RequireSessionPage is the page flavour of Authenticate: it redirects to the login
// form and remembers where the visitor was going.
func RequireSessionPage(jwtService jwt.Service) func(http.Handler) http.Handler {
	verify := jwtauth.Verify(jwtService.JWTAuth(), jwtService.TokenFromCookie)

	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			principal, err := principalFromRequest(r, jwtService)
			if err != nil {
				http.Redirect(w, r, "/login?redirect="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.NewContext(r.Context(), principal)))
		}
		return verify(http.HandlerFunc(hfn))
	}
}

func principalFromRequest(r *http.Request, jwtService jwt.Service) (auth.Principal, error) {
	token, _, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		if err != nil && !errors.Is(err, jwtauth.ErrNoTokenFound) {
			slog.Debug("session token rejected", "error", err)
		}
		return auth.Principal{}, auth.ErrNotAuthenticated
	}

	claims, err := jwtService.ParseClaims(token)
	if err != nil {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	if jwtService.IsTokenRevoked(claims.SessionID) {
		return auth.Principal{}, auth.ErrSessionRevoked
	}

	return auth.Principal{
		UserID:    claims.UserID,
		Role:      claims.Role,
		SessionID: claims.SessionID,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}
