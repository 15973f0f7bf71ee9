package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/rgaultier/taxiresa/internal/utils"
)

// SessionCookie carries the admin session token between requests.
const SessionCookie = "admin_session"

// LoginPath is where unauthenticated admin requests are pointed to.
const LoginPath = "/admin/login"

type sessionKeyType struct{}

var sessionKey sessionKeyType

// RequireSession wraps an admin handler. Requests without a valid session get
// a 401 carrying the login redirect; valid ones proceed with the session in
// the request context.
func (s *Service) RequireSession(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		token := TokenFromRequest(r)
		session, ok := s.Session(token)
		if !ok {
			w.Header().Set("Location", LoginPath)
			ae := utils.NewUnauthorized("authentication required")
			utils.RenderResponse(r, w, ae.StatusCode, ae)
			return
		}
		ctx := context.WithValue(r.Context(), sessionKey, session)
		next(w, r.WithContext(ctx), ps)
	}
}

// TokenFromRequest reads the session token from the cookie or, failing that,
// a bearer Authorization header.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// SessionFromContext returns the authenticated session, if any.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionKey).(*Session)
	return session, ok
}
