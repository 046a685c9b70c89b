package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/example/luxa-shop/internal/auth"
	"github.com/example/luxa-shop/internal/domain/admin"
)

// SessionCookie holds the signed admin session token.
const SessionCookie = "admin_session"

type contextKey string

const SessionContextKey contextKey = "admin_session"

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// SessionFromRequest restores the admin session carried by the request
// cookie and runs it through the gate. It returns nil when there is no
// honoured session.
func SessionFromRequest(r *http.Request, gate *admin.Gate, tokens *auth.SessionTokens) *admin.Session {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	session, err := tokens.Restore(cookie.Value)
	if err != nil {
		return nil
	}
	if !gate.Check(session) {
		return nil
	}
	return session
}

// ClearSessionCookie expires the admin session cookie
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// RequireAdmin rejects requests without a live admin session and adds the
// session to the request context
func RequireAdmin(gate *admin.Gate, tokens *auth.SessionTokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := SessionFromRequest(r, gate, tokens)
			if session == nil {
				ClearSessionCookie(w)
				respondError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), SessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession retrieves the admin session from the request context
func GetSession(ctx context.Context) (*admin.Session, bool) {
	session, ok := ctx.Value(SessionContextKey).(*admin.Session)
	return session, ok
}
