package middleware

import (
	"context"
	"net/http"

	"github.com/NihalNavath/Campus-Navigator/internal/api/problem"
	"github.com/NihalNavath/Campus-Navigator/internal/auth"
)

const sessionKey contextKey = "adminSession"

// SessionAuth guards a handler behind the admin session cookie. Requests
// without a valid, unexpired token get a 401; authenticated requests carry
// the session record in context for handlers that need the identity.
func SessionAuth(authenticator *auth.Authenticator, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authenticator == nil {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", problem.ErrUnauthorized, env)
				return
			}

			token := auth.TokenFromRequest(r)
			session, ok := authenticator.GetSession(token)
			if !ok {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", problem.ErrUnauthorized, env)
				return
			}

			ctx := contextWithSession(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithSession(ctx context.Context, session auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// SessionFromRequest returns the authenticated session attached by
// SessionAuth, if any.
func SessionFromRequest(r *http.Request) (auth.Session, bool) {
	if r == nil {
		return auth.Session{}, false
	}
	session, ok := r.Context().Value(sessionKey).(auth.Session)
	return session, ok
}
