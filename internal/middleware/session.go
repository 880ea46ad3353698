package middleware

import (
	"net/http"

	"employee_project/internal/session"
	"employee_project/internal/utils"
	"employee_project/pkg/logger"

	"go.uber.org/zap"
)

// Session resolves the caller from a bearer token or the session cookie and attaches a
// session.RequestContext to the request. Requests without valid credentials continue anonymously.
func Session(issuer *utils.TokenIssuer, store session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rc := session.NewRequestContext(w, r)

			tokenString, err := utils.ExtractBearerToken(r)
			if err != nil {
				logger.Logger.Debug("Ignoring authorization header", zap.Error(err))
			}
			if tokenString == "" {
				if cookie, err := r.Cookie(session.CookieName); err == nil {
					tokenString = cookie.Value
				}
			}

			if tokenString != "" {
				if identity, err := issuer.Verify(tokenString); err != nil {
					logger.Logger.Debug("Rejected token", zap.Error(err))
				} else if sess, err := store.Get(r.Context(), identity.SessionID); err != nil {
					logger.Logger.Debug("Session not active", zap.String("session_id", identity.SessionID), zap.Error(err))
				} else if sess.UserID == identity.UserID {
					rc.Identity = identity
					rc.Token = tokenString
				}
			}

			next.ServeHTTP(w, r.WithContext(session.WithRequestContext(r.Context(), rc)))
		})
	}
}
