package session

import (
	"context"
	"net/http"
	"time"

	"employee_project/internal/domain"
)

const CookieName = "session_token"

type contextKey struct{}

// RequestContext is the per-request state handed to resolvers: who is calling and
// a handle on the response for the session cookie.
type RequestContext struct {
	Identity *domain.Identity
	Token    string

	w      http.ResponseWriter
	secure bool
}

func NewRequestContext(w http.ResponseWriter, r *http.Request) *RequestContext {
	return &RequestContext{w: w, secure: r.TLS != nil}
}

func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, rc)
}

// FromContext returns the request context, or an anonymous one without a response handle.
func FromContext(ctx context.Context) *RequestContext {
	if rc, ok := ctx.Value(contextKey{}).(*RequestContext); ok && rc != nil {
		return rc
	}
	return &RequestContext{}
}

func (rc *RequestContext) Authenticated() bool {
	return rc.Identity != nil
}

func (rc *RequestContext) SetSessionCookie(token string, expires time.Time) {
	if rc.w == nil {
		return
	}
	http.SetCookie(rc.w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   rc.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (rc *RequestContext) ClearSessionCookie() {
	if rc.w == nil {
		return
	}
	http.SetCookie(rc.w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   rc.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
