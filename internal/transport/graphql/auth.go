package graphql

import (
	"context"

	"employee_project/internal/domain"
	"employee_project/internal/session"
	"employee_project/pkg/logger"

	"go.uber.org/zap"
)

// Login checks the credentials, opens a session and returns a token bound to it.
// Unknown users and wrong passwords produce the same error.
func (r *Resolver) Login(ctx context.Context, args credentialsArgs) (*string, error) {
	user, err := r.Users.FindByUsername(ctx, args.Username)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.NewError(domain.KindAuthFailed, invalidCredentials)
		}
		return nil, fail(ctx, "login", err, "")
	}
	if !r.Passwords.Verify(args.Password, user.Password) {
		return nil, domain.NewError(domain.KindAuthFailed, invalidCredentials)
	}

	sess, err := session.New(user.ID, r.SessionTTL)
	if err != nil {
		return nil, fail(ctx, "login", err, "")
	}
	if err := r.Sessions.Create(ctx, sess); err != nil {
		return nil, fail(ctx, "login", err, "")
	}

	token, err := r.Tokens.Issue(domain.Identity{UserID: user.ID, SessionID: sess.ID, IssuedAt: sess.CreatedAt})
	if err != nil {
		return nil, fail(ctx, "login", err, "")
	}

	session.FromContext(ctx).SetSessionCookie(token, sess.ExpiresAt)
	logger.Logger.Info("User logged in", zap.String("user_id", user.ID), zap.String("session_id", sess.ID))
	return &token, nil
}

// Logout destroys the caller's session, if any, and clears the session cookie.
func (r *Resolver) Logout(ctx context.Context) (*string, error) {
	rc := session.FromContext(ctx)
	if rc.Authenticated() {
		if err := r.Sessions.Destroy(ctx, rc.Identity.SessionID); err != nil {
			return nil, fail(ctx, "logout", err, "")
		}
		logger.Logger.Info("User logged out", zap.String("user_id", rc.Identity.UserID), zap.String("session_id", rc.Identity.SessionID))
	}
	rc.ClearSessionCookie()

	msg := loggedOut
	return &msg, nil
}
