package api

import (
	"context"
)

type keyType string

const sessionKey keyType = "session"

// ctxWithSession adds the authenticated session to the context
func ctxWithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// ctxGetSession retrieves the session from the context
func ctxGetSession(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey).(Session)
	return s, ok
}

// ctxGetEmail returns the session email, or "" when the request is anonymous
func ctxGetEmail(ctx context.Context) string {
	s, _ := ctxGetSession(ctx)
	return s.Email
}
