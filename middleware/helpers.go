package middleware

import (
	"context"

	"github.com/gncc/cricket-dashboard/access"
)

type contextKey string

const sessionContextKey contextKey = "session"

func WithSession(ctx context.Context, session access.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

func SessionFromContext(ctx context.Context) (access.Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(access.Session)
	return session, ok
}
