package authgate

import (
	"context"

	"github.com/hireloop/authgate/session"
)

type contextKey struct{ name string }

var sessionKey = contextKey{"session"}

// WithSession stashes a session in a context, for handlers downstream of a
// component that already resolved it.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// SessionFromContext retrieves a session stashed by [WithSession]. The
// second return is false when none is present or it is invalid.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*session.Session)
	if !ok || !sess.Valid() {
		return nil, false
	}
	return sess, true
}
