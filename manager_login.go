package authgate

import (
	"context"

	"github.com/hireloop/authgate/internal/metrics"
	"github.com/hireloop/authgate/session"
)

// Login authenticates with email and password. On success the session is
// persisted, becomes the current view, and other instances sharing the
// storage observe it. A second Login while one is outstanding returns
// [ErrOperationInFlight].
func (m *Manager) Login(ctx context.Context, email, password string) (*session.Session, error) {
	release, err := m.gate.Begin("login")
	if err != nil {
		return nil, err
	}
	defer release()

	sess, err := m.backend.Login(ctx, email, password)
	if err != nil {
		m.metrics.Inc(metrics.MetricLoginFailure)
		m.emitAuditEmail(ctx, eventLogin, session.NormalizeEmail(email), err)
		return nil, err
	}

	if err := m.adopt(ctx, sess, UpdateLogin); err != nil {
		return nil, err
	}
	m.metrics.Inc(metrics.MetricLoginSuccess)
	m.emitAudit(ctx, eventLogin, sess, nil)
	return sess, nil
}

// GoogleLogin authenticates with a Google ID token. When local verification
// is configured, a token with a bad signature or wrong audience is rejected
// as [ErrGoogleTokenInvalid] without a backend round trip; the backend
// verifies authoritatively either way.
func (m *Manager) GoogleLogin(ctx context.Context, idToken string) (*session.Session, error) {
	release, err := m.gate.Begin("google-login")
	if err != nil {
		return nil, err
	}
	defer release()

	if m.google != nil {
		if err := m.google.verify(ctx, idToken); err != nil {
			m.metrics.Inc(metrics.MetricGoogleLoginFailure)
			m.emitAuditEmail(ctx, eventGoogleLogin, "", err)
			return nil, err
		}
	}

	sess, err := m.backend.GoogleLogin(ctx, idToken)
	if err != nil {
		m.metrics.Inc(metrics.MetricGoogleLoginFailure)
		m.emitAuditEmail(ctx, eventGoogleLogin, "", err)
		return nil, err
	}

	if err := m.adopt(ctx, sess, UpdateGoogleLogin); err != nil {
		return nil, err
	}
	m.metrics.Inc(metrics.MetricGoogleLoginSuccess)
	m.emitAudit(ctx, eventGoogleLogin, sess, nil)
	return sess, nil
}

// adopt persists a fresh session and makes it the current view. Persistence
// failure rolls nothing back server-side, but the view is not updated: a
// session the next load cannot see must not be handed out as current.
func (m *Manager) adopt(ctx context.Context, sess *session.Session, reason UpdateReason) error {
	if err := m.store.Save(ctx, sess); err != nil {
		return err
	}
	m.setCurrent(sess)
	m.notify(Update{Reason: reason, Session: sess})
	return nil
}
