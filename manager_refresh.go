package authgate

import (
	"context"
	"errors"
	"time"

	"github.com/hireloop/authgate/backend"
	"github.com/hireloop/authgate/internal/metrics"
	"github.com/hireloop/authgate/internal/token"
	"github.com/hireloop/authgate/session"
)

// Refresh trades the refresh cookie for a fresh access token and adopts the
// result. A refresh rejected as unauthorized means the cookie is dead: the
// local session is cleared and [ErrNotAuthenticated] is returned, since
// pretending to still be logged in would only defer every subsequent call's
// failure.
func (m *Manager) Refresh(ctx context.Context) (*session.Session, error) {
	release, err := m.gate.Begin("refresh")
	if err != nil {
		return nil, err
	}
	defer release()

	sess, err := m.backend.Refresh(ctx)
	if err != nil {
		m.metrics.Inc(metrics.MetricRefreshFailure)
		m.emitAudit(ctx, eventRefresh, m.Current(), err)

		if errors.Is(err, backend.ErrUnauthorized) {
			if clearErr := m.store.Clear(ctx); clearErr != nil {
				return nil, clearErr
			}
			m.setCurrent(nil)
			m.notify(Update{Reason: UpdateLogout})
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}

	if err := m.adopt(ctx, sess, UpdateRefresh); err != nil {
		return nil, err
	}
	m.metrics.Inc(metrics.MetricRefreshSuccess)
	m.emitAudit(ctx, eventRefresh, sess, nil)
	return sess, nil
}

// EnsureFresh refreshes the session if its access token expires within the
// configured skew. Tokens without a readable expiry are left alone. Returns
// the session to use, which is the current one unless a refresh happened.
func (m *Manager) EnsureFresh(ctx context.Context) (*session.Session, error) {
	current := m.Current()
	if !current.Valid() {
		return nil, ErrNotAuthenticated
	}
	if m.config.Refresh.Disabled {
		return current, nil
	}
	if !token.StaleWithin(current.AccessToken, time.Now(), m.config.Refresh.Skew) {
		return current, nil
	}
	return m.Refresh(ctx)
}
