package authgate

import (
	"context"

	"github.com/hireloop/authgate/internal/metrics"
)

// Logout ends the session. The backend call is best-effort: its failure is
// counted and audited but never blocks the local clear, because a user who
// asked to log out must end up logged out on this side regardless of
// backend health. The clear is observed by other instances sharing the
// storage.
func (m *Manager) Logout(ctx context.Context) error {
	release, err := m.gate.Begin("logout")
	if err != nil {
		return err
	}
	defer release()

	prev := m.Current()

	if err := m.backend.Logout(ctx); err != nil {
		m.metrics.Inc(metrics.MetricLogoutBackendFailed)
		m.emitAudit(ctx, eventLogoutBackend, prev, err)
	}

	if err := m.store.Clear(ctx); err != nil {
		return err
	}
	m.setCurrent(nil)
	m.notify(Update{Reason: UpdateLogout})
	m.metrics.Inc(metrics.MetricLogout)
	m.emitAudit(ctx, eventLogout, prev, nil)
	return nil
}
