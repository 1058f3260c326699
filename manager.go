package authgate

import (
	"context"
	"errors"
	"sync"

	"github.com/hireloop/authgate/credstore"
	"github.com/hireloop/authgate/internal/audit"
	"github.com/hireloop/authgate/internal/gate"
	"github.com/hireloop/authgate/internal/metrics"
	"github.com/hireloop/authgate/role"
	"github.com/hireloop/authgate/session"
)

const updateBuffer = 16

// Manager is the session facade: it owns the in-memory session view, keeps
// it consistent with the credential store, and exposes the auth operations.
// Several Manager instances may share one Storage/Notifier pair; each
// instance observes the others' mutations and reloads, so a logout anywhere
// is a logout everywhere.
//
// Build one with [New]; call [Manager.Start] before use and
// [Manager.Close] when done.
type Manager struct {
	config   Config
	backend  Backend
	notifier credstore.Notifier
	store    *credstore.Store
	storage  credstore.Storage
	audit    *audit.Dispatcher
	metrics  *metrics.Metrics
	gate     *gate.Gate
	google   *googleVerifier

	mu        sync.Mutex
	current   *session.Session
	started   bool
	hydrating bool
	closed    bool

	updates   chan Update
	stopWatch func()
	watchDone chan struct{}
	closeOnce sync.Once
}

// Start hydrates the session view from storage and begins watching for
// remote changes. A corrupt persisted record is counted, audited, and
// treated as logged out; Start does not fail for it.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrManagerClosed
	}
	if m.started {
		m.mu.Unlock()
		return errors.New("manager already started")
	}
	m.started = true
	m.hydrating = true
	m.mu.Unlock()

	sess, err := m.store.Load(ctx)
	switch {
	case errors.Is(err, ErrCorruptRecord):
		m.metrics.Inc(metrics.MetricHydrationCorrupt)
		m.emitAudit(ctx, eventHydration, nil, err)
		sess = nil
	case err != nil:
		m.mu.Lock()
		m.hydrating = false
		m.mu.Unlock()
		return err
	case sess == nil:
		m.metrics.Inc(metrics.MetricHydrationEmpty)
	default:
		m.metrics.Inc(metrics.MetricHydrationSuccess)
		m.emitAudit(ctx, eventHydration, sess, nil)
	}

	m.mu.Lock()
	m.current = sess
	m.hydrating = false
	m.mu.Unlock()
	m.notify(Update{Reason: UpdateHydration, Session: sess})

	if m.notifier != nil {
		ch, stop, err := m.notifier.Subscribe(ctx)
		if err != nil {
			return err
		}
		m.stopWatch = stop
		m.watchDone = make(chan struct{})
		go m.watch(ch)
	}
	return nil
}

// watch reloads the session view whenever another instance mutates the
// session keys. Own writes are identified by origin and skipped.
func (m *Manager) watch(ch <-chan credstore.Change) {
	defer close(m.watchDone)

	for change := range ch {
		if change.Origin == m.store.Origin() {
			continue
		}
		if !change.Touches(m.store.SessionKeys()...) {
			continue
		}

		ctx := context.Background()
		sess, err := m.store.Load(ctx)
		if err != nil {
			if errors.Is(err, ErrCorruptRecord) {
				m.metrics.Inc(metrics.MetricHydrationCorrupt)
			}
			sess = nil
		}
		m.metrics.Inc(metrics.MetricRemoteReload)
		m.setCurrent(sess)
		m.notify(Update{Reason: UpdateRemote, Session: sess})
	}
}

// Current returns the session view, or nil when logged out.
func (m *Manager) Current() *session.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Account returns the current session's account snapshot, or nil when
// logged out.
func (m *Manager) Account() *session.Account {
	sess := m.Current()
	if !sess.Valid() {
		return nil
	}
	acct := sess.Account
	return &acct
}

// AccessToken returns the current access token, empty when logged out.
func (m *Manager) AccessToken() string {
	sess := m.Current()
	if !sess.Valid() {
		return ""
	}
	return sess.AccessToken
}

// Hydrating reports whether the initial load from storage is still in
// progress. It is true between [New] and the completion of [Manager.Start]'s
// first hydration pass, then false for the Manager's lifetime.
func (m *Manager) Hydrating() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.started || m.hydrating
}

// Reload re-reads the session view from storage, replacing the in-memory
// state. A corrupt record is treated as logged out, same as during
// hydration.
func (m *Manager) Reload(ctx context.Context) error {
	sess, err := m.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrCorruptRecord) {
			return err
		}
		m.metrics.Inc(metrics.MetricHydrationCorrupt)
		sess = nil
	}
	m.setCurrent(sess)
	m.notify(Update{Reason: UpdateRemote, Session: sess})
	return nil
}

// Authenticated reports whether a valid session is held.
func (m *Manager) Authenticated() bool {
	return m.Current().Valid()
}

// Roles returns the current session's role set, nil when logged out.
func (m *Manager) Roles() []role.Role {
	return m.Current().Roles()
}

// LandingPath returns the role-appropriate landing path for the current
// session; the home path when logged out.
func (m *Manager) LandingPath() string {
	return role.DefaultLandingPath(m.Roles())
}

// ResolveRedirect resolves a post-login destination against the current
// session's roles, sanitizing the requested path.
func (m *Manager) ResolveRedirect(next string) string {
	return role.ResolveRedirect(m.Roles(), next)
}

// Updates delivers session-view change notifications: local logins and
// logouts, refreshes, and remote changes. The channel is buffered; a
// non-draining consumer loses notifications rather than blocking operations.
// Closed by [Manager.Close].
func (m *Manager) Updates() <-chan Update {
	return m.updates
}

// AuditDropped reports audit events lost to backpressure.
func (m *Manager) AuditDropped() uint64 {
	return m.audit.Dropped()
}

// Close stops the remote watch, drains the audit dispatcher, and closes the
// updates channel. Safe to call twice.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		// Mark closed and close updates under the same lock notify sends
		// under, so no notification can race the close.
		m.mu.Lock()
		m.closed = true
		close(m.updates)
		m.mu.Unlock()

		if m.stopWatch != nil {
			m.stopWatch()
			<-m.watchDone
		}
		m.audit.Close()
	})
}

func (m *Manager) setCurrent(sess *session.Session) {
	m.mu.Lock()
	m.current = sess
	m.mu.Unlock()
}

func (m *Manager) notify(u Update) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	select {
	case m.updates <- u:
	default:
	}
}
