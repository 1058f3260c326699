package authgate

import (
	"errors"

	"github.com/hireloop/authgate/backend"
	"github.com/hireloop/authgate/credstore"
	"github.com/hireloop/authgate/internal/audit"
	"github.com/hireloop/authgate/internal/gate"
	"github.com/hireloop/authgate/internal/metrics"
)

// Builder assembles a Manager. Configure during initialization, call Build
// once, then treat the result as immutable wiring.
type Builder struct {
	config   Config
	storage  credstore.Storage
	notifier credstore.Notifier
	backend  Backend
	sink     AuditSink

	built bool
}

// New starts a builder with default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithStorage sets the session persistence backend. Required.
func (b *Builder) WithStorage(storage credstore.Storage) *Builder {
	b.storage = storage
	return b
}

// WithNotifier sets the change channel other manager instances are observed
// through. Optional; without one, remote changes go unnoticed. When the
// storage also implements [credstore.Notifier] (the in-process Memory does),
// it is used automatically and this call is unnecessary.
func (b *Builder) WithNotifier(notifier credstore.Notifier) *Builder {
	b.notifier = notifier
	return b
}

// WithBackend injects a Backend implementation, replacing the REST client
// that would otherwise be built from Config.Backend.
func (b *Builder) WithBackend(be Backend) *Builder {
	b.backend = be
	return b
}

// WithAuditSink sets the audit event destination and enables auditing.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.sink = sink
	b.config.Audit.Enabled = true
	return b
}

// WithMetricsEnabled toggles counter collection.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the wiring and constructs the Manager. The Manager is
// inert until Start is called.
func (b *Builder) Build() (*Manager, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if err := b.config.Validate(); err != nil {
		return nil, err
	}
	if b.storage == nil {
		return nil, errors.New("storage required")
	}

	be := b.backend
	if be == nil {
		if b.config.Backend.BaseURL == "" {
			return nil, errors.New("Backend.BaseURL required when no backend is injected")
		}
		client, err := backend.NewClient(backend.Config{
			BaseURL: b.config.Backend.BaseURL,
			Timeout: b.config.Backend.Timeout,
		})
		if err != nil {
			return nil, err
		}
		be = client
	}

	notifier := b.notifier
	if notifier == nil {
		if n, ok := b.storage.(credstore.Notifier); ok {
			notifier = n
		}
	}

	m := &Manager{
		config:   b.config,
		backend:  be,
		notifier: notifier,
		store:    credstore.NewStore(b.storage, notifier, b.config.Storage.Keys),
		storage:  b.storage,
		audit: audit.NewDispatcher(audit.Config{
			Enabled:    b.config.Audit.Enabled,
			BufferSize: b.config.Audit.BufferSize,
			DropIfFull: b.config.Audit.DropIfFull,
		}, b.sink),
		metrics: metrics.New(metrics.Config{Enabled: b.config.Metrics.Enabled}),
		gate:    gate.New(),
		updates: make(chan Update, updateBuffer),
	}

	if b.config.Google.VerifyLocally {
		m.google = newGoogleVerifier(b.config.Google)
	}

	b.built = true
	return m, nil
}
