package authgate

import (
	"context"
	"io"
	"time"

	"github.com/hireloop/authgate/internal/audit"
	"github.com/hireloop/authgate/otpflow"
	"github.com/hireloop/authgate/session"
)

// AuditEvent is the structured record delivered to an [AuditSink].
type AuditEvent = audit.Event

// AuditSink receives audit events from the Manager's dispatcher. Sinks run
// on the dispatcher goroutine; a slow sink sheds events (when DropIfFull is
// set) rather than slowing operations.
type AuditSink = audit.Sink

// NoOpAuditSink discards events.
type NoOpAuditSink = audit.NoOpSink

// NewChannelAuditSink buffers events in a channel, for tests and in-process
// consumers.
func NewChannelAuditSink(buffer int) *audit.ChannelSink {
	return audit.NewChannelSink(buffer)
}

// NewJSONAuditSink writes one JSON event per line.
func NewJSONAuditSink(w io.Writer) *audit.JSONWriterSink {
	return audit.NewJSONWriterSink(w)
}

// Audit event types.
const (
	eventLogin         = "login"
	eventGoogleLogin   = "google_login"
	eventLogout        = "logout"
	eventLogoutBackend = "logout_backend"
	eventHydration     = "hydration"
	eventRefresh       = "refresh"
)

func (m *Manager) emitAudit(ctx context.Context, eventType string, sess *session.Session, opErr error) {
	event := AuditEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		Success:   opErr == nil,
	}
	if sess.Valid() {
		event.AccountID = sess.Account.ID
		event.Email = sess.Account.Email
	}
	if opErr != nil {
		event.Error = opErr.Error()
	}
	m.audit.Emit(ctx, event)
}

func (m *Manager) emitAuditEmail(ctx context.Context, eventType, email string, opErr error) {
	event := AuditEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		Email:     email,
		Success:   opErr == nil,
	}
	if opErr != nil {
		event.Error = opErr.Error()
	}
	m.audit.Emit(ctx, event)
}

func (m *Manager) emitFlowAudit(ctx context.Context, ev otpflow.Event) {
	m.audit.Emit(ctx, AuditEvent{
		Timestamp: time.Now(),
		EventType: ev.Flow + "_" + ev.Action,
		Email:     ev.Email,
		FlowID:    ev.FlowID,
		Success:   ev.Action != otpflow.ActionOTPRejected && ev.Action != otpflow.ActionRewound,
	})
}
