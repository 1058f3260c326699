package authgate

import (
	"context"

	"github.com/hireloop/authgate/internal/metrics"
	"github.com/hireloop/authgate/otpflow"
)

// BeginPasswordReset creates a reset flow wired to this Manager's backend,
// storage, audit, and metrics. seedEmail pre-fills the email field (e.g.
// from a deep link) without advancing the flow; pass "" for none.
func (m *Manager) BeginPasswordReset(seedEmail string) (*otpflow.ResetFlow, error) {
	return otpflow.NewResetFlow(otpflow.ResetConfig{
		Backend:     m.backend,
		Storage:     m.storage,
		ProgressKey: m.config.Storage.ResetProgressKey,
		Digits:      m.config.OTP.Digits,
		SeedEmail:   seedEmail,
		Recorder:    flowRecorder{m: m},
	})
}

// ResumePasswordReset creates a reset flow and repositions it from persisted
// progress, so an interrupted reset continues where it stopped. A missing or
// malformed record yields a flow at the email step.
func (m *Manager) ResumePasswordReset(ctx context.Context) (*otpflow.ResetFlow, error) {
	flow, err := m.BeginPasswordReset("")
	if err != nil {
		return nil, err
	}
	if err := flow.Resume(ctx); err != nil {
		return nil, err
	}
	return flow, nil
}

// BeginRegistration creates a registration flow wired to this Manager.
// Registration progress is not persisted; an abandoned flow starts over.
func (m *Manager) BeginRegistration() (*otpflow.RegistrationFlow, error) {
	return otpflow.NewRegistrationFlow(otpflow.RegistrationConfig{
		Backend:  m.backend,
		Digits:   m.config.OTP.Digits,
		Recorder: flowRecorder{m: m},
	})
}

// flowRecorder adapts flow transition events into audit events and metric
// increments.
type flowRecorder struct {
	m *Manager
}

func (r flowRecorder) Record(ctx context.Context, ev otpflow.Event) {
	switch ev.Action {
	case otpflow.ActionOTPRequested:
		r.m.metrics.Inc(metrics.MetricOTPRequested)
	case otpflow.ActionOTPVerified:
		r.m.metrics.Inc(metrics.MetricOTPVerifySuccess)
	case otpflow.ActionOTPRejected:
		r.m.metrics.Inc(metrics.MetricOTPVerifyFailure)
	case otpflow.ActionRewound:
		r.m.metrics.Inc(metrics.MetricOTPRewind)
	case otpflow.ActionCompleted:
		if ev.Flow == "reset" {
			r.m.metrics.Inc(metrics.MetricResetCompleted)
		} else {
			r.m.metrics.Inc(metrics.MetricRegistrationCompleted)
		}
	}
	r.m.emitFlowAudit(ctx, ev)
}
