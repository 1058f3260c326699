package otpflow

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/hireloop/authgate/backend"
	"github.com/hireloop/authgate/internal/gate"
	"github.com/hireloop/authgate/session"
)

// RegistrationBackend is the backend surface the registration flow needs.
type RegistrationBackend interface {
	Register(ctx context.Context, email, password string) error
	VerifyRegistration(ctx context.Context, email, otp string) error
}

// RegistrationConfig configures an account-registration flow.
type RegistrationConfig struct {
	Backend RegistrationBackend
	// Digits is the expected OTP length; 0 accepts any non-empty code.
	Digits int
	// Recorder receives transition events. Nil disables recording.
	Recorder Recorder
}

// RegistrationFlow is the registration state machine: email, otp, done.
// Unlike the reset flow it is not persisted — an abandoned registration
// simply starts over.
type RegistrationFlow struct {
	backend  RegistrationBackend
	digits   int
	recorder Recorder
	id       string
	gate     *gate.Gate

	mu    sync.Mutex
	step  Step
	email string
}

// NewRegistrationFlow builds a flow positioned at the email step.
func NewRegistrationFlow(cfg RegistrationConfig) (*RegistrationFlow, error) {
	if cfg.Backend == nil {
		return nil, errors.New("otpflow: RegistrationConfig.Backend is required")
	}
	return &RegistrationFlow{
		backend:  cfg.Backend,
		digits:   cfg.Digits,
		recorder: cfg.Recorder,
		id:       uuid.NewString(),
		gate:     gate.New(),
		step:     StepEmail,
	}, nil
}

// ID returns the flow instance identifier.
func (f *RegistrationFlow) ID() string { return f.id }

// Step returns the flow's current step.
func (f *RegistrationFlow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Email returns the submitted email, empty before the first step.
func (f *RegistrationFlow) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

// SubmitEmail creates the pending account and advances to the otp step.
// An email collision surfaces as [backend.ErrAccountExists] with no
// transition.
func (f *RegistrationFlow) SubmitEmail(ctx context.Context, email, password string) error {
	release, err := f.gate.Begin("registration")
	if err != nil {
		return err
	}
	defer release()

	if f.Step() != StepEmail {
		return ErrWrongStep
	}

	normalized := session.NormalizeEmail(email)
	if err := f.backend.Register(ctx, normalized, password); err != nil {
		return err
	}

	f.mu.Lock()
	f.email = normalized
	f.step = StepOTP
	f.mu.Unlock()
	record(ctx, f.recorder, Event{FlowID: f.id, Flow: "registration", Email: normalized, Action: ActionOTPRequested})
	return nil
}

// SubmitOTP verifies the emailed code and finishes the flow. A wrong or
// malformed code leaves the step unchanged.
func (f *RegistrationFlow) SubmitOTP(ctx context.Context, code string) error {
	release, err := f.gate.Begin("registration")
	if err != nil {
		return err
	}
	defer release()

	if f.Step() != StepOTP {
		return ErrWrongStep
	}
	email := f.Email()

	if !validCode(code, f.digits) {
		record(ctx, f.recorder, Event{FlowID: f.id, Flow: "registration", Email: email, Action: ActionOTPRejected})
		return backend.ErrOTPInvalid
	}
	if err := f.backend.VerifyRegistration(ctx, email, code); err != nil {
		if errors.Is(err, backend.ErrOTPInvalid) {
			record(ctx, f.recorder, Event{FlowID: f.id, Flow: "registration", Email: email, Action: ActionOTPRejected})
		}
		return err
	}

	f.mu.Lock()
	f.step = StepDone
	f.mu.Unlock()
	record(ctx, f.recorder, Event{FlowID: f.id, Flow: "registration", Email: email, Action: ActionOTPVerified})
	record(ctx, f.recorder, Event{FlowID: f.id, Flow: "registration", Email: email, Action: ActionCompleted})
	return nil
}
