package otpflow

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/hireloop/authgate/backend"
	"github.com/hireloop/authgate/credstore"
	"github.com/hireloop/authgate/internal/gate"
	"github.com/hireloop/authgate/session"
)

// DefaultProgressKey is the storage key reset-flow progress persists under.
const DefaultProgressKey = "authgate:reset-progress"

// ResetBackend is the backend surface the reset flow needs.
type ResetBackend interface {
	ForgotPassword(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, email, newPassword string) error
}

// ResetConfig configures a password-reset flow.
type ResetConfig struct {
	// Backend performs the three reset endpoints.
	Backend ResetBackend
	// Storage persists progress across restarts. When nil, progress is
	// held in memory only and Resume is a no-op.
	Storage credstore.Storage
	// ProgressKey overrides DefaultProgressKey.
	ProgressKey string
	// Digits is the expected OTP length; 0 accepts any non-empty code.
	Digits int
	// SeedEmail pre-fills the email field, e.g. from a deep link. It never
	// advances the flow: the email step still has to be submitted.
	SeedEmail string
	// Recorder receives transition events. Nil disables recording.
	Recorder Recorder
}

// ResetFlow is the password-reset state machine: email, otp, password, done.
// Exactly one transition per successful submission; progress is persisted
// after every transition so an interrupted reset resumes where it left off.
// Methods are safe for concurrent use, and concurrent submissions are
// rejected with [ErrSubmissionInFlight] rather than queued.
type ResetFlow struct {
	backend  ResetBackend
	storage  credstore.Storage
	key      string
	digits   int
	recorder Recorder
	id       string
	gate     *gate.Gate

	mu    sync.Mutex
	step  Step
	email string
}

type progressRecord struct {
	Email string `json:"email"`
	Step  Step   `json:"step"`
}

// NewResetFlow builds a flow positioned at the email step.
func NewResetFlow(cfg ResetConfig) (*ResetFlow, error) {
	if cfg.Backend == nil {
		return nil, errors.New("otpflow: ResetConfig.Backend is required")
	}
	key := cfg.ProgressKey
	if key == "" {
		key = DefaultProgressKey
	}
	return &ResetFlow{
		backend:  cfg.Backend,
		storage:  cfg.Storage,
		key:      key,
		digits:   cfg.Digits,
		recorder: cfg.Recorder,
		id:       uuid.NewString(),
		gate:     gate.New(),
		step:     StepEmail,
		email:    session.NormalizeEmail(cfg.SeedEmail),
	}, nil
}

// ID returns the flow instance identifier.
func (f *ResetFlow) ID() string { return f.id }

// Step returns the flow's current step.
func (f *ResetFlow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Email returns the flow's current email, seeded or submitted.
func (f *ResetFlow) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

// Resume repositions the flow from a persisted progress record. A missing,
// malformed, or out-of-range record is discarded silently and the flow stays
// at the email step; resumption must never trap a user in a broken state.
func (f *ResetFlow) Resume(ctx context.Context) error {
	if f.storage == nil {
		return nil
	}
	data, err := f.storage.Get(ctx, f.key)
	if err != nil {
		if errors.Is(err, credstore.ErrKeyNotFound) {
			return nil
		}
		return err
	}

	var rec progressRecord
	if err := json.Unmarshal(data, &rec); err != nil || rec.Email == "" {
		_ = f.storage.Delete(ctx, f.key)
		return nil
	}
	switch rec.Step {
	case StepEmail, StepOTP, StepPassword:
	default:
		_ = f.storage.Delete(ctx, f.key)
		return nil
	}

	f.mu.Lock()
	f.step = rec.Step
	f.email = session.NormalizeEmail(rec.Email)
	f.mu.Unlock()
	return nil
}

// SubmitEmail triggers the reset code email and advances to the otp step.
func (f *ResetFlow) SubmitEmail(ctx context.Context, email string) error {
	release, err := f.gate.Begin("reset")
	if err != nil {
		return err
	}
	defer release()

	if f.Step() != StepEmail {
		return ErrWrongStep
	}

	normalized := session.NormalizeEmail(email)
	if err := f.backend.ForgotPassword(ctx, normalized); err != nil {
		return err
	}

	f.transition(ctx, normalized, StepOTP)
	record(ctx, f.recorder, Event{FlowID: f.id, Flow: "reset", Email: normalized, Action: ActionOTPRequested})
	return nil
}

// SubmitOTP verifies the emailed code and advances to the password step.
// A wrong or malformed code leaves the step unchanged.
func (f *ResetFlow) SubmitOTP(ctx context.Context, code string) error {
	release, err := f.gate.Begin("reset")
	if err != nil {
		return err
	}
	defer release()

	if f.Step() != StepOTP {
		return ErrWrongStep
	}
	email := f.Email()

	if !validCode(code, f.digits) {
		record(ctx, f.recorder, Event{FlowID: f.id, Flow: "reset", Email: email, Action: ActionOTPRejected})
		return backend.ErrOTPInvalid
	}
	if err := f.backend.VerifyOTP(ctx, email, code); err != nil {
		if errors.Is(err, backend.ErrOTPInvalid) {
			record(ctx, f.recorder, Event{FlowID: f.id, Flow: "reset", Email: email, Action: ActionOTPRejected})
		}
		return err
	}

	f.transition(ctx, email, StepPassword)
	record(ctx, f.recorder, Event{FlowID: f.id, Flow: "reset", Email: email, Action: ActionOTPVerified})
	return nil
}

// SubmitPassword sets the replacement password and finishes the flow. If the
// backend reports the OTP was never verified — the verification state expired
// or was lost server-side — the flow rewinds hard to the email step, persists
// the rewind, and surfaces [backend.ErrOTPNotVerified] so the caller can
// explain the restart.
func (f *ResetFlow) SubmitPassword(ctx context.Context, newPassword string) error {
	release, err := f.gate.Begin("reset")
	if err != nil {
		return err
	}
	defer release()

	if f.Step() != StepPassword {
		return ErrWrongStep
	}
	email := f.Email()

	if err := f.backend.ResetPassword(ctx, email, newPassword); err != nil {
		if errors.Is(err, backend.ErrOTPNotVerified) {
			f.transition(ctx, email, StepEmail)
			record(ctx, f.recorder, Event{FlowID: f.id, Flow: "reset", Email: email, Action: ActionRewound})
		}
		return err
	}

	f.mu.Lock()
	f.step = StepDone
	f.mu.Unlock()
	if f.storage != nil {
		_ = f.storage.Delete(ctx, f.key)
	}
	record(ctx, f.recorder, Event{FlowID: f.id, Flow: "reset", Email: email, Action: ActionCompleted})
	return nil
}

// transition moves to a step and persists the progress record. Persistence
// failures are swallowed: the in-memory flow is the authority within a run,
// and a stale record is discarded by the next Resume.
func (f *ResetFlow) transition(ctx context.Context, email string, step Step) {
	f.mu.Lock()
	f.email = email
	f.step = step
	f.mu.Unlock()

	if f.storage == nil {
		return
	}
	data, err := json.Marshal(progressRecord{Email: email, Step: step})
	if err != nil {
		return
	}
	_ = f.storage.Set(ctx, f.key, data)
}
