package otpflow

import (
	"context"
	"errors"

	"github.com/hireloop/authgate/internal/gate"
)

// Step identifies a position in an OTP flow.
type Step string

const (
	// StepEmail collects the account email and triggers the code email.
	StepEmail Step = "email"
	// StepOTP collects the emailed one-time code.
	StepOTP Step = "otp"
	// StepPassword collects the replacement password (reset flow only).
	StepPassword Step = "password"
	// StepDone is terminal.
	StepDone Step = "done"
)

// ErrWrongStep is returned when a submission does not match the flow's
// current step. Steps are never skipped, including for seeded emails.
var ErrWrongStep = errors.New("otpflow: submission does not match current step")

// ErrSubmissionInFlight is returned when a submission is attempted while a
// previous one on the same flow has not finished.
var ErrSubmissionInFlight = gate.ErrInFlight

// Event is a flow transition notification delivered to a [Recorder].
type Event struct {
	// FlowID is the flow instance identifier.
	FlowID string
	// Flow is "reset" or "registration".
	Flow string
	// Email is the normalized flow email, empty before the first step.
	Email string
	// Action is one of: "otp_requested", "otp_verified", "otp_rejected",
	// "rewound", "completed".
	Action string
}

// Flow action names carried in [Event].
const (
	ActionOTPRequested = "otp_requested"
	ActionOTPVerified  = "otp_verified"
	ActionOTPRejected  = "otp_rejected"
	ActionRewound      = "rewound"
	ActionCompleted    = "completed"
)

// Recorder receives flow transition events, typically to feed audit and
// metrics. A nil Recorder disables recording.
type Recorder interface {
	Record(ctx context.Context, ev Event)
}

func record(ctx context.Context, r Recorder, ev Event) {
	if r != nil {
		r.Record(ctx, ev)
	}
}

// validCode reports whether the code matches the configured OTP length.
// digits == 0 accepts any non-empty code; the backend remains the authority
// either way.
func validCode(code string, digits int) bool {
	if code == "" {
		return false
	}
	if digits == 0 {
		return true
	}
	if len(code) != digits {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
