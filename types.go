package authgate

import (
	"context"

	"github.com/hireloop/authgate/session"
)

// Backend is the full auth API surface the Manager drives. *backend.Client
// implements it; tests substitute fakes.
type Backend interface {
	Login(ctx context.Context, email, password string) (*session.Session, error)
	GoogleLogin(ctx context.Context, idToken string) (*session.Session, error)
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) (*session.Session, error)
	Register(ctx context.Context, email, password string) error
	VerifyRegistration(ctx context.Context, email, otp string) error
	ForgotPassword(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, email, newPassword string) error
}

// UpdateReason says why the Manager's session view changed.
type UpdateReason string

const (
	// UpdateLogin is a successful local login.
	UpdateLogin UpdateReason = "login"
	// UpdateGoogleLogin is a successful local federated login.
	UpdateGoogleLogin UpdateReason = "google_login"
	// UpdateLogout is a local logout.
	UpdateLogout UpdateReason = "logout"
	// UpdateRefresh is a transparent token refresh.
	UpdateRefresh UpdateReason = "refresh"
	// UpdateRemote is a change made by another manager instance sharing
	// the same storage, observed through the notifier.
	UpdateRemote UpdateReason = "remote"
	// UpdateHydration is the initial load at Start.
	UpdateHydration UpdateReason = "hydration"
)

// Update is a session-view change notification. Session is nil when the
// change ended in a logged-out state.
type Update struct {
	Reason  UpdateReason
	Session *session.Session
}
