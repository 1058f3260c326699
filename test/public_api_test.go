package test

import (
	"context"
	"net/http"
	"testing"

	authgate "github.com/hireloop/authgate"
	"github.com/hireloop/authgate/middleware"
	"github.com/hireloop/authgate/otpflow"
	"github.com/hireloop/authgate/role"
	"github.com/hireloop/authgate/session"
)

// This test intentionally guards public API compile-compat for consumers.
func TestPublicAPISurfaceCompile(t *testing.T) {
	_ = authgate.New

	var _ *authgate.Manager
	var _ authgate.Config
	var _ authgate.Backend
	var _ authgate.Update
	var _ authgate.AuditSink
	var _ authgate.MetricsSnapshot

	var _ error = authgate.ErrInvalidCredentials
	var _ error = authgate.ErrAccountExists
	var _ error = authgate.ErrOTPInvalid
	var _ error = authgate.ErrOTPNotVerified
	var _ error = authgate.ErrBackendUnavailable
	var _ error = authgate.ErrCorruptRecord
	var _ error = authgate.ErrOperationInFlight
	var _ error = authgate.ErrNotAuthenticated

	var _ func(middleware.GuardConfig) func(http.Handler) http.Handler = middleware.Guard

	var _ func(*authgate.Manager) *session.Account = (*authgate.Manager).Account
	var _ func(*authgate.Manager) string = (*authgate.Manager).AccessToken
	var _ func(*authgate.Manager) bool = (*authgate.Manager).Hydrating
	var _ func(*authgate.Manager, context.Context) error = (*authgate.Manager).Reload
	var _ func(*authgate.Manager, context.Context, string, string) (*session.Session, error) = (*authgate.Manager).Login
	var _ func(*authgate.Manager, context.Context, string) (*session.Session, error) = (*authgate.Manager).GoogleLogin
	var _ func(*authgate.Manager, context.Context) error = (*authgate.Manager).Logout
	var _ func(*authgate.Manager, context.Context) (*session.Session, error) = (*authgate.Manager).Refresh
	var _ func(*authgate.Manager, context.Context) (*session.Session, error) = (*authgate.Manager).EnsureFresh
	var _ func(*authgate.Manager, string) (*otpflow.ResetFlow, error) = (*authgate.Manager).BeginPasswordReset
	var _ func(*authgate.Manager) (*otpflow.RegistrationFlow, error) = (*authgate.Manager).BeginRegistration

	var _ func([]role.Role) string = role.DefaultLandingPath
	var _ func([]role.Role, string) string = role.ResolveRedirect
}
