package internaldefs

import (
	authgate "github.com/hireloop/authgate"
)

// CounterDef binds a counter ID to its exported name and help text. Both
// exporters iterate this one list so metric naming cannot drift between
// formats.
type CounterDef struct {
	ID   authgate.MetricID
	Name string
	Help string
}

// CounterDefs enumerates every exported counter.
var CounterDefs = []CounterDef{
	{ID: authgate.MetricLoginSuccess, Name: "authgate_login_success_total", Help: "Successful credential logins."},
	{ID: authgate.MetricLoginFailure, Name: "authgate_login_failure_total", Help: "Failed credential logins."},
	{ID: authgate.MetricGoogleLoginSuccess, Name: "authgate_google_login_success_total", Help: "Successful Google federated logins."},
	{ID: authgate.MetricGoogleLoginFailure, Name: "authgate_google_login_failure_total", Help: "Failed Google federated logins."},
	{ID: authgate.MetricLogout, Name: "authgate_logout_total", Help: "Completed logouts."},
	{ID: authgate.MetricLogoutBackendFailed, Name: "authgate_logout_backend_failed_total", Help: "Logouts whose backend invalidation call failed."},
	{ID: authgate.MetricHydrationSuccess, Name: "authgate_hydration_success_total", Help: "Session hydrations that found a valid record."},
	{ID: authgate.MetricHydrationEmpty, Name: "authgate_hydration_empty_total", Help: "Session hydrations that found no record."},
	{ID: authgate.MetricHydrationCorrupt, Name: "authgate_hydration_corrupt_total", Help: "Session hydrations that found a corrupt record and cleared it."},
	{ID: authgate.MetricRemoteReload, Name: "authgate_remote_reload_total", Help: "Session reloads triggered by another instance's mutation."},
	{ID: authgate.MetricRefreshSuccess, Name: "authgate_refresh_success_total", Help: "Successful access-token refreshes."},
	{ID: authgate.MetricRefreshFailure, Name: "authgate_refresh_failure_total", Help: "Failed access-token refreshes."},
	{ID: authgate.MetricOTPRequested, Name: "authgate_otp_requested_total", Help: "One-time codes requested."},
	{ID: authgate.MetricOTPVerifySuccess, Name: "authgate_otp_verify_success_total", Help: "One-time codes verified."},
	{ID: authgate.MetricOTPVerifyFailure, Name: "authgate_otp_verify_failure_total", Help: "One-time codes rejected."},
	{ID: authgate.MetricOTPRewind, Name: "authgate_otp_rewind_total", Help: "Reset flows rewound to the email step."},
	{ID: authgate.MetricResetCompleted, Name: "authgate_reset_completed_total", Help: "Completed password resets."},
	{ID: authgate.MetricRegistrationCompleted, Name: "authgate_registration_completed_total", Help: "Completed registrations."},
}

// AuditDroppedName is the counter for audit events lost to backpressure.
const AuditDroppedName = "authgate_audit_dropped_total"

// AuditDroppedHelp documents AuditDroppedName.
const AuditDroppedHelp = "Dropped audit events due to dispatcher backpressure."
