package authgate

import "github.com/hireloop/authgate/internal/metrics"

// MetricID identifies a counter. Aliased from the internal metrics package
// so exporters and consumers can name counters without reaching inside.
type MetricID = metrics.MetricID

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot = metrics.Snapshot

// Counter identifiers.
const (
	MetricLoginSuccess          = metrics.MetricLoginSuccess
	MetricLoginFailure          = metrics.MetricLoginFailure
	MetricGoogleLoginSuccess    = metrics.MetricGoogleLoginSuccess
	MetricGoogleLoginFailure    = metrics.MetricGoogleLoginFailure
	MetricLogout                = metrics.MetricLogout
	MetricLogoutBackendFailed   = metrics.MetricLogoutBackendFailed
	MetricHydrationSuccess      = metrics.MetricHydrationSuccess
	MetricHydrationEmpty        = metrics.MetricHydrationEmpty
	MetricHydrationCorrupt      = metrics.MetricHydrationCorrupt
	MetricRemoteReload          = metrics.MetricRemoteReload
	MetricRefreshSuccess        = metrics.MetricRefreshSuccess
	MetricRefreshFailure        = metrics.MetricRefreshFailure
	MetricOTPRequested          = metrics.MetricOTPRequested
	MetricOTPVerifySuccess      = metrics.MetricOTPVerifySuccess
	MetricOTPVerifyFailure      = metrics.MetricOTPVerifyFailure
	MetricOTPRewind             = metrics.MetricOTPRewind
	MetricResetCompleted        = metrics.MetricResetCompleted
	MetricRegistrationCompleted = metrics.MetricRegistrationCompleted
)

// MetricsSnapshot returns current counter values. Empty when metrics are
// disabled.
func (m *Manager) MetricsSnapshot() MetricsSnapshot {
	return m.metrics.Snapshot()
}
