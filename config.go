package authgate

import (
	"errors"
	"time"

	"github.com/hireloop/authgate/credstore"
)

// Config is the Manager's nested configuration. Zero value plus
// defaultConfig() fills are valid for everything except Backend.BaseURL,
// which is required unless a Backend implementation is injected directly.
type Config struct {
	Backend BackendConfig
	Storage StorageConfig
	OTP     OTPConfig
	Google  GoogleConfig
	Refresh RefreshConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

// BackendConfig locates the marketplace auth API.
type BackendConfig struct {
	// BaseURL is the backend origin. Required when no Backend is injected
	// through the builder.
	BaseURL string
	// Timeout bounds each backend call. Zero means the client default.
	Timeout time.Duration
}

// StorageConfig names the persistence keys.
type StorageConfig struct {
	// Keys overrides the session key layout. Zero value means defaults.
	Keys credstore.Keys
	// ResetProgressKey overrides where reset-flow progress persists.
	ResetProgressKey string
}

// OTPConfig shapes one-time codes.
type OTPConfig struct {
	// Digits is the expected code length. 0 accepts any non-empty code;
	// the backend remains the verifier either way.
	Digits int
}

// GoogleConfig controls federated login.
type GoogleConfig struct {
	// ClientID is the OAuth client the ID tokens must be issued for.
	ClientID string
	// RedirectURL is where Google sends the browser back.
	RedirectURL string
	// VerifyLocally checks ID-token signature and audience against
	// Google's JWKS before forwarding to the backend. Off by default: the
	// backend verifies regardless, local verification just fails faster.
	VerifyLocally bool
}

// RefreshConfig controls transparent access-token refresh.
type RefreshConfig struct {
	// Disabled turns EnsureFresh into a no-op.
	Disabled bool
	// Skew is how close to expiry a token may get before EnsureFresh
	// refreshes it.
	Skew time.Duration
}

// AuditConfig controls the audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	// DropIfFull sheds events under backpressure instead of blocking
	// callers. Dropped events are counted.
	DropIfFull bool
}

// MetricsConfig controls counter collection.
type MetricsConfig struct {
	Enabled bool
}

const (
	defaultRefreshSkew     = 30 * time.Second
	defaultAuditBufferSize = 256
	defaultOTPDigits       = 5
)

func defaultConfig() Config {
	return Config{
		OTP: OTPConfig{
			Digits: defaultOTPDigits,
		},
		Refresh: RefreshConfig{
			Skew: defaultRefreshSkew,
		},
		Audit: AuditConfig{
			BufferSize: defaultAuditBufferSize,
			DropIfFull: true,
		},
	}
}

// Validate rejects configurations the Manager cannot run with.
func (c Config) Validate() error {
	if c.OTP.Digits < 0 {
		return errors.New("OTP.Digits must be >= 0")
	}
	if c.Refresh.Skew < 0 {
		return errors.New("Refresh.Skew must be >= 0")
	}
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit.BufferSize must be > 0 when auditing is enabled")
	}
	if c.Google.VerifyLocally && c.Google.ClientID == "" {
		return errors.New("Google.VerifyLocally requires Google.ClientID")
	}
	return nil
}
