package authgate

import (
	"errors"

	"github.com/hireloop/authgate/backend"
	"github.com/hireloop/authgate/credstore"
	"github.com/hireloop/authgate/internal/gate"
)

// Sentinel errors surfaced by the Manager. Backend and store sentinels are
// re-exported so callers only ever import this package for classification.
var (
	// ErrInvalidCredentials rejects a credential login.
	ErrInvalidCredentials = backend.ErrInvalidCredentials
	// ErrAccountExists rejects a registration for a taken email.
	ErrAccountExists = backend.ErrAccountExists
	// ErrOTPInvalid rejects a wrong or expired one-time code.
	ErrOTPInvalid = backend.ErrOTPInvalid
	// ErrOTPNotVerified reports a reset attempted past an unverified code;
	// the flow has already rewound when this surfaces.
	ErrOTPNotVerified = backend.ErrOTPNotVerified
	// ErrBackendUnavailable wraps transport failures and unclassified
	// backend responses.
	ErrBackendUnavailable = backend.ErrUnavailable
	// ErrCorruptRecord reports fail-closed hydration: the persisted session
	// was unreadable and has been cleared. Treated as "no session".
	ErrCorruptRecord = credstore.ErrCorruptRecord
	// ErrOperationInFlight rejects a submission while the same operation is
	// still outstanding.
	ErrOperationInFlight = gate.ErrInFlight

	// ErrNotAuthenticated is returned by operations that need a session
	// when there is none.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrManagerClosed is returned by operations on a closed Manager.
	ErrManagerClosed = errors.New("manager closed")
	// ErrGoogleTokenInvalid rejects a federated credential that failed
	// local verification before ever reaching the backend.
	ErrGoogleTokenInvalid = errors.New("google id token invalid")
)
