package backend

import "errors"

var (
	// ErrInvalidCredentials is the rejection of a credential login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountExists is the registration email collision.
	ErrAccountExists = errors.New("account already exists")
	// ErrOTPInvalid covers a wrong or expired one-time code.
	ErrOTPInvalid = errors.New("invalid otp code")
	// ErrOTPNotVerified signals a reset step attempted before the code was
	// verified server-side. Callers rewind the flow to its first step.
	ErrOTPNotVerified = errors.New("otp not verified")
	// ErrUnauthorized is a 401 without a structured code, e.g. a refresh
	// attempt with a dead cookie.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUnavailable wraps transport failures and unclassified backend
	// errors. Nothing leaves this package unclassified.
	ErrUnavailable = errors.New("backend unavailable")
)

// Structured error codes of the backend's error envelope.
const (
	codeInvalidCredentials = "INVALID_CREDENTIALS"
	codeResourceExists     = "RESOURCE_ALREADY_EXISTS"
	codeInvalidOTP         = "INVALID_OTP"
	codeExpiredOTP         = "OTP_EXPIRED"
	codeOTPNotVerified     = "OTP_NOT_VERIFIED"
)

func errorForCode(code string) error {
	switch code {
	case codeInvalidCredentials:
		return ErrInvalidCredentials
	case codeResourceExists:
		return ErrAccountExists
	case codeInvalidOTP, codeExpiredOTP:
		return ErrOTPInvalid
	case codeOTPNotVerified:
		return ErrOTPNotVerified
	default:
		return nil
	}
}
