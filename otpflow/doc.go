// Package otpflow implements the two OTP-gated multi-step flows: password
// reset (email, otp, password) and account registration (email, otp).
//
// Flows are strict state machines. A successful submission advances exactly
// one step; a failed one advances none, with a single exception: a reset
// password submission rejected with OTP_NOT_VERIFIED rewinds the flow hard to
// the email step, because the server-side verification state is gone and the
// only honest option is to start over.
//
// Reset progress ({email, step}) is persisted under a fixed storage key after
// every transition, so a reload or restart resumes mid-flow via
// [ResetFlow.Resume]. Registration progress is deliberately not persisted.
//
// Flows never generate, store, or check OTP codes themselves — the backend is
// the only verifier. The configured OTP length is a pre-flight shape check
// that saves a round trip, nothing more.
package otpflow
