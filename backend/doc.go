// Package backend is the REST client for the marketplace auth API.
//
// One method per endpoint. Requests and responses are JSON; the refresh
// token never appears in any payload — it travels as an HTTP-only cookie
// held by the client's cookie jar, so callers only ever handle the access
// token inside a session.Session.
//
// # Error contract
//
// The backend reports failures with a structured envelope {code, message}.
// This package maps known codes to sentinel errors (ErrInvalidCredentials,
// ErrAccountExists, ErrOTPInvalid, ErrOTPNotVerified) and collapses
// everything else — transport failures, 5xx, unparseable bodies — into
// ErrUnavailable. Callers branch with errors.Is; message strings from the
// backend are never surfaced.
//
// # What this package must NOT do
//
//   - Persist sessions. That is credstore's job.
//   - Interpret roles or decide redirects. That is the role package's job.
//   - Retry. Callers own retry and refresh policy.
package backend
