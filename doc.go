// Package authgate is the client-side auth core for a job-marketplace edge:
// session lifecycle, role-based redirect resolution, OTP-gated registration
// and password-reset flows, and route guarding, against a backend that owns
// all verification and token issuance.
//
// The entry point is the [Manager], built via [New]:
//
//	mgr, err := authgate.New().
//		WithStorage(storage).
//		WithConfig(cfg).
//		Build()
//	...
//	if err := mgr.Start(ctx); err != nil { ... }
//	defer mgr.Close()
//
// One Manager holds one session view. Several Managers may share a Storage
// and Notifier (Redis in production, the in-process Memory in tests); each
// observes the others' session mutations and reloads, which is how a logout
// in one place becomes a logout everywhere.
//
// # Architecture boundaries
//
//   - The backend is the only authority on credentials, OTP codes, and
//     token issuance. This package never mints or verifies session tokens;
//     the optional Google ID-token check is a fast-fail, not the decision.
//   - The credential store (package credstore) owns the persisted session
//     format. The Manager reads and writes sessions only through it.
//   - All role and redirect decisions live in package role. Nothing here
//     inspects role strings directly.
//   - The refresh token never passes through this API. It lives in an
//     HTTP-only cookie inside the backend client's cookie jar.
//
// # What this package must NOT do
//
//   - Persist anything outside the configured Storage keys.
//   - Surface backend message strings to users; only sentinel errors leave.
//   - Block an operation on audit delivery.
package authgate
