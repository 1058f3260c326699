// Package role is the single authority for role-based routing decisions:
// the fixed role enumeration, default landing paths, and post-login deep-link
// redirect resolution.
//
// # Architecture boundaries
//
// Everything here is a pure function over role sets and candidate paths.
// No I/O, no clock, no configuration. That is what makes the authorization
// policy unit-testable without a running edge.
//
// # What this package must NOT do
//
//   - Import any other authgate package.
//   - Inspect tokens, cookies, or accounts beyond their role set.
//   - Grow ad hoc role checks; callers route every decision through
//     [DefaultLandingPath] and [ResolveRedirect].
package role
