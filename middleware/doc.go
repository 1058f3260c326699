// Package middleware provides the edge route guard.
//
// The guard sits in front of the role-gated page areas and performs exactly
// one check: is the session cookie present. Absent cookie means redirect to
// login with the original path carried in the next query parameter. It never
// validates tokens and never consults roles; it is an optimistic filter
// whose false positives (stale cookie) are resolved one hop later by the
// application itself.
package middleware
