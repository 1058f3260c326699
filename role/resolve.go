package role

import "strings"

// Route paths owned by the resolver. Every role-gated redirect decision in
// the application goes through this package so the authorization policy has
// a single place of truth.
const (
	PathHome               = "/"
	PathAdminDashboard     = "/admin/dashboard"
	PathRecruiterDashboard = "/recruiter/dashboard"
	PathJobSeekerDashboard = "/job-seeker/dashboard"
)

// Area prefixes gated by role membership.
const (
	PrefixAdmin     = "/admin"
	PrefixRecruiter = "/recruiter"
	PrefixJobSeeker = "/job-seeker"
)

// DefaultLandingPath maps a role set to its post-login landing route.
// Admin wins over everything, then the recruiter surface (approved or
// pending), then job seeker, then home. Total and deterministic: identical
// inputs always produce identical output.
func DefaultLandingPath(roles []Role) string {
	switch {
	case Contains(roles, Admin):
		return PathAdminDashboard
	case ContainsAny(roles, Recruiter, RecruiterPending):
		return PathRecruiterDashboard
	case Contains(roles, JobSeeker):
		return PathJobSeekerDashboard
	default:
		return PathHome
	}
}

// ResolveRedirect decides where to send a user after login when a deep-link
// target was captured before authentication. The requested path is honored
// only when it is a same-origin absolute path and the role set satisfies the
// target area; otherwise the default landing path is used. Never panics.
func ResolveRedirect(roles []Role, next string) string {
	if !sameOriginPath(next) {
		return DefaultLandingPath(roles)
	}

	switch {
	case inArea(next, PrefixAdmin):
		if Contains(roles, Admin) {
			return next
		}
	case inArea(next, PrefixRecruiter):
		if ContainsAny(roles, Recruiter, RecruiterPending) {
			return next
		}
	case inArea(next, PrefixJobSeeker):
		if Contains(roles, JobSeeker) {
			return next
		}
	default:
		// Same-origin path outside the gated areas: no role requirement.
		return next
	}

	return DefaultLandingPath(roles)
}

// sameOriginPath accepts absolute paths only. A leading "//" is a
// scheme-relative URL and would be an open redirect.
func sameOriginPath(p string) bool {
	if p == "" || p[0] != '/' {
		return false
	}
	if strings.HasPrefix(p, "//") {
		return false
	}
	return true
}

// inArea reports whether p is the area prefix itself or nested under it.
// "/admin-tools" is not inside "/admin".
func inArea(p, prefix string) bool {
	if !strings.HasPrefix(p, prefix) {
		return false
	}
	return len(p) == len(prefix) || p[len(prefix)] == '/' || p[len(prefix)] == '?'
}
