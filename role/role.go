package role

// Role is a named capability grouping attached to an account. Roles are
// assigned by the backend and never mutated on this side; they arrive as
// part of the login/refresh response.
type Role string

const (
	// Admin grants access to the admin area.
	Admin Role = "ADMIN"
	// Recruiter grants access to the recruiter area.
	Recruiter Role = "RECRUITER"
	// RecruiterPending is the transitional state of a recruiter awaiting
	// approval. It grants the recruiter surface but nothing admin-side.
	RecruiterPending Role = "RECRUITER_PENDING"
	// JobSeeker grants access to the job-seeker area.
	JobSeeker Role = "JOB_SEEKER"
)

// Known reports whether r is one of the fixed role enumeration values.
// Unknown roles are carried through untouched but grant nothing.
func Known(r Role) bool {
	switch r {
	case Admin, Recruiter, RecruiterPending, JobSeeker:
		return true
	}
	return false
}

// Contains reports whether roles includes r.
func Contains(roles []Role, r Role) bool {
	for _, have := range roles {
		if have == r {
			return true
		}
	}
	return false
}

// ContainsAny reports whether roles includes at least one of want.
func ContainsAny(roles []Role, want ...Role) bool {
	for _, r := range want {
		if Contains(roles, r) {
			return true
		}
	}
	return false
}

// Strings returns the role names in their original insertion order.
func Strings(roles []Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// FromStrings converts raw role names preserving order. No validation is
// performed; unknown names simply never satisfy an area requirement.
func FromStrings(names []string) []Role {
	out := make([]Role, len(names))
	for i, n := range names {
		out[i] = Role(n)
	}
	return out
}
