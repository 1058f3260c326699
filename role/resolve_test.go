package role

import "testing"

func TestDefaultLandingPathAdminWins(t *testing.T) {
	sets := [][]Role{
		{Admin},
		{Admin, JobSeeker},
		{Recruiter, Admin},
		{RecruiterPending, JobSeeker, Admin},
	}
	for _, roles := range sets {
		if got := DefaultLandingPath(roles); got != PathAdminDashboard {
			t.Fatalf("DefaultLandingPath(%v) = %q, want %q", roles, got, PathAdminDashboard)
		}
	}
}

func TestDefaultLandingPathPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		roles []Role
		want  string
	}{
		{"recruiter", []Role{Recruiter}, PathRecruiterDashboard},
		{"pending recruiter", []Role{RecruiterPending}, PathRecruiterDashboard},
		{"pending under seeker", []Role{JobSeeker, RecruiterPending}, PathRecruiterDashboard},
		{"job seeker", []Role{JobSeeker}, PathJobSeekerDashboard},
		{"empty", nil, PathHome},
		{"unknown only", []Role{"MODERATOR"}, PathHome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultLandingPath(tt.roles); got != tt.want {
				t.Fatalf("DefaultLandingPath(%v) = %q, want %q", tt.roles, got, tt.want)
			}
		})
	}
}

func TestResolveRedirectRejectsSchemeRelative(t *testing.T) {
	for _, next := range []string{"//evil.example", "//evil.example/admin", "//"} {
		if got := ResolveRedirect([]Role{JobSeeker}, next); got != PathJobSeekerDashboard {
			t.Fatalf("ResolveRedirect(%q) = %q, want default landing path", next, got)
		}
	}
}

func TestResolveRedirectRejectsNonAbsolute(t *testing.T) {
	for _, next := range []string{"", "admin/dashboard", "https://evil.example/", "javascript:alert(1)"} {
		if got := ResolveRedirect([]Role{Admin}, next); got != PathAdminDashboard {
			t.Fatalf("ResolveRedirect(%q) = %q, want default landing path", next, got)
		}
	}
}

func TestResolveRedirectAdminArea(t *testing.T) {
	if got := ResolveRedirect([]Role{Admin}, "/admin/x"); got != "/admin/x" {
		t.Fatalf("admin deep link denied for admin: %q", got)
	}

	// Any role set without ADMIN falls back.
	withoutAdmin := [][]Role{
		nil,
		{JobSeeker},
		{Recruiter, RecruiterPending},
		{"MODERATOR"},
	}
	for _, roles := range withoutAdmin {
		got := ResolveRedirect(roles, "/admin/x")
		if got == "/admin/x" {
			t.Fatalf("ResolveRedirect(%v, /admin/x) honored deep link without ADMIN", roles)
		}
		if want := DefaultLandingPath(roles); got != want {
			t.Fatalf("ResolveRedirect(%v, /admin/x) = %q, want %q", roles, got, want)
		}
	}
}

func TestResolveRedirectRecruiterArea(t *testing.T) {
	if got := ResolveRedirect([]Role{RecruiterPending}, "/recruiter/jobs/42"); got != "/recruiter/jobs/42" {
		t.Fatalf("pending recruiter denied recruiter area: %q", got)
	}
	if got := ResolveRedirect([]Role{JobSeeker}, "/recruiter/jobs/42"); got != PathJobSeekerDashboard {
		t.Fatalf("job seeker allowed into recruiter area: %q", got)
	}
}

func TestResolveRedirectJobSeekerArea(t *testing.T) {
	if got := ResolveRedirect([]Role{JobSeeker}, "/job-seeker/cv"); got != "/job-seeker/cv" {
		t.Fatalf("job seeker denied own area: %q", got)
	}
	if got := ResolveRedirect([]Role{Recruiter}, "/job-seeker/cv"); got != PathRecruiterDashboard {
		t.Fatalf("recruiter allowed into job-seeker area: %q", got)
	}
}

func TestResolveRedirectUngatedPathHonored(t *testing.T) {
	for _, next := range []string{"/jobs/123", "/companies", "/", "/about?ref=mail"} {
		if got := ResolveRedirect(nil, next); got != next {
			t.Fatalf("ResolveRedirect(nil, %q) = %q, want path honored", next, got)
		}
	}
}

func TestResolveRedirectPrefixBoundary(t *testing.T) {
	// "/admin-tools" is outside the admin area and needs no role.
	if got := ResolveRedirect(nil, "/admin-tools"); got != "/admin-tools" {
		t.Fatalf("prefix boundary leaked into admin area: %q", got)
	}
	// The bare area root is gated.
	if got := ResolveRedirect(nil, "/admin"); got != PathHome {
		t.Fatalf("bare /admin honored without ADMIN: %q", got)
	}
}
