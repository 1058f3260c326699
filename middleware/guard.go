package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/hireloop/authgate/role"
)

// DefaultSessionCookie is the cookie whose presence marks "probably logged
// in" at the edge.
const DefaultSessionCookie = "refresh_session"

// DefaultLoginPath is where unauthenticated requests are redirected.
const DefaultLoginPath = "/login"

// GuardConfig configures the edge route guard.
type GuardConfig struct {
	// ProtectedPrefixes are the path areas requiring a session cookie.
	// Empty means the three role-gated areas.
	ProtectedPrefixes []string
	// SessionCookie is the cookie checked for presence. Its value is never
	// inspected.
	SessionCookie string
	// LoginPath receives the redirect, with the original path in ?next=.
	LoginPath string
}

func (c *GuardConfig) fill() {
	if len(c.ProtectedPrefixes) == 0 {
		c.ProtectedPrefixes = []string{
			role.PrefixAdmin,
			role.PrefixRecruiter,
			role.PrefixJobSeeker,
		}
	}
	if c.SessionCookie == "" {
		c.SessionCookie = DefaultSessionCookie
	}
	if c.LoginPath == "" {
		c.LoginPath = DefaultLoginPath
	}
}

// Guard is the edge route guard: a coarse, fast cookie-presence check in
// front of the protected areas. A request without the session cookie is
// redirected to the login path with the original path preserved in ?next=,
// so login can return the user where they were headed.
//
// The guard deliberately does no token validation and no role checks — it
// cannot tell a valid cookie from a stale one. Role enforcement happens
// after login through [role.ResolveRedirect]; the guard only keeps
// anonymous traffic off protected surfaces.
func Guard(cfg GuardConfig) func(http.Handler) http.Handler {
	cfg.fill()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !protected(r.URL.Path, cfg.ProtectedPrefixes) {
				next.ServeHTTP(w, r)
				return
			}
			if _, err := r.Cookie(cfg.SessionCookie); err == nil {
				next.ServeHTTP(w, r)
				return
			}

			target := cfg.LoginPath + "?next=" + url.QueryEscape(r.URL.Path)
			http.Redirect(w, r, target, http.StatusFound)
		})
	}
}

// protected reports whether p falls under any prefix, respecting path
// segment boundaries: "/admin-tools" is not under "/admin".
func protected(p string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		if len(p) == len(prefix) || p[len(prefix)] == '/' {
			return true
		}
	}
	return false
}
