package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hireloop/authgate/role"
	"github.com/hireloop/authgate/session"
)

// fakeBackend is a minimal stand-in for the marketplace auth API. Handlers
// are registered per path; unregistered paths 404.
type fakeBackend struct {
	mux *http.ServeMux
	srv *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return &fakeBackend{mux: mux, srv: srv}
}

func (f *fakeBackend) handle(path string, h http.HandlerFunc) {
	f.mux.HandleFunc(path, h)
}

func (f *fakeBackend) client(t *testing.T) *Client {
	t.Helper()

	c, err := NewClient(Config{BaseURL: f.srv.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return c
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	fake := newFakeBackend(t)
	fake.handle("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode login request: %v", err)
		}
		if req.Email != "user@example.com" {
			t.Errorf("email not normalized: %q", req.Email)
		}
		http.SetCookie(w, &http.Cookie{Name: "refresh_session", Value: "r1", HttpOnly: true})
		writeJSON(t, w, http.StatusOK, sessionResponse{
			Account: session.Account{
				ID:    "acc-1",
				Email: "user@example.com",
				Roles: []role.Role{role.JobSeeker},
			},
			AccessToken: "at-1",
		})
	})

	sess, err := fake.client(t).Login(context.Background(), "  User@Example.COM ", "hunter2")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if sess.Account.ID != "acc-1" || sess.AccessToken != "at-1" {
		t.Fatalf("unexpected session: %+v", sess)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	fake := newFakeBackend(t)
	fake.handle("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, errorEnvelope{
			Code:    "INVALID_CREDENTIALS",
			Message: "bad email or password",
		})
	})

	_, err := fake.client(t).Login(context.Background(), "user@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterConflict(t *testing.T) {
	fake := newFakeBackend(t)
	fake.handle("/auth/register", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, errorEnvelope{Code: "RESOURCE_ALREADY_EXISTS"})
	})

	err := fake.client(t).Register(context.Background(), "taken@example.com", "hunter2")
	if !errors.Is(err, ErrAccountExists) {
		t.Fatalf("Register error = %v, want ErrAccountExists", err)
	}
}

func TestVerifyOTPErrorCodes(t *testing.T) {
	cases := []struct {
		code string
		want error
	}{
		{"INVALID_OTP", ErrOTPInvalid},
		{"OTP_EXPIRED", ErrOTPInvalid},
		{"OTP_NOT_VERIFIED", ErrOTPNotVerified},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			fake := newFakeBackend(t)
			fake.handle("/auth/verify-otp", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusBadRequest, errorEnvelope{Code: tc.code})
			})

			err := fake.client(t).VerifyOTP(context.Background(), "user@example.com", "12345")
			if !errors.Is(err, tc.want) {
				t.Fatalf("VerifyOTP error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestRefreshSendsCookieFromJar(t *testing.T) {
	fake := newFakeBackend(t)
	fake.handle("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "refresh_session", Value: "r1", HttpOnly: true})
		writeJSON(t, w, http.StatusOK, sessionResponse{
			Account:     session.Account{ID: "acc-1", Email: "user@example.com"},
			AccessToken: "at-1",
		})
	})
	fake.handle("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("refresh_session")
		if err != nil || cookie.Value != "r1" {
			writeJSON(t, w, http.StatusUnauthorized, errorEnvelope{})
			return
		}
		writeJSON(t, w, http.StatusOK, sessionResponse{
			Account:     session.Account{ID: "acc-1", Email: "user@example.com"},
			AccessToken: "at-2",
		})
	})

	client := fake.client(t)
	if _, err := client.Login(context.Background(), "user@example.com", "hunter2"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	sess, err := client.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if sess.AccessToken != "at-2" {
		t.Fatalf("AccessToken = %q, want at-2", sess.AccessToken)
	}
}

func TestRefreshDeadCookie(t *testing.T) {
	fake := newFakeBackend(t)
	fake.handle("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := fake.client(t).Refresh(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Refresh error = %v, want ErrUnauthorized", err)
	}
}

func TestServerErrorIsUnavailable(t *testing.T) {
	fake := newFakeBackend(t)
	fake.handle("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := fake.client(t).Login(context.Background(), "user@example.com", "pw")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Login error = %v, want ErrUnavailable", err)
	}
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	fake := newFakeBackend(t)
	client := fake.client(t)
	fake.srv.Close()

	_, err := client.Login(context.Background(), "user@example.com", "pw")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Login error = %v, want ErrUnavailable", err)
	}
}

func TestIncompleteSessionPayload(t *testing.T) {
	fake := newFakeBackend(t)
	fake.handle("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, sessionResponse{
			Account: session.Account{ID: "acc-1", Email: "user@example.com"},
			// No access token.
		})
	})

	_, err := fake.client(t).Login(context.Background(), "user@example.com", "pw")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Login error = %v, want ErrUnavailable", err)
	}
}

func TestNewClientRejectsBadBaseURL(t *testing.T) {
	for _, raw := range []string{"", "not a url", "/relative"} {
		if _, err := NewClient(Config{BaseURL: raw}); err == nil {
			t.Fatalf("NewClient(%q) succeeded", raw)
		}
	}
}
