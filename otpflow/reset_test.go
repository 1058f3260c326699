package otpflow

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hireloop/authgate/backend"
	"github.com/hireloop/authgate/credstore"
)

// fakeResetBackend scripts per-endpoint results and records calls.
type fakeResetBackend struct {
	forgotErr error
	verifyErr error
	resetErr  error

	forgotCalls []string
	verifyCalls []string
	resetCalls  []string
}

func (f *fakeResetBackend) ForgotPassword(_ context.Context, email string) error {
	f.forgotCalls = append(f.forgotCalls, email)
	return f.forgotErr
}

func (f *fakeResetBackend) VerifyOTP(_ context.Context, email, otp string) error {
	f.verifyCalls = append(f.verifyCalls, email+"/"+otp)
	return f.verifyErr
}

func (f *fakeResetBackend) ResetPassword(_ context.Context, email, _ string) error {
	f.resetCalls = append(f.resetCalls, email)
	return f.resetErr
}

type recordedEvents struct {
	events []Event
}

func (r *recordedEvents) Record(_ context.Context, ev Event) {
	r.events = append(r.events, ev)
}

func (r *recordedEvents) actions() []string {
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

func newResetFlow(t *testing.T, be ResetBackend, storage credstore.Storage, rec Recorder) *ResetFlow {
	t.Helper()

	flow, err := NewResetFlow(ResetConfig{
		Backend:  be,
		Storage:  storage,
		Digits:   5,
		Recorder: rec,
	})
	if err != nil {
		t.Fatalf("NewResetFlow failed: %v", err)
	}
	return flow
}

func TestResetHappyPath(t *testing.T) {
	ctx := context.Background()
	be := &fakeResetBackend{}
	mem := credstore.NewMemory()
	rec := &recordedEvents{}
	flow := newResetFlow(t, be, mem, rec)

	if err := flow.SubmitEmail(ctx, " User@Example.COM "); err != nil {
		t.Fatalf("SubmitEmail failed: %v", err)
	}
	if flow.Step() != StepOTP {
		t.Fatalf("step after email = %q, want otp", flow.Step())
	}
	if got := be.forgotCalls[0]; got != "user@example.com" {
		t.Fatalf("email not normalized: %q", got)
	}

	if err := flow.SubmitOTP(ctx, "12345"); err != nil {
		t.Fatalf("SubmitOTP failed: %v", err)
	}
	if flow.Step() != StepPassword {
		t.Fatalf("step after otp = %q, want password", flow.Step())
	}

	if err := flow.SubmitPassword(ctx, "new-password"); err != nil {
		t.Fatalf("SubmitPassword failed: %v", err)
	}
	if flow.Step() != StepDone {
		t.Fatalf("step after password = %q, want done", flow.Step())
	}

	// Completion removes the persisted progress record.
	if _, err := mem.Get(ctx, DefaultProgressKey); !errors.Is(err, credstore.ErrKeyNotFound) {
		t.Fatalf("progress record survived completion: %v", err)
	}

	want := []string{ActionOTPRequested, ActionOTPVerified, ActionCompleted}
	got := rec.actions()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}
}

func TestResetStepsAreOrdered(t *testing.T) {
	ctx := context.Background()
	flow := newResetFlow(t, &fakeResetBackend{}, nil, nil)

	if err := flow.SubmitOTP(ctx, "12345"); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("SubmitOTP at email step = %v, want ErrWrongStep", err)
	}
	if err := flow.SubmitPassword(ctx, "pw"); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("SubmitPassword at email step = %v, want ErrWrongStep", err)
	}
}

func TestResetSeededEmailDoesNotSkip(t *testing.T) {
	flow, err := NewResetFlow(ResetConfig{
		Backend:   &fakeResetBackend{},
		SeedEmail: "Seeded@Example.com",
	})
	if err != nil {
		t.Fatalf("NewResetFlow failed: %v", err)
	}
	if flow.Email() != "seeded@example.com" {
		t.Fatalf("seed email = %q", flow.Email())
	}
	if flow.Step() != StepEmail {
		t.Fatalf("seeded flow starts at %q, want email", flow.Step())
	}
}

func TestResetWrongCodeKeepsStep(t *testing.T) {
	ctx := context.Background()
	be := &fakeResetBackend{verifyErr: backend.ErrOTPInvalid}
	flow := newResetFlow(t, be, credstore.NewMemory(), nil)

	if err := flow.SubmitEmail(ctx, "user@example.com"); err != nil {
		t.Fatalf("SubmitEmail failed: %v", err)
	}
	if err := flow.SubmitOTP(ctx, "99999"); !errors.Is(err, backend.ErrOTPInvalid) {
		t.Fatalf("SubmitOTP = %v, want ErrOTPInvalid", err)
	}
	if flow.Step() != StepOTP {
		t.Fatalf("step after rejected code = %q, want otp", flow.Step())
	}
}

func TestResetMalformedCodeSkipsBackend(t *testing.T) {
	ctx := context.Background()
	be := &fakeResetBackend{}
	flow := newResetFlow(t, be, nil, nil)

	if err := flow.SubmitEmail(ctx, "user@example.com"); err != nil {
		t.Fatalf("SubmitEmail failed: %v", err)
	}
	for _, code := range []string{"", "1234", "123456", "12a45"} {
		if err := flow.SubmitOTP(ctx, code); !errors.Is(err, backend.ErrOTPInvalid) {
			t.Fatalf("SubmitOTP(%q) = %v, want ErrOTPInvalid", code, err)
		}
	}
	if len(be.verifyCalls) != 0 {
		t.Fatalf("malformed codes reached the backend: %v", be.verifyCalls)
	}
}

func TestResetNotVerifiedRewindsToEmail(t *testing.T) {
	ctx := context.Background()
	be := &fakeResetBackend{resetErr: backend.ErrOTPNotVerified}
	mem := credstore.NewMemory()
	rec := &recordedEvents{}
	flow := newResetFlow(t, be, mem, rec)

	if err := flow.SubmitEmail(ctx, "user@example.com"); err != nil {
		t.Fatalf("SubmitEmail failed: %v", err)
	}
	if err := flow.SubmitOTP(ctx, "12345"); err != nil {
		t.Fatalf("SubmitOTP failed: %v", err)
	}

	err := flow.SubmitPassword(ctx, "new-password")
	if !errors.Is(err, backend.ErrOTPNotVerified) {
		t.Fatalf("SubmitPassword = %v, want ErrOTPNotVerified", err)
	}
	if flow.Step() != StepEmail {
		t.Fatalf("step after rewind = %q, want email", flow.Step())
	}

	// The rewind is persisted, not just in memory.
	data, err := mem.Get(ctx, DefaultProgressKey)
	if err != nil {
		t.Fatalf("progress record missing after rewind: %v", err)
	}
	var rec2 progressRecord
	if err := json.Unmarshal(data, &rec2); err != nil {
		t.Fatalf("progress record malformed: %v", err)
	}
	if rec2.Step != StepEmail || rec2.Email != "user@example.com" {
		t.Fatalf("persisted record = %+v", rec2)
	}

	found := false
	for _, ev := range rec.events {
		if ev.Action == ActionRewound {
			found = true
		}
	}
	if !found {
		t.Fatal("no rewound event recorded")
	}
}

func TestResetResume(t *testing.T) {
	ctx := context.Background()
	mem := credstore.NewMemory()

	data, err := json.Marshal(progressRecord{Email: "User@Example.com", Step: StepPassword})
	if err != nil {
		t.Fatalf("marshal record: %v", err)
	}
	if err := mem.Set(ctx, DefaultProgressKey, data); err != nil {
		t.Fatalf("seed storage: %v", err)
	}

	flow := newResetFlow(t, &fakeResetBackend{}, mem, nil)
	if err := flow.Resume(ctx); err != nil {
		t.Fatalf("Resume failed: %v", err)
	}
	if flow.Step() != StepPassword {
		t.Fatalf("resumed step = %q, want password", flow.Step())
	}
	if flow.Email() != "user@example.com" {
		t.Fatalf("resumed email = %q", flow.Email())
	}
}

func TestResetResumeDiscardsMalformedRecord(t *testing.T) {
	ctx := context.Background()
	cases := map[string][]byte{
		"not json":     []byte("{garbage"),
		"empty email":  []byte(`{"email":"","step":"otp"}`),
		"unknown step": []byte(`{"email":"user@example.com","step":"confirm"}`),
		"done step":    []byte(`{"email":"user@example.com","step":"done"}`),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			mem := credstore.NewMemory()
			if err := mem.Set(ctx, DefaultProgressKey, data); err != nil {
				t.Fatalf("seed storage: %v", err)
			}

			flow := newResetFlow(t, &fakeResetBackend{}, mem, nil)
			if err := flow.Resume(ctx); err != nil {
				t.Fatalf("Resume failed: %v", err)
			}
			if flow.Step() != StepEmail {
				t.Fatalf("step after malformed resume = %q, want email", flow.Step())
			}
			if _, err := mem.Get(ctx, DefaultProgressKey); !errors.Is(err, credstore.ErrKeyNotFound) {
				t.Fatal("malformed record not discarded")
			}
		})
	}
}

func TestResetBackendFailureKeepsStep(t *testing.T) {
	ctx := context.Background()
	be := &fakeResetBackend{forgotErr: backend.ErrUnavailable}
	flow := newResetFlow(t, be, nil, nil)

	if err := flow.SubmitEmail(ctx, "user@example.com"); !errors.Is(err, backend.ErrUnavailable) {
		t.Fatalf("SubmitEmail = %v, want ErrUnavailable", err)
	}
	if flow.Step() != StepEmail {
		t.Fatalf("step after backend failure = %q, want email", flow.Step())
	}
}
