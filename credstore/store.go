package credstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hireloop/authgate/session"
)

// ErrCorruptRecord is reported by [Store.Load] after it finds unparseable or
// partial session data and clears the store. Callers treat it exactly like
// "no session"; it exists so they can count and audit the occurrence. It is
// never shown to a user.
var ErrCorruptRecord = errors.New("credstore: corrupt session record")

// ErrIncompleteSession is returned by [Store.Save] for a session violating
// the account-and-token-present invariant.
var ErrIncompleteSession = errors.New("credstore: incomplete session")

// Keys names the fixed storage keys the store writes under. Two keys, so a
// mutation event on either is observable by every subscribed manager.
type Keys struct {
	Account string
	Token   string
}

// DefaultKeys returns the standard key layout.
func DefaultKeys() Keys {
	return Keys{
		Account: "authgate:account",
		Token:   "authgate:token",
	}
}

// Store is the credential store: sole owner of the persisted session
// serialization format. It reads and writes the account payload and access
// token through a [Storage] and announces every mutation through an optional
// [Notifier]. No network calls originate here beyond the storage backend.
type Store struct {
	storage  Storage
	notifier Notifier
	keys     Keys
	origin   string
}

// NewStore creates a credential store. notifier may be nil, in which case
// mutations are not announced.
func NewStore(storage Storage, notifier Notifier, keys Keys) *Store {
	if keys.Account == "" || keys.Token == "" {
		keys = DefaultKeys()
	}
	return &Store{
		storage:  storage,
		notifier: notifier,
		keys:     keys,
		origin:   uuid.NewString(),
	}
}

// Keys returns the key layout in use.
func (s *Store) Keys() Keys {
	return s.keys
}

// Origin identifies this store instance in published [Change] events.
func (s *Store) Origin() string {
	return s.origin
}

// Save persists the session: account payload under the account key, access
// token under the token key. Both writes happen before the change is
// announced, so a subscriber re-hydrating on the event always sees the full
// pair.
func (s *Store) Save(ctx context.Context, sess *session.Session) error {
	if !sess.Valid() {
		return ErrIncompleteSession
	}

	payload, err := json.Marshal(sess.Account)
	if err != nil {
		return fmt.Errorf("credstore: encode account: %w", err)
	}

	if err := s.storage.Set(ctx, s.keys.Account, payload); err != nil {
		return err
	}
	if err := s.storage.Set(ctx, s.keys.Token, []byte(sess.AccessToken)); err != nil {
		return err
	}

	s.publish(ctx)
	return nil
}

// Load reads the persisted session. Absent data yields (nil, nil). Corrupt
// or partial data is fail-closed: the store clears both keys and reports
// [ErrCorruptRecord] — never a half-session.
func (s *Store) Load(ctx context.Context) (*session.Session, error) {
	payload, accountErr := s.storage.Get(ctx, s.keys.Account)
	if accountErr != nil && !errors.Is(accountErr, ErrKeyNotFound) {
		return nil, accountErr
	}

	token, tokenErr := s.storage.Get(ctx, s.keys.Token)
	if tokenErr != nil && !errors.Is(tokenErr, ErrKeyNotFound) {
		return nil, tokenErr
	}

	accountMissing := errors.Is(accountErr, ErrKeyNotFound)
	tokenMissing := errors.Is(tokenErr, ErrKeyNotFound)

	if accountMissing && tokenMissing {
		return nil, nil
	}
	if accountMissing || tokenMissing {
		return nil, s.failClosed(ctx)
	}

	var account session.Account
	if err := json.Unmarshal(payload, &account); err != nil {
		return nil, s.failClosed(ctx)
	}

	sess := &session.Session{
		Account:     account,
		AccessToken: string(token),
	}
	if !sess.Valid() {
		return nil, s.failClosed(ctx)
	}

	return sess, nil
}

// Clear removes the persisted session. Idempotent: clearing an empty store
// succeeds and still announces the mutation.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.storage.Delete(ctx, s.keys.Account, s.keys.Token); err != nil {
		return err
	}
	s.publish(ctx)
	return nil
}

// SessionKeys returns the key names whose mutation means "session changed".
func (s *Store) SessionKeys() []string {
	return []string{s.keys.Account, s.keys.Token}
}

func (s *Store) failClosed(ctx context.Context) error {
	if err := s.Clear(ctx); err != nil {
		return err
	}
	return ErrCorruptRecord
}

func (s *Store) publish(ctx context.Context) {
	if s.notifier == nil {
		return
	}
	// Announcement is best-effort: a dead notifier must not fail the
	// mutation that already happened.
	_ = s.notifier.Publish(ctx, Change{
		Origin: s.origin,
		Keys:   s.SessionKeys(),
	})
}
