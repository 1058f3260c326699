// Package credstore persists the current session (account snapshot plus
// access token) and broadcasts mutations to every subscribed manager
// instance.
//
// # Architecture boundaries
//
// The [Store] is the only writer of the two session keys; managers read and
// mutate exclusively through it. [Storage] and [Notifier] abstract the
// durable store and the change channel so the Redis pair can be swapped for
// the in-process [Memory] without touching consumers.
//
// # Failure policy
//
// Load is fail-closed: any unparseable or partial record is cleared and
// reported as [ErrCorruptRecord], which callers treat as "logged out".
// There is no code path that returns a half-session.
package credstore
