package credstore

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by [Storage.Get] when the key has no value.
var ErrKeyNotFound = errors.New("credstore: key not found")

// ErrStorageUnavailable wraps backend failures of a [Storage] implementation.
var ErrStorageUnavailable = errors.New("credstore: storage unavailable")

// Storage is a keyed blob store: the durable, same-origin storage the
// credential store and the OTP flow persist into. Implementations must treat
// keys as opaque and must return [ErrKeyNotFound] from Get for absent keys.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}

// Change describes a storage mutation observed through a [Notifier].
// Origin identifies the mutating store instance so subscribers can tell
// their own writes from remote ones.
type Change struct {
	Origin string   `json:"origin"`
	Keys   []string `json:"keys"`
}

// Touches reports whether the change mutated any of the given keys.
func (c Change) Touches(keys ...string) bool {
	for _, k := range keys {
		for _, changed := range c.Keys {
			if k == changed {
				return true
			}
		}
	}
	return false
}

// Notifier is the storage-mutation event channel. It decouples "session
// changed" propagation from the concrete storage mechanism: the credential
// store publishes on every local mutation, and each manager instance
// subscribes for the duration of its lifetime. There is no polling and no
// other push channel.
type Notifier interface {
	Publish(ctx context.Context, change Change) error
	// Subscribe returns a channel of remote changes and a stop function.
	// After stop returns, the channel is closed and no further deliveries
	// happen.
	Subscribe(ctx context.Context) (<-chan Change, func(), error)
}
