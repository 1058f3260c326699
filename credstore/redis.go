package credstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage is a [Storage] backed by Redis. Values persist until cleared
// unless a TTL is configured; the session payload has no natural expiry of
// its own (the refresh cookie bounds the session lifetime server-side).
type RedisStorage struct {
	redis redis.UniversalClient
	ttl   time.Duration
}

// NewRedisStorage creates a Redis-backed storage. ttl of zero keeps values
// until explicitly deleted.
func NewRedisStorage(client redis.UniversalClient, ttl time.Duration) *RedisStorage {
	return &RedisStorage{
		redis: client,
		ttl:   ttl,
	}
}

// Get implements [Storage].
func (s *RedisStorage) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return data, nil
}

// Set implements [Storage].
func (s *RedisStorage) Set(ctx context.Context, key string, value []byte) error {
	if err := s.redis.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Delete implements [Storage].
func (s *RedisStorage) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// RedisNotifier carries [Change] events over a Redis pub/sub channel so
// that manager instances in different processes observe each other's
// session mutations.
type RedisNotifier struct {
	redis   redis.UniversalClient
	channel string
}

// DefaultChannel is the pub/sub channel used when none is configured.
const DefaultChannel = "authgate:changes"

// NewRedisNotifier creates a pub/sub notifier on the given channel.
func NewRedisNotifier(client redis.UniversalClient, channel string) *RedisNotifier {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisNotifier{
		redis:   client,
		channel: channel,
	}
}

// Publish implements [Notifier].
func (n *RedisNotifier) Publish(ctx context.Context, change Change) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return err
	}
	if err := n.redis.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Subscribe implements [Notifier]. Malformed payloads on the channel are
// dropped; a decoding failure must never tear down the subscription.
func (n *RedisNotifier) Subscribe(ctx context.Context) (<-chan Change, func(), error) {
	pubsub := n.redis.Subscribe(ctx, n.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	out := make(chan Change, 16)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			var change Change
			if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
				continue
			}
			select {
			case out <- change:
			default:
			}
		}
	}()

	stop := func() {
		_ = pubsub.Close()
	}

	return out, stop, nil
}
