package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrUnavailable wraps redis failures at the store boundary.
var ErrUnavailable = errors.New("session store unavailable")

const defaultTTL = 10 * time.Minute

// Store keeps per-attempt session notes in a redis hash so several
// frontends can serve polls for the same authentication attempt. The
// host loads the notes at the start of a request, hands them to the
// engine, and saves them back before responding.
type Store struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewStore builds a note store. TTL bounds how long an abandoned
// attempt lingers; zero selects the default.
func NewStore(client redis.UniversalClient, prefix string, ttl time.Duration) *Store {
	if prefix == "" {
		prefix = "ivaltauth:notes"
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *Store) key(attemptID string) string {
	return s.prefix + ":" + attemptID
}

// Load fetches the notes for an attempt. Unknown attempts yield empty
// notes, not an error.
func (s *Store) Load(ctx context.Context, attemptID string) (*Notes, error) {
	values, err := s.client.HGetAll(ctx, s.key(attemptID)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return NotesFrom(values), nil
}

// Save replaces the stored notes for an attempt and refreshes the TTL.
// Saving empty notes removes the key.
func (s *Store) Save(ctx context.Context, attemptID string, notes *Notes) error {
	key := s.key(attemptID)

	if notes == nil || notes.Len() == 0 {
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, notes.Map())
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Delete drops the notes for an attempt.
func (s *Store) Delete(ctx context.Context, attemptID string) error {
	if err := s.client.Del(ctx, s.key(attemptID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
