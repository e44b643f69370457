package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RoundStore implements ports.RoundStore using Redis. Keys are
// casino:round:<game>:<username>, so each player holds at most one
// active round per game.
type RoundStore struct {
	client *goredis.Client
	prefix string
}

// NewRoundStore creates a new Redis-backed round store.
func NewRoundStore(client *goredis.Client) *RoundStore {
	return &RoundStore{
		client: client,
		prefix: "casino:round:",
	}
}

// Get retrieves the active round for a player.
// Returns nil, nil if no round is stored.
func (s *RoundStore) Get(ctx context.Context, game, username string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.key(game, username)).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis round get: %w", err)
	}
	return val, nil
}

// Put stores the active round for a player with TTL.
func (s *RoundStore) Put(ctx context.Context, game, username string, state []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(game, username), state, ttl).Err(); err != nil {
		return fmt.Errorf("redis round set: %w", err)
	}
	return nil
}

// Delete removes the active round for a player. Deleting a missing
// round is not an error.
func (s *RoundStore) Delete(ctx context.Context, game, username string) error {
	if err := s.client.Del(ctx, s.key(game, username)).Err(); err != nil {
		return fmt.Errorf("redis round delete: %w", err)
	}
	return nil
}

func (s *RoundStore) key(game, username string) string {
	return s.prefix + game + ":" + username
}
