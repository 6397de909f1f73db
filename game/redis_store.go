package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"htmx-tictactoe/models"
)

// RedisStore keeps games as JSON under "game:<id>" with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

// ConnectRedis opens a client and checks the server answers.
func ConnectRedis(ctx context.Context, opts *redis.Options) (*redis.Client, error) {
	conn := redis.NewClient(opts)

	if err := conn.Ping(ctx).Err(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return conn, nil
}

func gameKey(id string) string {
	return "game:" + id
}

func (s *RedisStore) Save(ctx context.Context, state models.GameState) error {
	gameJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = s.client.Set(ctx, gameKey(state.ID), gameJSON, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (models.GameState, error) {
	response, err := s.client.Get(ctx, gameKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return models.GameState{}, ErrGameNotFound
	}
	if err != nil {
		return models.GameState{}, fmt.Errorf("failed to get game by id: %w", err)
	}

	var state models.GameState
	if err = json.Unmarshal([]byte(response), &state); err != nil {
		return models.GameState{}, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return state, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, gameKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete game by id: %w", err)
	}
	return nil
}
