package session

import (
	"context"
	"encoding/json"
	"time"

	"employee_project/internal/domain"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

const KeyPrefix = "session:"

type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Create(ctx context.Context, session *domain.Session) error {
	var ttl time.Duration
	if !session.ExpiresAt.IsZero() {
		ttl = time.Until(session.ExpiresAt)
		if ttl <= 0 {
			return errors.New("session already expired")
		}
	}
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.prefix+session.ID, data, ttl).Err(); err != nil {
		return errors.Wrap(err, "store session")
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "load session")
	}
	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, errors.Wrap(err, "decode session")
	}
	if session.IsExpired() {
		return nil, domain.ErrNotFound
	}
	return &session, nil
}

func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.prefix+id).Err(); err != nil {
		return errors.Wrap(err, "delete session")
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
