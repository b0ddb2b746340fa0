package repository

import (
	"context"
	"errors"
	"time"

	"reviewhub/internal/httpapi/apperr"

	"github.com/redis/go-redis/v9"
)

// ConfirmationCodeStore holds the bcrypt hash of each pending
// confirmation code. Codes are single-use and expire with the TTL;
// repeating signup simply overwrites the previous entry.
type ConfirmationCodeStore interface {
	Set(ctx context.Context, username, codeHash string, ttl time.Duration) error
	Get(ctx context.Context, username string) (string, error)
	Delete(ctx context.Context, username string) error
}

const codeKeyPrefix = "confirmation:"

type redisCodeStore struct {
	client *redis.Client
}

func NewConfirmationCodeStore(client *redis.Client) ConfirmationCodeStore {
	return &redisCodeStore{client: client}
}

func (s *redisCodeStore) Set(ctx context.Context, username, codeHash string, ttl time.Duration) error {
	if err := s.client.Set(ctx, codeKeyPrefix+username, codeHash, ttl).Err(); err != nil {
		return apperr.Wrap(apperr.Internal, "store confirmation code", err)
	}
	return nil
}

func (s *redisCodeStore) Get(ctx context.Context, username string) (string, error) {
	hash, err := s.client.Get(ctx, codeKeyPrefix+username).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.New(apperr.Validation, "confirmation code is invalid or expired")
		}
		return "", apperr.Wrap(apperr.Internal, "read confirmation code", err)
	}
	return hash, nil
}

func (s *redisCodeStore) Delete(ctx context.Context, username string) error {
	if err := s.client.Del(ctx, codeKeyPrefix+username).Err(); err != nil {
		return apperr.Wrap(apperr.Internal, "delete confirmation code", err)
	}
	return nil
}
