package blobstore

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
)

const redisKey = "darasa:snapshot"

type redisStore struct {
	client *redis.Client
}

var _ Store = (*redisStore)(nil)

// NewRedisStore keeps the blob under a single redis key.
func NewRedisStore(conf *core.Config) (Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Storage.RedisAddr,
		Password: conf.Storage.RedisPassword,
		DB:       conf.Storage.RedisDB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, errors.Wrap(err, "pinging redis")
	}
	return &redisStore{client: client}, nil
}

func (s *redisStore) Save(ctx context.Context, data []byte) error {
	return errors.Wrap(s.client.Set(ctx, redisKey, data, 0).Err(), "saving snapshot")
}

func (s *redisStore) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, redisKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "loading snapshot")
	}
	return data, nil
}
