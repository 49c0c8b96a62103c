// Package redis stores the JSON documents as plain Redis string values.
package redis

import (
	"alcyxob/loadx/internal/repository"
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// DefaultKeyPrefix namespaces every document key.
const DefaultKeyPrefix = "loadx:"

// BlobStore implements repository.BlobStore on top of a Redis client.
type BlobStore struct {
	client *redis.Client
	prefix string
}

func NewBlobStore(client *redis.Client, prefix string) *BlobStore {
	return &BlobStore{
		client: client,
		prefix: prefix,
	}
}

// Connect creates a client for addr and checks it answers a PING.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *BlobStore) Put(ctx context.Context, key string, data []byte) error {
	return s.client.Set(ctx, s.prefix+key, data, 0).Err()
}
