package storage

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
)

// RedisMirror persists container state in Redis.
type RedisMirror struct {
	client *redis.Client
}

func NewRedisMirror(client *redis.Client) *RedisMirror {
	return &RedisMirror{client: client}
}

func (rm *RedisMirror) Put(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rm.client.Set(ctx, key, data, 0).Err()
}

func (rm *RedisMirror) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := rm.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, dest)
}

func (rm *RedisMirror) Delete(ctx context.Context, key string) error {
	return rm.client.Del(ctx, key).Err()
}
