package db

import (
	"context"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
)

// ClinicRedisClient struct holds the Redis client and context
type ClinicRedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewClinicRedisClient initializes a new Redis client wrapper
func NewClinicRedisClient(ctx context.Context, client *redis.Client) *ClinicRedisClient {
	// Test the connection
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	fmt.Println("Connected to Redis")

	return &ClinicRedisClient{
		client: client,
		ctx:    ctx,
	}
}

// Set sets a key-value pair in Redis
func (r *ClinicRedisClient) Set(key, value string) error {
	return r.client.Set(r.ctx, key, value, 0).Err()
}

// Get retrieves the value for a given key from Redis
func (r *ClinicRedisClient) Get(key string) (string, error) {
	return r.client.Get(r.ctx, key).Result()
}

// Keys returns all keys matching the given pattern
func (r *ClinicRedisClient) Keys(pattern string) ([]string, error) {
	keys, err := r.client.Keys(r.ctx, pattern).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys for pattern %q: %w", pattern, err)
	}
	return keys, nil
}

// Del removes a key from Redis
func (r *ClinicRedisClient) Del(key string) error {
	return r.client.Del(r.ctx, key).Err()
}

func (r *ClinicRedisClient) GetContext() context.Context {
	return r.ctx
}

func (r *ClinicRedisClient) Ping() error {
	_, err := r.client.Ping(r.ctx).Result()
	return err
}
