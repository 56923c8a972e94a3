package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
)

func stubRedis(t *testing.T, pingErr error) *string {
	t.Helper()
	origNewClient := newRedisClient
	origPing := pingRedis
	t.Cleanup(func() {
		newRedisClient = origNewClient
		pingRedis = origPing
	})

	captured := new(string)
	newRedisClient = func(opts *redis.Options) *redis.Client {
		*captured = opts.Addr
		return redis.NewClient(opts)
	}
	pingRedis = func(ctx context.Context, client *redis.Client) error {
		return pingErr
	}
	return captured
}

func TestInitRedisWithCustomAddr(t *testing.T) {
	captured := stubRedis(t, nil)

	client := InitRedis(context.Background(), "redis:9999")
	if client == nil {
		t.Fatal("expected a client")
	}
	if *captured != "redis:9999" {
		t.Fatalf("expected custom addr, got %s", *captured)
	}
}

func TestInitRedisDefaults(t *testing.T) {
	captured := stubRedis(t, nil)

	if client := InitRedis(context.Background(), ""); client == nil {
		t.Fatal("expected a client")
	}
	if *captured != "localhost:6379" {
		t.Fatalf("expected default addr, got %s", *captured)
	}
}

func TestInitRedisURLScheme(t *testing.T) {
	captured := stubRedis(t, nil)

	if client := InitRedis(context.Background(), "redis://redishost:6380"); client == nil {
		t.Fatal("expected a client")
	}
	if *captured != "redishost:6380" {
		t.Fatalf("expected parsed addr, got %s", *captured)
	}
}

func TestInitRedisUnreachableIsNotFatal(t *testing.T) {
	stubRedis(t, errors.New("connection refused"))

	if client := InitRedis(context.Background(), "redis:9999"); client != nil {
		t.Fatal("expected nil client when Redis is unreachable")
	}
}
