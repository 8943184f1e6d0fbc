package cache

import (
	"context"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/redis/go-redis/v9"
)

// CacheModule owns the Redis connection lifecycle. It exposes no services;
// the lifecycle services hold the Cache directly.
type CacheModule struct {
	client *redis.Client
	cache  *Cache
}

var _ mono.Module = (*CacheModule)(nil)
var _ mono.HealthCheckableModule = (*CacheModule)(nil)

// NewModule creates a cache module around an already-configured client.
func NewModule(client *redis.Client, cache *Cache) *CacheModule {
	return &CacheModule{client: client, cache: cache}
}

// Name returns the module name.
func (m *CacheModule) Name() string {
	return "cache"
}

// Health reports Redis reachability and the current cache counters.
func (m *CacheModule) Health(ctx context.Context) mono.HealthStatus {
	if err := m.client.Ping(ctx).Err(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("redis ping failed: %v", err),
		}
	}

	stats := m.cache.StatsSnapshot()
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"hits":   stats.Hits,
			"misses": stats.Misses,
			"errors": stats.Errors,
		},
	}
}

// Start verifies the Redis connection.
func (m *CacheModule) Start(ctx context.Context) error {
	if err := m.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Println("[cache] Module started")
	return nil
}

// Stop closes the Redis connection.
func (m *CacheModule) Stop(_ context.Context) error {
	if err := m.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}
	log.Println("[cache] Module stopped")
	return nil
}
