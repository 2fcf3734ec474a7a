package cache

import (
	"context"
	"log"
	"time"

	"chem-backend/internal/config"

	"github.com/redis/go-redis/v9"
)

// Revoked tokens are stored under this prefix until their natural expiry
const revokedTokenKeyFmt = "auth:revoked:"

var client *redis.Client

// Init initializes the Redis connection
func Init(cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// Close releases the connection pool
func Close() {
	if client != nil {
		client.Close()
		client = nil
	}
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}

// TokenDenylist tracks logged-out tokens by their jti. Without Redis every
// token stays valid until it expires.
type TokenDenylist struct{}

// Revoke marks a token id as revoked for ttl
func (TokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if client == nil || tokenID == "" {
		return nil
	}
	if ttl <= 0 {
		return nil
	}
	if err := client.Set(ctx, revokedTokenKeyFmt+tokenID, 1, ttl).Err(); err != nil {
		log.Printf("[Cache] Failed to revoke token: %v", err)
		return err
	}
	return nil
}

// IsRevoked reports whether a token id was revoked. Lookup failures count
// as not revoked.
func (TokenDenylist) IsRevoked(ctx context.Context, tokenID string) bool {
	if client == nil || tokenID == "" {
		return false
	}
	n, err := client.Exists(ctx, revokedTokenKeyFmt+tokenID).Result()
	if err != nil {
		return false
	}
	return n > 0
}
