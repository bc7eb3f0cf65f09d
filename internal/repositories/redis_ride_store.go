package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"relay/internal/domain/models"

	"github.com/redis/go-redis/v9"
)

const rideKeyPrefix = "relay:ride:driver:"

type RedisConfig struct {
	Addr     string
	Password string // optional
	DB       int    // optional
}

// NewRedisClient connects and pings so a bad address fails at startup.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// RedisRideStore keys rides by driver identity, so rides for different
// drivers coexist. A new ride for the same driver replaces the old one, and
// every entry expires after TTL.
type RedisRideStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisRideStore(client *redis.Client, ttl time.Duration) *RedisRideStore {
	return &RedisRideStore{Client: client, TTL: ttl}
}

func rideKey(driverIdentity string) string {
	return rideKeyPrefix + driverIdentity
}

func (s *RedisRideStore) Save(ctx context.Context, ride models.ActiveRide) error {
	if err := s.Client.Set(ctx, rideKey(ride.DriverIdentity), ride.CustomerIdentity, s.TTL).Err(); err != nil {
		return fmt.Errorf("save ride: %w", err)
	}
	return nil
}

func (s *RedisRideStore) CustomerFor(ctx context.Context, driverIdentity string) (string, bool, error) {
	customer, err := s.Client.Get(ctx, rideKey(driverIdentity)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup ride: %w", err)
	}
	return customer, true, nil
}
