package database

import (
	"context"
	"fmt"
	"log"

	"claimsync-service/internal/app/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to the redis instance holding the reconciliation
// leader lock and the per-claim locks.
func NewRedisClient(driverConfig *config.DriverConfig) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%s", driverConfig.Redis.Host, driverConfig.Redis.Port),
		Password:    driverConfig.Redis.Password,
		DB:          driverConfig.Redis.DB,
		DialTimeout: driverConfig.Redis.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), driverConfig.Redis.DialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Could not connect to Redis db %d: %v", driverConfig.Redis.DB, err)
	}

	log.Printf("Successfully connected to redis db %d", driverConfig.Redis.DB)
	return rdb
}
