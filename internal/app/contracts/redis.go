package contracts

import (
	"context"
	"time"
)

type RedisRepository interface {
	Get(ctx context.Context, key string) (string, error)
	TrySetNX(ctx context.Context, key, value string, exp time.Duration) (bool, error)
	// DeleteIfEqual removes key only while it still holds value.
	DeleteIfEqual(ctx context.Context, key, value string) (bool, error)
	// ExpireIfEqual resets the TTL of key only while it still holds value.
	ExpireIfEqual(ctx context.Context, key, value string, exp time.Duration) (bool, error)
}
