package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Repository is the interface for auth repository
type Repository interface {
	Deny(ctx context.Context, jti string, until time.Time) error
	IsDenied(ctx context.Context, jti string) (bool, error)
}

type repository struct {
	rdb *redis.Client
}

// NewRepository creates a new auth repository
func NewRepository(rdb *redis.Client) Repository {
	return &repository{rdb}
}

// Deny marks a token's jti revoked until its natural expiry, after which
// the entry self-evicts.
func (r *repository) Deny(ctx context.Context, jti string, until time.Time) error {
	ctx, span := tracer.Start(ctx, "Auth.Repository.Deny")
	defer span.End()

	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}

	err := r.rdb.Set(ctx, "deny:"+jti, "1", ttl).Err()
	if err != nil {
		span.RecordError(err)
		return err
	}

	return nil
}

// IsDenied reports whether a token's jti has been revoked
func (r *repository) IsDenied(ctx context.Context, jti string) (bool, error) {
	ctx, span := tracer.Start(ctx, "Auth.Repository.IsDenied")
	defer span.End()

	_, err := r.rdb.Get(ctx, "deny:"+jti).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		span.RecordError(err)
		return false, err
	}

	return true, nil
}
