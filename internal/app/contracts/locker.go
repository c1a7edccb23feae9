package contracts

import (
	"context"
	"time"
)

type LockerService interface {
	TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error)
	Unlock(ctx context.Context, key, lockValue string) error
}

// SubmissionLimiter caps ledger writes per account across replicas.
type SubmissionLimiter interface {
	Allow(ctx context.Context, account string) (allowed bool, retryAfter time.Duration, err error)
}
