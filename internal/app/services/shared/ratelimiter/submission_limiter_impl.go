package ratelimiter

import (
	"context"
	"fmt"
	"medimarket-service/internal/app/contracts"
	"medimarket-service/internal/pkg/constvars"
	"strings"
	"time"

	"go.uber.org/zap"
)

const submissionLimiterGroup = "SUBMIT"

// submissionLimiter is a fixed window counter kept in redis. The key carries
// the window number, so a new window starts from zero without a reset.
type submissionLimiter struct {
	RedisRepository contracts.RedisRepository
	Log             *zap.Logger
	Window          time.Duration
	MaxQuota        int
	Now             func() time.Time
}

// NewSubmissionLimiter returns a limiter allowing maxQuota submissions per
// account in each window. A maxQuota of zero or less disables the limit.
func NewSubmissionLimiter(redisRepository contracts.RedisRepository, window time.Duration, maxQuota int, logger *zap.Logger) contracts.SubmissionLimiter {
	if window < time.Second {
		window = time.Minute
	}
	return &submissionLimiter{
		RedisRepository: redisRepository,
		Log:             logger,
		Window:          window,
		MaxQuota:        maxQuota,
		Now:             time.Now,
	}
}

func (l *submissionLimiter) Allow(ctx context.Context, account string) (bool, time.Duration, error) {
	if l.MaxQuota <= 0 {
		return true, 0, nil
	}

	// Admin listings carry no account; they share one bucket.
	account = strings.ToLower(strings.TrimSpace(account))
	if account == "" {
		account = "anonymous"
	}

	now := l.Now().UTC()
	windowSec := int64(l.Window / time.Second)
	windowID := now.Unix() / windowSec
	key := fmt.Sprintf("%s:%s:%d", submissionLimiterGroup, account, windowID)

	count, err := l.RedisRepository.IncrementWithTTL(ctx, key, l.Window+time.Second)
	if err != nil {
		l.Log.Error("submissionLimiter.Allow error calling RedisRepository.IncrementWithTTL",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return false, 0, err
	}

	if count > int64(l.MaxQuota) {
		nextWindowStart := time.Unix((windowID+1)*windowSec, 0)
		return false, nextWindowStart.Sub(now), nil
	}
	return true, 0, nil
}
