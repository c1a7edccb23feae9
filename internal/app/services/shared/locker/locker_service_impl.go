package locker

import (
	"context"
	"errors"
	"medimarket-service/internal/app/contracts"
	"medimarket-service/internal/pkg/constvars"
	"medimarket-service/internal/pkg/exceptions"
	"medimarket-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errLockNotOwned = errors.New("lock not owned by this client")

// lockService is a redis SETNX lock with a random owner token. It guards the
// submit of one wizard across replicas; expiry releases a lock whose holder
// died mid-submit.
type lockService struct {
	RedisRepository contracts.RedisRepository
	Log             *zap.Logger
	newToken        func() string
}

func NewLockService(redisRepository contracts.RedisRepository, logger *zap.Logger) contracts.LockerService {
	return &lockService{
		RedisRepository: redisRepository,
		Log:             utils.NopIfNil(logger),
		newToken:        uuid.NewString,
	}
}

func (s *lockService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	requestID := utils.GetRequestID(ctx)

	lockValue := s.newToken()
	acquired, err := s.RedisRepository.TrySetNX(ctx, key, lockValue, expiration)
	if err != nil {
		s.Log.Error("lockService.TryLock error calling RedisRepository.TrySetNX",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return false, "", err
	}

	if !acquired {
		s.Log.Info("lockService.TryLock held by another owner",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
		)
		return false, "", nil
	}

	s.Log.Debug("lockService.TryLock acquired",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.String(constvars.LoggingLockValueKey, lockValue),
		zap.Duration(constvars.LoggingLockExpirationTimeKey, expiration),
	)
	return true, lockValue, nil
}

// Unlock deletes key only when it still holds lockValue. A lock that already
// expired is not an error.
func (s *lockService) Unlock(ctx context.Context, key, lockValue string) error {
	requestID := utils.GetRequestID(ctx)

	storedValue, err := s.RedisRepository.Get(ctx, key)
	if err != nil {
		s.Log.Error("lockService.Unlock error calling RedisRepository.Get",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return err
	}
	if storedValue == "" {
		return nil
	}

	var owner string
	if err := json.Unmarshal([]byte(storedValue), &owner); err != nil || owner != lockValue {
		s.Log.Warn("lockService.Unlock lock ownership mismatch",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLockStoredValueKey, storedValue),
			zap.String(constvars.LoggingLockExpectedValueKey, lockValue),
		)
		return exceptions.ErrRedisUnlock(errLockNotOwned)
	}

	if err := s.RedisRepository.Delete(ctx, key); err != nil {
		s.Log.Error("lockService.Unlock error calling RedisRepository.Delete",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return err
	}
	return nil
}
