package resolver

import (
	"context"
	"medimarket-service/internal/app/contracts"
	"medimarket-service/internal/app/models"
	"medimarket-service/internal/pkg/constvars"
	"medimarket-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// cachedResolver keeps resolved documents in redis keyed by ref. Documents
// behind a ref never change, so entries are only evicted by TTL. Redis
// failures degrade to a direct fetch.
type cachedResolver struct {
	Next            contracts.ContentResolver
	RedisRepository contracts.RedisRepository
	TTL             time.Duration
	Log             *zap.Logger
}

func NewCachedResolver(next contracts.ContentResolver, redisRepository contracts.RedisRepository, ttl time.Duration, logger *zap.Logger) contracts.ContentResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cachedResolver{
		Next:            next,
		RedisRepository: redisRepository,
		TTL:             ttl,
		Log:             logger,
	}
}

func (r *cachedResolver) Fetch(ctx context.Context, contentRef string) (models.ContentDocument, error) {
	requestID := utils.GetRequestID(ctx)
	key := documentKey(contentRef)

	cached, err := r.RedisRepository.Get(ctx, key)
	if err != nil {
		r.Log.Warn("cachedResolver.Fetch error calling RedisRepository.Get",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
	} else if cached != "" {
		var document models.ContentDocument
		if err := json.Unmarshal([]byte(cached), &document); err == nil && document != nil {
			return document, nil
		}
		r.Log.Warn("cachedResolver.Fetch dropping undecodable cache entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
		)
	}

	document, err := r.Next.Fetch(ctx, contentRef)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, document)
	return document, nil
}

func (r *cachedResolver) Put(ctx context.Context, document models.ContentDocument, meta models.ContentMeta) (string, error) {
	contentRef, err := r.Next.Put(ctx, document, meta)
	if err != nil {
		return "", err
	}
	r.store(ctx, documentKey(contentRef), document)
	return contentRef, nil
}

func (r *cachedResolver) store(ctx context.Context, key string, document models.ContentDocument) {
	err := r.RedisRepository.Set(ctx, key, document, r.TTL)
	if err != nil {
		r.Log.Warn("cachedResolver.store error calling RedisRepository.Set",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
	}
}

func documentKey(contentRef string) string {
	return constvars.RedisKeyContentDocPrefix + contentRef
}
