package resolver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"medimarket-service/internal/app/contracts"
	"medimarket-service/internal/app/models"
	"medimarket-service/internal/pkg/constvars"
	"medimarket-service/internal/pkg/exceptions"
	"medimarket-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// casResolver keeps documents in object storage under the sha256 of their
// canonical JSON, so a ref always names exactly one immutable document.
type casResolver struct {
	Storage    contracts.Storage
	BucketName string
	Log        *zap.Logger
}

func NewCASResolver(storage contracts.Storage, bucketName string, logger *zap.Logger) contracts.ContentResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &casResolver{
		Storage:    storage,
		BucketName: bucketName,
		Log:        logger,
	}
}

func (r *casResolver) Fetch(ctx context.Context, contentRef string) (models.ContentDocument, error) {
	scheme, digest := classifyRef(contentRef)
	if scheme != schemeCAS || !isHexDigest(digest) {
		return nil, exceptions.NewResolutionError(contentRef, exceptions.ErrUnsupportedContentRef)
	}

	data, err := r.Storage.GetObject(ctx, r.BucketName, objectName(digest))
	if err != nil {
		return nil, exceptions.NewResolutionError(contentRef, err)
	}

	var document models.ContentDocument
	err = json.Unmarshal(data, &document)
	if err != nil {
		return nil, exceptions.NewResolutionError(contentRef, err)
	}
	if document == nil {
		return nil, exceptions.NewResolutionError(contentRef, fmt.Errorf("document is not a JSON object"))
	}
	return document, nil
}

func (r *casResolver) Put(ctx context.Context, document models.ContentDocument, meta models.ContentMeta) (string, error) {
	requestID := utils.GetRequestID(ctx)

	// map keys are encoded in sorted order, which makes the digest stable
	data, err := json.Marshal(document)
	if err != nil {
		return "", exceptions.NewUploadError(err)
	}
	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])

	contentType := meta.ContentType
	if contentType == "" {
		contentType = constvars.MIMEApplicationJSON
	}

	err = r.Storage.PutObject(ctx, r.BucketName, objectName(digest), data, contentType)
	if err != nil {
		r.Log.Error("casResolver.Put error calling Storage.PutObject",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketNameKey, r.BucketName),
			zap.String(constvars.LoggingObjectNameKey, objectName(digest)),
			zap.Error(err),
		)
		return "", exceptions.NewUploadError(err)
	}

	contentRef := casPrefix + digest
	r.Log.Info("casResolver.Put succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingContentRefKey, contentRef),
		zap.String("name", meta.Name),
	)
	return contentRef, nil
}

func objectName(digest string) string {
	return digest + ".json"
}
