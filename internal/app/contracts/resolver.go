package contracts

import (
	"context"
	"medimarket-service/internal/app/models"
)

// ContentResolver maps a content ref to a JSON document. Fetch failures are
// *exceptions.ResolutionError; Put failures are *exceptions.UploadError.
type ContentResolver interface {
	Fetch(ctx context.Context, contentRef string) (models.ContentDocument, error)
	Put(ctx context.Context, document models.ContentDocument, meta models.ContentMeta) (string, error)
}
