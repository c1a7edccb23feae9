package catalog

import (
	"context"
	"medimarket-service/internal/app/models"
	"medimarket-service/internal/pkg/dto/requests"
	"medimarket-service/internal/pkg/dto/responses"
)

type CatalogUsecase interface {
	List(ctx context.Context, sessionID string, kind models.EntityKind, query *requests.CatalogQuery) (*responses.CatalogPage, error)
	Stats(ctx context.Context, sessionID string, kind models.EntityKind, query *requests.CatalogQuery) (*responses.CatalogStats, error)
	FindView(ctx context.Context, sessionID string, ref models.EntityRef) (models.ViewModel, error)
	ApproveDoctor(ctx context.Context, doctorID uint64) (*responses.DoctorReview, error)
	RejectDoctor(ctx context.Context, doctorID uint64) (*responses.DoctorReview, error)
	MarkStale(sessionID string, kinds ...models.EntityKind)
}
