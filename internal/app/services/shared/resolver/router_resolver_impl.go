package resolver

import (
	"context"
	"medimarket-service/internal/app/contracts"
	"medimarket-service/internal/app/models"
	"medimarket-service/internal/pkg/exceptions"
)

// routerResolver sends each ref to the store its scheme belongs to and
// publishes new documents to the content-addressed store.
type routerResolver struct {
	Store   contracts.ContentResolver
	Gateway contracts.ContentResolver
}

func NewRouterResolver(store, gateway contracts.ContentResolver) contracts.ContentResolver {
	return &routerResolver{
		Store:   store,
		Gateway: gateway,
	}
}

func (r *routerResolver) Fetch(ctx context.Context, contentRef string) (models.ContentDocument, error) {
	scheme, _ := classifyRef(contentRef)
	switch scheme {
	case schemeCAS:
		return r.Store.Fetch(ctx, contentRef)
	case schemeIPFS, schemeHTTP:
		if r.Gateway == nil {
			break
		}
		return r.Gateway.Fetch(ctx, contentRef)
	}
	return nil, exceptions.NewResolutionError(contentRef, exceptions.ErrUnsupportedContentRef)
}

func (r *routerResolver) Put(ctx context.Context, document models.ContentDocument, meta models.ContentMeta) (string, error) {
	return r.Store.Put(ctx, document, meta)
}
