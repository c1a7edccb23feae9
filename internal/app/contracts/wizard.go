package contracts

import (
	"context"
	"medimarket-service/internal/app/models"
	"time"
)

// WizardStore persists wizard states between requests. Get returns nil, nil
// when the wizard does not exist or has expired.
type WizardStore interface {
	Save(ctx context.Context, state models.WizardState, ttl time.Duration) error
	Get(ctx context.Context, wizardID string) (*models.WizardState, error)
	Delete(ctx context.Context, wizardID string) error
}
