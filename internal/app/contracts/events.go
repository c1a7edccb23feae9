package contracts

import (
	"context"
	"medimarket-service/internal/app/models"
	"time"
)

type LedgerEvent struct {
	Kind       models.EntityKind `json:"kind"`
	Flow       string            `json:"flow"`
	WizardID   string            `json:"wizard_id"`
	Account    string            `json:"account,omitempty"`
	TxHash     string            `json:"tx_hash"`
	EntityID   uint64            `json:"entity_id,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// LedgerEventPublisher announces accepted writes so list owners can refresh.
type LedgerEventPublisher interface {
	PublishLedgerEvent(ctx context.Context, event LedgerEvent) error
}
