package contracts

import (
	"context"
	"medimarket-service/internal/app/models"
)

// LedgerClient is the authoritative record store. List fails with
// exceptions.ErrLedgerUnavailable; Submit fails with ErrUserRejected,
// ErrInsufficientFunds, *PreconditionFailedError or ErrNetwork.
type LedgerClient interface {
	List(ctx context.Context, kind models.EntityKind) ([]models.LedgerRecord, error)
	Submit(ctx context.Context, kind models.EntityKind, payload models.TransactionPayload) (*models.TransactionReceipt, error)
}
