package contracts

import (
	"context"
	"medimarket-service/internal/app/models"
	"time"
)

type SubmissionRecord struct {
	IdempotencyKey string                     `bson:"idempotency_key" json:"idempotency_key"`
	WizardID       string                     `bson:"wizard_id" json:"wizard_id"`
	Flow           string                     `bson:"flow" json:"flow"`
	Kind           models.EntityKind          `bson:"kind" json:"kind"`
	Account        string                     `bson:"account,omitempty" json:"account,omitempty"`
	Method         string                     `bson:"method" json:"method"`
	Value          string                     `bson:"value" json:"value"`
	ContentRef     string                     `bson:"content_ref,omitempty" json:"content_ref,omitempty"`
	Status         models.SubmissionStatus    `bson:"status" json:"status"`
	FailureClass   models.FailureClass        `bson:"failure_class,omitempty" json:"failure_class,omitempty"`
	FailureMessage string                     `bson:"failure_message,omitempty" json:"failure_message,omitempty"`
	Receipt        *models.TransactionReceipt `bson:"receipt,omitempty" json:"receipt,omitempty"`
	CreatedAt      time.Time                  `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time                  `bson:"updated_at" json:"updated_at"`
}

// SubmissionJournal keeps one record per submission attempt so an abandoned
// wizard can be reconciled with what actually reached the ledger.
type SubmissionJournal interface {
	Begin(ctx context.Context, record *SubmissionRecord) error
	Complete(ctx context.Context, idempotencyKey string, status models.SubmissionStatus, receipt *models.TransactionReceipt, failure *models.Failure) error
	FindLatestByWizard(ctx context.Context, wizardID string) (*SubmissionRecord, error)
}
