package journal

import (
	"context"
	"medimarket-service/internal/app/contracts"
	"medimarket-service/internal/app/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

var fixedNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestJournal(mt *mtest.T) *submissionMongoJournal {
	journal := newSubmissionJournal(mt.Coll)
	journal.Now = func() time.Time { return fixedNow }
	return journal
}

func TestSubmissionMongoJournal(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Begin stamps and inserts the attempt", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		record := &contracts.SubmissionRecord{IdempotencyKey: "idem-1", WizardID: "w1", Flow: "book_appointment"}

		err := newTestJournal(mt).Begin(context.Background(), record)

		require.NoError(mt, err)
		assert.Equal(mt, models.SubmissionSubmitting, record.Status)
		assert.Equal(mt, fixedNow, record.CreatedAt)
		assert.Equal(mt, fixedNow, record.UpdatedAt)
	})

	mt.Run("Begin refuses a reused idempotency key", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key error"}))

		err := newTestJournal(mt).Begin(context.Background(), &contracts.SubmissionRecord{IdempotencyKey: "idem-1"})

		assert.Error(mt, err)
	})

	mt.Run("Complete updates the matching attempt", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		err := newTestJournal(mt).Complete(context.Background(), "idem-1", models.SubmissionSucceeded, &models.TransactionReceipt{TxHash: "0xfeed"}, nil)

		assert.NoError(mt, err)
	})

	mt.Run("Complete of an unknown key fails", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := newTestJournal(mt).Complete(context.Background(), "missing", models.SubmissionFailed, nil, &models.Failure{Class: models.FailureNetwork, Message: "timeout"})

		assert.Error(mt, err)
	})

	mt.Run("FindLatestByWizard decodes the newest attempt", func(mt *mtest.T) {
		namespace := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, namespace, mtest.FirstBatch, bson.D{
			{Key: "idempotency_key", Value: "idem-2"},
			{Key: "wizard_id", Value: "w1"},
			{Key: "status", Value: "submitting"},
			{Key: "value", Value: "0.05"},
		}))

		record, err := newTestJournal(mt).FindLatestByWizard(context.Background(), "w1")

		require.NoError(mt, err)
		require.NotNil(mt, record)
		assert.Equal(mt, "idem-2", record.IdempotencyKey)
		assert.Equal(mt, models.SubmissionSubmitting, record.Status)
	})

	mt.Run("FindLatestByWizard returns nil when nothing was submitted", func(mt *mtest.T) {
		namespace := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace, mtest.FirstBatch))

		record, err := newTestJournal(mt).FindLatestByWizard(context.Background(), "w2")

		require.NoError(mt, err)
		assert.Nil(mt, record)
	})
}
