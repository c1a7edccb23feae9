package journal

import (
	"context"
	"medimarket-service/internal/app/contracts"
	"medimarket-service/internal/app/models"
	"medimarket-service/internal/pkg/constvars"
	"medimarket-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type submissionMongoJournal struct {
	Collection *mongo.Collection
	Now        func() time.Time
}

func NewSubmissionMongoJournal(db *mongo.Client, dbName string) contracts.SubmissionJournal {
	return newSubmissionJournal(db.Database(dbName).Collection(constvars.MongoCollectionSubmissions))
}

func newSubmissionJournal(collection *mongo.Collection) *submissionMongoJournal {
	return &submissionMongoJournal{
		Collection: collection,
		Now:        time.Now,
	}
}

// EnsureIndexes makes idempotency keys unique and keeps the per-wizard
// lookup on an index.
func EnsureIndexes(ctx context.Context, db *mongo.Client, dbName string) error {
	collection := db.Database(dbName).Collection(constvars.MongoCollectionSubmissions)
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "idempotency_key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "wizard_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
	})
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (j *submissionMongoJournal) Begin(ctx context.Context, record *contracts.SubmissionRecord) error {
	now := j.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	if record.Status == "" {
		record.Status = models.SubmissionSubmitting
	}

	_, err := j.Collection.InsertOne(ctx, record)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (j *submissionMongoJournal) Complete(ctx context.Context, idempotencyKey string, status models.SubmissionStatus, receipt *models.TransactionReceipt, failure *models.Failure) error {
	set := bson.M{
		"status":     status,
		"updated_at": j.Now().UTC(),
	}
	if receipt != nil {
		set["receipt"] = receipt
	}
	if failure != nil {
		set["failure_class"] = failure.Class
		set["failure_message"] = failure.Message
	}

	result, err := j.Collection.UpdateOne(ctx, bson.M{"idempotency_key": idempotencyKey}, bson.M{"$set": set})
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrMongoDBUpdateDocument(mongo.ErrNoDocuments)
	}
	return nil
}

// FindLatestByWizard returns nil, nil when the wizard never submitted.
func (j *submissionMongoJournal) FindLatestByWizard(ctx context.Context, wizardID string) (*contracts.SubmissionRecord, error) {
	var record contracts.SubmissionRecord
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	err := j.Collection.FindOne(ctx, bson.M{"wizard_id": wizardID}, opts).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &record, nil
}
